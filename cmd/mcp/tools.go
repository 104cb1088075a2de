package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/golstats/match-predictor/internal/logic"
	"github.com/golstats/match-predictor/internal/models"
)

type TeamArgs struct {
	TeamName  string            `json:"team_name" jsonschema:"Team name as listed by list_teams"`
	Players   map[string]string `json:"players" jsonschema:"Player per role: TOP, JUNGLE, MID, ADC, SUPPORT"`
	Champions map[string]string `json:"champions" jsonschema:"Champion per role: TOP, JUNGLE, MID, ADC, SUPPORT"`
}

type PredictMatchArgs struct {
	Patch    string   `json:"patch" jsonschema:"Game patch such as 15.10"`
	Region   string   `json:"region" jsonschema:"Region code such as KR"`
	Model    string   `json:"model,omitempty" jsonschema:"voting, elastic or empty for both"`
	BlueTeam TeamArgs `json:"blue_team" jsonschema:"Blue side submission"`
	RedTeam  TeamArgs `json:"red_team" jsonschema:"Red side submission"`
}

type TeamArgsByName struct {
	Team string `json:"team" jsonschema:"Team name"`
}

type RoleArgs struct {
	Role string `json:"role" jsonschema:"TOP, JUNGLE, MID, ADC or SUPPORT"`
}

type NoArgs struct{}

type toolset struct {
	svc logic.PredictionService
}

func registerTools(server *mcp.Server, t *toolset) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "predict_match",
		Description: "Blue and red win probabilities for a hypothetical match",
	}, t.predictMatch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_teams",
		Description: "Teams known to the models",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolMarshal(t.svc.Teams())
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_players",
		Description: "Players seen for a team, grouped by role",
	}, t.teamPlayers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_champions",
		Description: "Champions seen in a role",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RoleArgs) (*mcp.CallToolResult, any, error) {
		role, ok := models.ParseRole(args.Role)
		if !ok {
			return toolError(fmt.Errorf("unknown role %q", args.Role)), nil, nil
		}
		return toolMarshal(t.svc.Champions(role))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_players",
		Description: "Players seen in a role",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RoleArgs) (*mcp.CallToolResult, any, error) {
		role, ok := models.ParseRole(args.Role)
		if !ok {
			return toolError(fmt.Errorf("unknown role %q", args.Role)), nil, nil
		}
		return toolMarshal(t.svc.Players(role))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_regions",
		Description: "Regions the models accept",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolMarshal(t.svc.Regions())
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_patches",
		Description: "Patches the models accept, newest first",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolMarshal(t.svc.Patches())
	})
}

func (t *toolset) predictMatch(ctx context.Context, req *mcp.CallToolRequest, args PredictMatchArgs) (*mcp.CallToolResult, any, error) {
	spec, err := args.spec()
	if err != nil {
		return toolError(err), nil, nil
	}

	var resp *models.PredictionResponse
	if model := strings.ToLower(strings.TrimSpace(args.Model)); model != "" && model != "both" {
		resp, err = t.svc.PredictModel(ctx, spec, model)
	} else {
		resp, err = t.svc.Predict(ctx, spec)
	}
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolMarshal(resp)
}

func (t *toolset) teamPlayers(ctx context.Context, req *mcp.CallToolRequest, args TeamArgsByName) (*mcp.CallToolResult, any, error) {
	players, err := t.svc.TeamPlayers(args.Team)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolMarshal(players)
}

func (a PredictMatchArgs) spec() (*models.MatchSpecification, error) {
	patch, err := models.ParsePatch(a.Patch)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Region) == "" {
		return nil, fmt.Errorf("region is required")
	}
	blue, err := a.BlueTeam.submission("blue_team")
	if err != nil {
		return nil, err
	}
	red, err := a.RedTeam.submission("red_team")
	if err != nil {
		return nil, err
	}
	return &models.MatchSpecification{
		Patch:    patch,
		Region:   a.Region,
		BlueTeam: blue,
		RedTeam:  red,
	}, nil
}

func (a TeamArgs) submission(field string) (models.TeamSubmission, error) {
	sub := models.TeamSubmission{
		TeamName:  a.TeamName,
		Players:   make(map[models.Role]string, len(a.Players)),
		Champions: make(map[models.Role]string, len(a.Champions)),
	}
	for raw, name := range a.Players {
		role, ok := models.ParseRole(raw)
		if !ok {
			return sub, fmt.Errorf("%s.players: unknown role %q", field, raw)
		}
		sub.Players[role] = name
	}
	for raw, name := range a.Champions {
		role, ok := models.ParseRole(raw)
		if !ok {
			return sub, fmt.Errorf("%s.champions: unknown role %q", field, raw)
		}
		sub.Champions[role] = name
	}
	return sub, nil
}

func toolMarshal(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
