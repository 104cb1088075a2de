package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/models"
	"github.com/golstats/match-predictor/internal/predictor"
)

const validSpec = `{
	"patch": "15.10",
	"region": "KR",
	"blue_team": {
		"team_name": "T1",
		"players": {"TOP": "Zeus", "JUNGLE": "Oner", "MID": "Faker", "ADC": "Gumayusi", "SUPPORT": "Keria"},
		"champions": {"TOP": "Ksante", "JUNGLE": "Vi", "MID": "Azir", "ADC": "Varus", "SUPPORT": "Rell"}
	},
	"red_team": {
		"team_name": "Gen.G",
		"players": {"TOP": "Kiin", "JUNGLE": "Canyon", "MID": "Chovy", "ADC": "Peyz", "SUPPORT": "Lehends"},
		"champions": {"TOP": "Jax", "JUNGLE": "Sejuani", "MID": "Orianna", "ADC": "Kaisa", "SUPPORT": "Nautilus"}
	}
}`

func newTestHandler(svc *MockPredictionService) http.Handler {
	h := New(Config{
		AuditQueue: &MockAuditQueue{Depth: 3},
		Logger:     zap.NewNop(),
		Prediction: svc,
	})

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Post("/predictions", h.PredictMatch)
	r.Post("/predictions/{model}", h.PredictMatchModel)
	r.Get("/teams", h.ListTeams)
	r.Get("/teams/{team}/players", h.GetTeamPlayers)
	r.Get("/roles/{role}/champions", h.ListChampions)
	r.Get("/roles/{role}/players", h.ListPlayers)
	r.Get("/regions", h.ListRegions)
	r.Get("/patches", h.ListPatches)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestPredictMatch_TableDriven(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		predictErr     error
		expectedStatus int
		expectedField  string
	}{
		{
			name:           "Valid Specification",
			body:           validSpec,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid JSON",
			body:           `{"patch": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Patch",
			body:           strings.Replace(validSpec, `"patch": "15.10",`, ``, 1),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "patch",
		},
		{
			name:           "Missing Region",
			body:           strings.Replace(validSpec, `"region": "KR",`, ``, 1),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "region",
		},
		{
			name:           "Missing Team Name",
			body:           strings.Replace(validSpec, `"team_name": "T1",`, ``, 1),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "blue_team.team_name",
		},
		{
			name:           "Unknown Champion",
			body:           validSpec,
			predictErr:     fmt.Errorf("assemble: %w", &predictor.UnknownCategoryError{Field: "red_team.champions.TOP", Value: "jax"}),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "red_team.champions.TOP",
		},
		{
			name:           "Incomplete Roster",
			body:           validSpec,
			predictErr:     &predictor.RosterError{Field: "blue_team.players.MID"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "blue_team.players.MID",
		},
		{
			name:           "Scoring Failure",
			body:           validSpec,
			predictErr:     errors.New("probability out of range"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.MatchSpecification
			svc := &MockPredictionService{
				PredictFunc: func(ctx context.Context, spec *models.MatchSpecification) (*models.PredictionResponse, error) {
					got = spec
					if tt.predictErr != nil {
						return nil, tt.predictErr
					}
					return &models.PredictionResponse{BlueTeam: spec.BlueTeam.TeamName, RedTeam: spec.RedTeam.TeamName}, nil
				},
			}

			req := httptest.NewRequest("POST", "/predictions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			newTestHandler(svc).ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedField != "" {
				if resp := decodeError(t, w); resp.Field != tt.expectedField {
					t.Errorf("field = %q, want %q", resp.Field, tt.expectedField)
				}
			}
			if tt.expectedStatus == http.StatusOK {
				if got == nil || got.Patch != models.MustParsePatch("15.10") {
					t.Errorf("service received %+v, want patch 15.10", got)
				}
				if got.BlueTeam.Players[models.RoleMid] != "Faker" {
					t.Errorf("blue MID = %q, want Faker", got.BlueTeam.Players[models.RoleMid])
				}
			}
		})
	}
}

func TestPredictMatch_BodyTooLarge(t *testing.T) {
	called := false
	svc := &MockPredictionService{
		PredictFunc: func(ctx context.Context, spec *models.MatchSpecification) (*models.PredictionResponse, error) {
			called = true
			return &models.PredictionResponse{}, nil
		},
	}

	body := `{"region": "` + strings.Repeat("a", MaxBodySize) + `"}`
	req := httptest.NewRequest("POST", "/predictions", strings.NewReader(body))
	w := httptest.NewRecorder()
	newTestHandler(svc).ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
	if called {
		t.Error("service should not be called for an oversized body")
	}
}

func TestPredictMatchModel(t *testing.T) {
	tests := []struct {
		name           string
		model          string
		predictErr     error
		expectedStatus int
		expectedModel  string
	}{
		{name: "Voting", model: "voting", expectedStatus: http.StatusOK, expectedModel: "voting"},
		{name: "Elastic Case Insensitive", model: "Elastic", expectedStatus: http.StatusOK, expectedModel: "elastic"},
		{name: "Unknown Model", model: "xgboost", expectedStatus: http.StatusNotFound},
		{name: "Service Unknown Model", model: "voting", predictErr: predictor.ErrUnknownModel, expectedStatus: http.StatusNotFound, expectedModel: "voting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotModel string
			svc := &MockPredictionService{
				PredictModelFunc: func(ctx context.Context, spec *models.MatchSpecification, model string) (*models.PredictionResponse, error) {
					gotModel = model
					if tt.predictErr != nil {
						return nil, tt.predictErr
					}
					return &models.PredictionResponse{}, nil
				},
			}

			req := httptest.NewRequest("POST", "/predictions/"+tt.model, strings.NewReader(validSpec))
			w := httptest.NewRecorder()
			newTestHandler(svc).ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if gotModel != tt.expectedModel {
				t.Errorf("model = %q, want %q", gotModel, tt.expectedModel)
			}
		})
	}
}

func TestLookups(t *testing.T) {
	svc := &MockPredictionService{
		TeamsFunc: func() []string { return []string{"gen.g", "t1"} },
		ChampionsFunc: func(role models.Role) []string {
			if role != models.RoleSupport {
				return nil
			}
			return []string{"nautilus", "rell"}
		},
		PlayersFunc: func(role models.Role) []string { return []string{string(role)} },
		RegionsFunc: func() []string { return []string{"cn", "kr"} },
		PatchesFunc: func() []models.Patch {
			return []models.Patch{models.MustParsePatch("15.10"), models.MustParsePatch("15.2")}
		},
		TeamPlayersFunc: func(team string) (models.TeamPlayers, error) {
			if team != "t1" {
				return nil, &predictor.UnknownCategoryError{Field: "team", Value: team}
			}
			return models.TeamPlayers{models.RoleMid: {"faker"}}, nil
		},
	}
	handler := newTestHandler(svc)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"Teams", "/teams", http.StatusOK, `{"items":["gen.g","t1"],"count":2}`},
		{"Support Champions", "/roles/support/champions", http.StatusOK, `{"items":["nautilus","rell"],"count":2}`},
		{"Empty Role Returns Empty List", "/roles/TOP/champions", http.StatusOK, `{"items":[],"count":0}`},
		{"Players", "/roles/ADC/players", http.StatusOK, `{"items":["ADC"],"count":1}`},
		{"Unknown Role", "/roles/bot/players", http.StatusNotFound, ""},
		{"Regions", "/regions", http.StatusOK, `{"items":["cn","kr"],"count":2}`},
		{"Patches", "/patches", http.StatusOK, `{"items":["15.10","15.2"],"count":2}`},
		{"Team Players", "/teams/t1/players", http.StatusOK, `{"MID":["faker"]}`},
		{"Unknown Team", "/teams/g2/players", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedBody != "" {
				if got := strings.TrimSpace(w.Body.String()); got != tt.expectedBody {
					t.Errorf("body = %s, want %s", got, tt.expectedBody)
				}
			}
		})
	}
}

func TestHealthAndReady(t *testing.T) {
	handler := newTestHandler(&MockPredictionService{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ready status = %d", w.Code)
	}
	var body struct {
		Ready      bool `json:"ready"`
		QueueDepth int  `json:"queueDepth"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Ready || body.QueueDepth != 3 {
		t.Errorf("ready = %+v, want ready with depth 3", body)
	}
}
