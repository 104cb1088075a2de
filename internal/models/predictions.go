package models

import (
	"time"

	"github.com/google/uuid"
)

// Model names accepted by the prediction endpoints.
const (
	ModelVoting  = "voting"
	ModelElastic = "elastic"
)

// ModelLabels maps a model name to its display label.
var ModelLabels = map[string]string{
	ModelVoting:  "Voting Ensemble",
	ModelElastic: "Elastic Net",
}

// TeamSubmission is one side's roster and champion picks keyed by role.
type TeamSubmission struct {
	TeamName  string          `json:"team_name" validate:"required"`
	Players   map[Role]string `json:"players" validate:"required,len=5,dive,required"`
	Champions map[Role]string `json:"champions" validate:"required,len=5,dive,required"`
}

// MatchSpecification describes a hypothetical match to score.
type MatchSpecification struct {
	Patch    Patch          `json:"patch"`
	Region   string         `json:"region" validate:"required"`
	BlueTeam TeamSubmission `json:"blue_team"`
	RedTeam  TeamSubmission `json:"red_team"`
}

// Team returns the submission for a side.
func (m *MatchSpecification) Team(side Side) *TeamSubmission {
	if side == SideBlue {
		return &m.BlueTeam
	}
	return &m.RedTeam
}

// MatchPrediction is the outcome of scoring one specification with one model.
type MatchPrediction struct {
	Model              string  `json:"model"`
	PredictedWinner    Side    `json:"predicted_winner"`
	BlueWinProbability float64 `json:"blue_win_probability"`
	RedWinProbability  float64 `json:"red_win_probability"`
	WinnerTeam         string  `json:"winner_team,omitempty"`
	WinnerProbability  float64 `json:"winner_probability"`
}

// PredictionResponse bundles the predictions of every requested model.
type PredictionResponse struct {
	RequestID   uuid.UUID         `json:"request_id"`
	Patch       Patch             `json:"patch"`
	Region      string            `json:"region"`
	BlueTeam    string            `json:"blue_team"`
	RedTeam     string            `json:"red_team"`
	Predictions []MatchPrediction `json:"predictions"`
	Cached      bool              `json:"cached"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// PredictionAudit is one row of the prediction log.
type PredictionAudit struct {
	RequestID   uuid.UUID
	Timestamp   time.Time
	Model       string
	Patch       string
	Region      string
	BlueTeam    string
	RedTeam     string
	BlueWinProb float64
	Winner      string
}

// TeamPlayers maps each role to the players seen for a team in that role.
type TeamPlayers map[Role][]string
