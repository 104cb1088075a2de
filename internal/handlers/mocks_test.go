package handlers

import (
	"context"

	"github.com/golstats/match-predictor/internal/models"
)

// MockPredictionService
type MockPredictionService struct {
	PredictFunc      func(ctx context.Context, spec *models.MatchSpecification) (*models.PredictionResponse, error)
	PredictModelFunc func(ctx context.Context, spec *models.MatchSpecification, model string) (*models.PredictionResponse, error)
	TeamsFunc        func() []string
	TeamPlayersFunc  func(team string) (models.TeamPlayers, error)
	ChampionsFunc    func(role models.Role) []string
	PlayersFunc      func(role models.Role) []string
	RegionsFunc      func() []string
	PatchesFunc      func() []models.Patch
}

func (m *MockPredictionService) Predict(ctx context.Context, spec *models.MatchSpecification) (*models.PredictionResponse, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, spec)
	}
	return &models.PredictionResponse{}, nil
}

func (m *MockPredictionService) PredictModel(ctx context.Context, spec *models.MatchSpecification, model string) (*models.PredictionResponse, error) {
	if m.PredictModelFunc != nil {
		return m.PredictModelFunc(ctx, spec, model)
	}
	return &models.PredictionResponse{}, nil
}

func (m *MockPredictionService) Teams() []string {
	if m.TeamsFunc != nil {
		return m.TeamsFunc()
	}
	return nil
}

func (m *MockPredictionService) TeamPlayers(team string) (models.TeamPlayers, error) {
	if m.TeamPlayersFunc != nil {
		return m.TeamPlayersFunc(team)
	}
	return models.TeamPlayers{}, nil
}

func (m *MockPredictionService) Champions(role models.Role) []string {
	if m.ChampionsFunc != nil {
		return m.ChampionsFunc(role)
	}
	return nil
}

func (m *MockPredictionService) Players(role models.Role) []string {
	if m.PlayersFunc != nil {
		return m.PlayersFunc(role)
	}
	return nil
}

func (m *MockPredictionService) Regions() []string {
	if m.RegionsFunc != nil {
		return m.RegionsFunc()
	}
	return nil
}

func (m *MockPredictionService) Patches() []models.Patch {
	if m.PatchesFunc != nil {
		return m.PatchesFunc()
	}
	return nil
}

type MockAuditQueue struct {
	Depth int
}

func (m *MockAuditQueue) QueueDepth() int { return m.Depth }
