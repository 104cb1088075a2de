package logic

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/golstats/match-predictor/internal/models"
)

// MockPredictor implements Predictor with fixed probabilities
type MockPredictor struct {
	BlueProb     map[string]float64
	Err          error
	PredictCalls int
}

func (m *MockPredictor) predict(spec *models.MatchSpecification, model string) models.MatchPrediction {
	p := m.BlueProb[model]
	pred := models.MatchPrediction{Model: model, BlueWinProbability: p, RedWinProbability: 1 - p, PredictedWinner: models.SideRed, WinnerProbability: 1 - p, WinnerTeam: spec.RedTeam.TeamName}
	if p > 0.5 {
		pred.PredictedWinner = models.SideBlue
		pred.WinnerProbability = p
		pred.WinnerTeam = spec.BlueTeam.TeamName
	}
	return pred
}

func (m *MockPredictor) Predict(spec *models.MatchSpecification, model string) (models.MatchPrediction, error) {
	m.PredictCalls++
	if m.Err != nil {
		return models.MatchPrediction{}, m.Err
	}
	return m.predict(spec, model), nil
}

func (m *MockPredictor) PredictAll(spec *models.MatchSpecification) ([]models.MatchPrediction, error) {
	m.PredictCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return []models.MatchPrediction{m.predict(spec, models.ModelVoting), m.predict(spec, models.ModelElastic)}, nil
}

func (m *MockPredictor) Teams() []string { return []string{"gen.g", "t1"} }
func (m *MockPredictor) TeamPlayers(team string) (models.TeamPlayers, error) {
	return models.TeamPlayers{models.RoleMid: {"faker"}}, nil
}
func (m *MockPredictor) Champions(role models.Role) []string { return []string{"ahri"} }
func (m *MockPredictor) Players(role models.Role) []string   { return []string{"faker"} }
func (m *MockPredictor) Regions() []string                   { return []string{"cn", "kr"} }
func (m *MockPredictor) Patches() []models.Patch {
	return []models.Patch{models.MustParsePatch("15.2"), models.MustParsePatch("15.1")}
}

// MockRedis is an in-memory RedisClient
type MockRedis struct {
	Data   map[string]string
	GetErr error
	SetTTL time.Duration
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.GetErr != nil {
		return redis.NewStringResult("", m.GetErr)
	}
	v, ok := m.Data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	b, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", errors.New("unexpected value type"))
	}
	m.Data[key] = string(b)
	m.SetTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

// MockAudit records enqueued rows
type MockAudit struct {
	Rows []models.PredictionAudit
	Full bool
}

func (m *MockAudit) Enqueue(audit models.PredictionAudit) bool {
	if m.Full {
		return false
	}
	m.Rows = append(m.Rows, audit)
	return true
}

func (m *MockAudit) QueueDepth() int { return len(m.Rows) }
