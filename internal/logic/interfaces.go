package logic

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/golstats/match-predictor/internal/models"
)

// RedisClient defines the subset of the Redis client used for caching
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// AuditQueue receives one audit row per scored model
type AuditQueue interface {
	Enqueue(audit models.PredictionAudit) bool
	QueueDepth() int
}

// Predictor is the scoring engine behind the service
type Predictor interface {
	Predict(spec *models.MatchSpecification, model string) (models.MatchPrediction, error)
	PredictAll(spec *models.MatchSpecification) ([]models.MatchPrediction, error)
	Teams() []string
	TeamPlayers(team string) (models.TeamPlayers, error)
	Champions(role models.Role) []string
	Players(role models.Role) []string
	Regions() []string
	Patches() []models.Patch
}

// PredictionService scores match specifications and serves the lookups the
// prediction form needs
type PredictionService interface {
	Predict(ctx context.Context, spec *models.MatchSpecification) (*models.PredictionResponse, error)
	PredictModel(ctx context.Context, spec *models.MatchSpecification, model string) (*models.PredictionResponse, error)
	Teams() []string
	TeamPlayers(team string) (models.TeamPlayers, error)
	Champions(role models.Role) []string
	Players(role models.Role) []string
	Regions() []string
	Patches() []models.Patch
}
