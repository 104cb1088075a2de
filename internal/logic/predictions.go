package logic

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/models"
)

// cacheNamespace seeds the deterministic cache keys
var cacheNamespace = uuid.MustParse("6f1c2f0e-6a4b-4c55-9a8e-0f3d5b1e2c77")

const allModels = "all"

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golstats_predictions_total",
		Help: "Total number of predictions served, by model and predicted winner",
	}, []string{"model", "winner"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "golstats_prediction_duration_seconds",
		Help:    "Duration of feature assembly and scoring",
		Buckets: prometheus.DefBuckets,
	})

	predictionCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golstats_prediction_cache_total",
		Help: "Prediction cache lookups, by result",
	}, []string{"result"})
)

// PredictionConfig wires the prediction service. Redis and Audit are optional.
type PredictionConfig struct {
	Predictor Predictor
	Redis     RedisClient
	CacheTTL  time.Duration
	Audit     AuditQueue
	Logger    *zap.SugaredLogger
}

type predictionService struct {
	predictor Predictor
	redis     RedisClient
	cacheTTL  time.Duration
	audit     AuditQueue
	logger    *zap.SugaredLogger
}

func NewPredictionService(cfg PredictionConfig) PredictionService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &predictionService{
		predictor: cfg.Predictor,
		redis:     cfg.Redis,
		cacheTTL:  cfg.CacheTTL,
		audit:     cfg.Audit,
		logger:    logger,
	}
}

// Predict scores spec with every model
func (s *predictionService) Predict(ctx context.Context, spec *models.MatchSpecification) (*models.PredictionResponse, error) {
	return s.predict(ctx, spec, allModels)
}

// PredictModel scores spec with one model
func (s *predictionService) PredictModel(ctx context.Context, spec *models.MatchSpecification, model string) (*models.PredictionResponse, error) {
	return s.predict(ctx, spec, model)
}

func (s *predictionService) predict(ctx context.Context, spec *models.MatchSpecification, model string) (*models.PredictionResponse, error) {
	key, keyErr := cacheKey(spec, model)
	if keyErr == nil {
		if cached := s.fromCache(ctx, key); cached != nil {
			return cached, nil
		}
	}

	start := time.Now()
	var preds []models.MatchPrediction
	if model == allModels {
		var err error
		if preds, err = s.predictor.PredictAll(spec); err != nil {
			return nil, err
		}
	} else {
		pred, err := s.predictor.Predict(spec, model)
		if err != nil {
			return nil, err
		}
		preds = []models.MatchPrediction{pred}
	}
	predictionDuration.Observe(time.Since(start).Seconds())

	resp := &models.PredictionResponse{
		RequestID:   uuid.New(),
		Patch:       spec.Patch,
		Region:      spec.Region,
		BlueTeam:    spec.BlueTeam.TeamName,
		RedTeam:     spec.RedTeam.TeamName,
		Predictions: preds,
		GeneratedAt: time.Now().UTC(),
	}

	for _, p := range preds {
		predictionsTotal.WithLabelValues(p.Model, string(p.PredictedWinner)).Inc()
		s.enqueueAudit(resp, p)
	}

	if keyErr == nil {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

func (s *predictionService) fromCache(ctx context.Context, key string) *models.PredictionResponse {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warnw("Prediction cache read failed", "key", key, "error", err)
		}
		predictionCache.WithLabelValues("miss").Inc()
		return nil
	}

	var resp models.PredictionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		s.logger.Warnw("Discarding corrupt cache entry", "key", key, "error", err)
		predictionCache.WithLabelValues("miss").Inc()
		return nil
	}
	predictionCache.WithLabelValues("hit").Inc()
	resp.Cached = true
	return &resp
}

func (s *predictionService) toCache(ctx context.Context, key string, resp *models.PredictionResponse) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warnw("Prediction cache write failed", "key", key, "error", err)
	}
}

func (s *predictionService) enqueueAudit(resp *models.PredictionResponse, p models.MatchPrediction) {
	if s.audit == nil {
		return
	}
	ok := s.audit.Enqueue(models.PredictionAudit{
		RequestID:   resp.RequestID,
		Timestamp:   resp.GeneratedAt,
		Model:       p.Model,
		Patch:       resp.Patch.String(),
		Region:      resp.Region,
		BlueTeam:    resp.BlueTeam,
		RedTeam:     resp.RedTeam,
		BlueWinProb: p.BlueWinProbability,
		Winner:      string(p.PredictedWinner),
	})
	if !ok {
		s.logger.Warnw("Audit queue full, dropping row", "requestID", resp.RequestID, "model", p.Model)
	}
}

// cacheKey derives a stable key from the canonical JSON of spec. Map keys are
// sorted by encoding/json.
func cacheKey(spec *models.MatchSpecification, model string) (string, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	return "prediction:" + model + ":" + uuid.NewMD5(cacheNamespace, data).String(), nil
}

func (s *predictionService) Teams() []string { return s.predictor.Teams() }

func (s *predictionService) TeamPlayers(team string) (models.TeamPlayers, error) {
	return s.predictor.TeamPlayers(team)
}

func (s *predictionService) Champions(role models.Role) []string { return s.predictor.Champions(role) }

func (s *predictionService) Players(role models.Role) []string { return s.predictor.Players(role) }

func (s *predictionService) Regions() []string { return s.predictor.Regions() }

func (s *predictionService) Patches() []models.Patch { return s.predictor.Patches() }
