// @title GolStats Match Predictor API
// @version 1.0
// @description Win probability predictions for professional League of Legends matches.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/golstats/match-predictor/docs"
	"github.com/golstats/match-predictor/internal/config"
	"github.com/golstats/match-predictor/internal/handlers"
	"github.com/golstats/match-predictor/internal/logic"
	"github.com/golstats/match-predictor/internal/predictor"
	"github.com/golstats/match-predictor/internal/worker"
)

func main() {
	envFile := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if envFile != "" {
		sugar.Infow("Loaded environment file", "path", envFile)
	}

	if err := run(cfg, logger); err != nil {
		sugar.Fatalw("Server exited", "error", err)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := predictor.LoadPredictor(cfg.ArtifactDir, cfg.HistoricalDataPath)
	if err != nil {
		return fmt.Errorf("load artifacts: %w", err)
	}
	sugar.Infow("Loaded model artifacts", "dir", cfg.ArtifactDir, "teams", len(p.Teams()))

	predictionCfg := logic.PredictionConfig{
		Predictor: p,
		CacheTTL:  cfg.CacheTTL,
		Audit:     worker.NopQueue{},
		Logger:    sugar,
	}
	handlerCfg := handlers.Config{
		AuditQueue: worker.NopQueue{},
		Logger:     logger,
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			sugar.Warnw("Redis unreachable, predictions will not be cached until it recovers", "error", err)
		}
		predictionCfg.Redis = rdb
		handlerCfg.Redis = rdb
	}

	var pool *worker.Pool
	if cfg.ClickHouseURL != "" {
		ch, err := openClickHouse(ctx, cfg.ClickHouseURL)
		if err != nil {
			return err
		}
		defer ch.Close()

		pool = worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    ch,
			Logger:        logger,
		})
		pool.Start(context.Background())
		defer pool.Stop()

		predictionCfg.Audit = pool
		handlerCfg.AuditQueue = pool
		handlerCfg.ClickHouse = ch
	}

	handlerCfg.Prediction = logic.NewPredictionService(predictionCfg)
	h := handlers.New(handlerCfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newRouter(cfg, h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infow("Starting server", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sugar.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openClickHouse(ctx context.Context, dsn string) (driver.Conn, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse CLICKHOUSE_URL: %w", err)
	}
	ch, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}
	if err := ch.Ping(ctx); err != nil {
		ch.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	if err := worker.EnsureSchema(ctx, ch); err != nil {
		ch.Close()
		return nil, fmt.Errorf("create prediction_log: %w", err)
	}
	return ch, nil
}

func newRouter(cfg *config.Config, h *handlers.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/predictions", h.PredictMatch)
		r.Post("/predictions/{model}", h.PredictMatchModel)

		r.Get("/teams", h.ListTeams)
		r.Get("/teams/{team}/players", h.GetTeamPlayers)
		r.Get("/roles/{role}/champions", h.ListChampions)
		r.Get("/roles/{role}/players", h.ListPlayers)
		r.Get("/regions", h.ListRegions)
		r.Get("/patches", h.ListPatches)
	})

	return r
}
