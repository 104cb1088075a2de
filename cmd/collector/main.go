// Command collector scrapes per-player match statistics from gol.gg into a
// CSV file, optionally mirroring every batch into PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/golstats/match-predictor/internal/collector"
	"github.com/golstats/match-predictor/internal/config"
)

func main() {
	tournament := flag.String("tournament", "", "scrape a single tournament match-list URL instead of every listed tournament")
	limit := flag.Int("limit", 0, "maximum number of tournaments to scrape (0 = all)")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.LoadCollector()
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

	opts := collector.RunOptions{TournamentURL: *tournament, Limit: *limit}
	if err := run(cfg, opts, logger.Sugar()); err != nil {
		logger.Sugar().Fatalw("Collector failed", "error", err)
	}
}

func run(cfg *config.CollectorConfig, opts collector.RunOptions, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := collector.NewHTTPFetcher(collector.FetcherConfig{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		DelayMin:  cfg.DelayMin,
		DelayMax:  cfg.DelayMax,
		Logger:    logger,
	})

	ledger, err := collector.LoadLedger(cfg.GameIDPath)
	if err != nil {
		return err
	}
	logger.Infow("Loaded scraped game IDs", "path", cfg.GameIDPath, "count", ledger.Len())

	sinks := []collector.RecordSink{collector.NewCsvAppender(cfg.MatchCSVPath, nil)}
	if cfg.PostgresURL != "" {
		db, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()

		pg := collector.NewPostgresSink(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("create match_stats: %w", err)
		}
		sinks = append(sinks, pg)
	}

	scraper := collector.NewStatsScraper(fetcher, cfg.BaseURL, ledger, logger, sinks...)
	c := collector.NewCollector(
		collector.NewTournamentLister(fetcher, cfg.BaseURL, logger),
		collector.NewGameLinkResolver(fetcher, cfg.BaseURL, logger),
		scraper,
		cfg.BatchSize,
		logger,
	)

	_, err = c.Run(ctx, opts)
	return err
}
