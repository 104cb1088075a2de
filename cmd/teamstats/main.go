// Command teamstats writes the season team statistics table to CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golstats/match-predictor/internal/collector"
	"github.com/golstats/match-predictor/internal/config"
)

func main() {
	out := flag.String("out", "", "output CSV path (defaults to TEAM_STATS_CSV_PATH)")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.LoadCollector()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *out != "" {
		cfg.TeamStatsCSVPath = *out
	}

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := collector.NewHTTPFetcher(collector.FetcherConfig{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		DelayMin:  cfg.DelayMin,
		DelayMax:  cfg.DelayMax,
		Logger:    sugar,
	})

	rows, err := collector.NewTeamStatsScraper(fetcher, cfg.BaseURL, cfg.TeamStatsSeason, sugar).Scrape(ctx)
	if err != nil {
		sugar.Fatalw("Team stats scrape failed", "error", err)
	}
	if err := collector.WriteTeamStatsCSV(cfg.TeamStatsCSVPath, rows); err != nil {
		sugar.Fatalw("Failed to write team stats", "error", err, "path", cfg.TeamStatsCSVPath)
	}
	sugar.Infow("Team stats saved", "teams", len(rows), "path", cfg.TeamStatsCSVPath)
}
