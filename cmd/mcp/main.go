// Command mcp serves the predictor as MCP tools over stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/golstats/match-predictor/internal/config"
	"github.com/golstats/match-predictor/internal/logic"
	"github.com/golstats/match-predictor/internal/predictor"
	"github.com/golstats/match-predictor/internal/worker"
)

func main() {
	artifactDir := flag.String("artifacts", "", "artifact directory (defaults to ARTIFACT_DIR)")
	flag.Parse()

	config.LoadDotEnv()
	env := os.Getenv("ENV")
	logger, err := config.NewLogger(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	dir := *artifactDir
	if dir == "" {
		dir = os.Getenv("ARTIFACT_DIR")
	}
	if dir == "" {
		sugar.Fatal("No artifact directory: set ARTIFACT_DIR or pass -artifacts")
	}

	p, err := predictor.LoadPredictor(dir, os.Getenv("HISTORICAL_DATA_PATH"))
	if err != nil {
		sugar.Fatalw("Failed to load artifacts", "error", err, "dir", dir)
	}

	svc := logic.NewPredictionService(logic.PredictionConfig{
		Predictor: p,
		Audit:     worker.NopQueue{},
		Logger:    sugar,
	})

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "golstats-predictor",
		Version: "1.0.0",
	}, nil)
	registerTools(server, &toolset{svc: svc})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow("Serving MCP tools over stdio", "artifacts", dir)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		sugar.Fatalw("MCP server stopped", "error", err)
	}
}
