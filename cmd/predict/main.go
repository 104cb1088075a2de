// Command predict scores a match specification read from a JSON file and
// prints the result of each model.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/golstats/match-predictor/internal/config"
	"github.com/golstats/match-predictor/internal/models"
	"github.com/golstats/match-predictor/internal/predictor"
)

func main() {
	specPath := flag.String("spec", "", "path to a JSON match specification (required)")
	model := flag.String("model", "both", "model to use: both, voting or elastic")
	artifactDir := flag.String("artifacts", "", "artifact directory (defaults to ARTIFACT_DIR)")
	flag.Parse()

	config.LoadDotEnv()
	if *specPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := config.NewLogger(os.Getenv("ENV"))
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

	spec, err := readSpec(*specPath)
	if err != nil {
		sugar.Fatalw("Failed to read match specification", "error", err, "path", *specPath)
	}

	p, err := predictor.LoadPredictor(dir, os.Getenv("HISTORICAL_DATA_PATH"))
	if err != nil {
		sugar.Fatalw("Failed to load artifacts", "error", err, "dir", dir)
	}

	var results []models.MatchPrediction
	if *model == "both" {
		results, err = p.PredictAll(spec)
	} else {
		var r models.MatchPrediction
		r, err = p.Predict(spec, *model)
		results = []models.MatchPrediction{r}
	}
	if err != nil {
		sugar.Fatalw("Prediction failed", "error", err, "model", *model)
	}

	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(predictor.FormatPrediction(r, models.ModelLabels[r.Model]))
	}
}

func readSpec(path string) (*models.MatchSpecification, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spec: %w", err)
	}
	defer f.Close()

	var spec models.MatchSpecification
	if err := json.NewDecoder(f).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode spec %s: %w", path, err)
	}
	if spec.Patch.IsZero() {
		return nil, fmt.Errorf("spec %s: patch is required", path)
	}
	return &spec, nil
}
