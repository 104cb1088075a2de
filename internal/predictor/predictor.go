// Package predictor scores hypothetical matches with the trained models. A
// Predictor is immutable after New and safe for concurrent use.
package predictor

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/golstats/match-predictor/internal/models"
)

// ErrUnknownModel is returned for a model name other than voting or elastic.
var ErrUnknownModel = errors.New("unknown model")

// Models lists the model names in the order PredictAll returns them.
var Models = []string{models.ModelVoting, models.ModelElastic}

// Predictor bundles the artifacts with both scorers.
type Predictor struct {
	store     *Store
	assembler *Assembler
	scorers   map[string]Scorer
}

// New wraps a loaded store.
func New(store *Store) *Predictor {
	return &Predictor{
		store:     store,
		assembler: NewAssembler(store),
		scorers: map[string]Scorer{
			models.ModelVoting:  store.Voting,
			models.ModelElastic: store.Elastic,
		},
	}
}

// LoadPredictor loads the artifacts in dir and wraps them.
func LoadPredictor(dir, historicalPath string) (*Predictor, error) {
	store, err := Load(dir, historicalPath)
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

// Assemble exposes the feature row of spec.
func (p *Predictor) Assemble(spec *models.MatchSpecification) (FeatureRow, error) {
	return p.assembler.Assemble(spec)
}

// Predict scores spec with one model.
func (p *Predictor) Predict(spec *models.MatchSpecification, model string) (models.MatchPrediction, error) {
	scorer, ok := p.scorers[model]
	if !ok {
		return models.MatchPrediction{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	row, err := p.assembler.Assemble(spec)
	if err != nil {
		return models.MatchPrediction{}, err
	}
	return Score(row, scorer, spec)
}

// PredictAll assembles spec once and scores it with every model, voting
// first.
func (p *Predictor) PredictAll(spec *models.MatchSpecification) ([]models.MatchPrediction, error) {
	row, err := p.assembler.Assemble(spec)
	if err != nil {
		return nil, err
	}

	out := make([]models.MatchPrediction, len(Models))
	var g errgroup.Group
	for i, name := range Models {
		scorer := p.scorers[name]
		g.Go(func() error {
			pred, err := Score(row, scorer, spec)
			if err != nil {
				return err
			}
			out[i] = pred
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Score turns the scorer's blue win probability into a prediction. Blue is
// the winner only when the probability is strictly above one half.
func Score(row FeatureRow, scorer Scorer, spec *models.MatchSpecification) (models.MatchPrediction, error) {
	blue, err := scorer.PredictProba(row)
	if err != nil {
		return models.MatchPrediction{}, err
	}
	if math.IsNaN(blue) || blue < 0 || blue > 1 {
		return models.MatchPrediction{}, fmt.Errorf("%s: probability %v outside [0, 1]", scorer.Name(), blue)
	}

	pred := models.MatchPrediction{
		Model:              scorer.Name(),
		PredictedWinner:    models.SideRed,
		BlueWinProbability: blue,
		RedWinProbability:  1 - blue,
		WinnerProbability:  1 - blue,
	}
	if blue > 0.5 {
		pred.PredictedWinner = models.SideBlue
		pred.WinnerProbability = blue
	}
	if spec != nil {
		pred.WinnerTeam = spec.Team(pred.PredictedWinner).TeamName
	}
	return pred, nil
}

// FormatPrediction renders a prediction for the console.
func FormatPrediction(p models.MatchPrediction, label string) string {
	return fmt.Sprintf("%s Team:\nWinner: %s\nBlue win probability:%.1f%% || Red win probability:%.1f%%",
		label, p.PredictedWinner, p.BlueWinProbability*100, p.RedWinProbability*100)
}
