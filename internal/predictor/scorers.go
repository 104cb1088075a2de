package predictor

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// Scorer returns the probability that the blue side wins.
type Scorer interface {
	Name() string
	PredictProba(row FeatureRow) (float64, error)
}

// StandardScaler centers and scales features before a linear model.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LogisticModel is a binary logistic regression over the feature row.
type LogisticModel struct {
	name      string
	Coef      []float64       `json:"coef"`
	Intercept float64         `json:"intercept"`
	Scaler    *StandardScaler `json:"scaler,omitempty"`
}

func (m *LogisticModel) Name() string { return m.name }

func (m *LogisticModel) PredictProba(row FeatureRow) (float64, error) {
	if len(row.Values) != len(m.Coef) {
		return 0, fmt.Errorf("%s: row has %d features, model expects %d", m.name, len(row.Values), len(m.Coef))
	}
	z := m.Intercept
	for i, x := range row.Values {
		if m.Scaler != nil {
			scale := m.Scaler.Scale[i]
			if scale == 0 {
				scale = 1
			}
			x = (x - m.Scaler.Mean[i]) / scale
		}
		z += m.Coef[i] * x
	}
	return sigmoid(z), nil
}

func (m *LogisticModel) validate(features int) error {
	if len(m.Coef) != features {
		return fmt.Errorf("logistic model has %d coefficients for %d features", len(m.Coef), features)
	}
	if m.Scaler != nil && (len(m.Scaler.Mean) != features || len(m.Scaler.Scale) != features) {
		return fmt.Errorf("scaler size does not match %d features", features)
	}
	return nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// TreeNode is one node of a decision tree. Leaves have Left == -1 and carry
// the class counts or fractions in Value as [red, blue].
type TreeNode struct {
	Feature   int        `json:"feature"`
	Threshold float64    `json:"threshold"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
	Value     [2]float64 `json:"value"`
}

// DecisionTree is a flattened binary tree rooted at node 0. Samples go left
// when feature <= threshold.
type DecisionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *DecisionTree) proba(values []float64) float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Left < 0 {
			total := n.Value[0] + n.Value[1]
			if total == 0 {
				return 0.5
			}
			return n.Value[1] / total
		}
		if values[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (t *DecisionTree) validate(features int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Left < 0 {
			continue
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children", i)
		}
		if n.Feature < 0 || n.Feature >= features {
			return fmt.Errorf("node %d splits on feature %d of %d", i, n.Feature, features)
		}
	}
	return nil
}

// ForestModel averages the leaf probabilities of its trees.
type ForestModel struct {
	name  string
	Trees []DecisionTree `json:"trees"`
}

func (m *ForestModel) Name() string { return m.name }

func (m *ForestModel) PredictProba(row FeatureRow) (float64, error) {
	sum := 0.0
	for i := range m.Trees {
		sum += m.Trees[i].proba(row.Values)
	}
	return sum / float64(len(m.Trees)), nil
}

func (m *ForestModel) validate(features int) error {
	if len(m.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(features); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// VotingEnsemble is a soft-voting ensemble: the weighted mean of its members'
// probabilities.
type VotingEnsemble struct {
	name    string
	members []Scorer
	weights []float64
}

func (m *VotingEnsemble) Name() string { return m.name }

func (m *VotingEnsemble) PredictProba(row FeatureRow) (float64, error) {
	sum, total := 0.0, 0.0
	for i, member := range m.members {
		p, err := member.PredictProba(row)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", m.name, err)
		}
		sum += m.weights[i] * p
		total += m.weights[i]
	}
	return sum / total, nil
}

type modelEnvelope struct {
	Type       string            `json:"type"`
	Voting     string            `json:"voting"`
	Weights    []float64         `json:"weights"`
	Estimators []json.RawMessage `json:"estimators"`
}

// DecodeScorer decodes a model artifact and checks it against the number of
// features it will receive.
func DecodeScorer(name string, data []byte, features int) (Scorer, error) {
	var env modelEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", name, err)
	}

	switch env.Type {
	case "logistic":
		m := &LogisticModel{name: name}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("decode model %s: %w", name, err)
		}
		if err := m.validate(features); err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}
		return m, nil

	case "forest":
		m := &ForestModel{name: name}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("decode model %s: %w", name, err)
		}
		if err := m.validate(features); err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}
		return m, nil

	case "voting":
		if env.Voting != "soft" {
			return nil, fmt.Errorf("model %s: voting %q has no probabilities, only soft voting is supported", name, env.Voting)
		}
		if len(env.Estimators) == 0 {
			return nil, fmt.Errorf("model %s: no estimators", name)
		}
		weights := env.Weights
		if weights == nil {
			weights = make([]float64, len(env.Estimators))
			for i := range weights {
				weights[i] = 1
			}
		}
		if len(weights) != len(env.Estimators) {
			return nil, fmt.Errorf("model %s: %d weights for %d estimators", name, len(weights), len(env.Estimators))
		}
		total := 0.0
		for _, w := range weights {
			if w < 0 {
				return nil, fmt.Errorf("model %s: negative weight", name)
			}
			total += w
		}
		if total == 0 {
			return nil, fmt.Errorf("model %s: weights sum to zero", name)
		}

		m := &VotingEnsemble{name: name, weights: weights}
		for i, raw := range env.Estimators {
			member, err := DecodeScorer(fmt.Sprintf("%s[%d]", name, i), raw, features)
			if err != nil {
				return nil, err
			}
			m.members = append(m.members, member)
		}
		return m, nil
	}

	return nil, fmt.Errorf("model %s: unknown type %q", name, env.Type)
}
