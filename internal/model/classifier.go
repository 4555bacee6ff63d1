package model

import (
	"errors"
	"fmt"
	"math"
)

// FeatureRow is a single tabular record keyed by column name. Categorical
// columns expect string values, numeric columns expect float64 values.
type FeatureRow map[string]interface{}

// Classifier estimates class probabilities for a single feature row. The
// returned map is keyed by class label.
type Classifier interface {
	PredictProba(row FeatureRow) (map[string]float64, error)
}

// Encoded ordinal for categorical values the training job never saw.
const unknownCategory = -1

// GradientBoostedModel is a binary gradient-boosted tree classifier restored
// from an Artifact. It is immutable after loading and safe for concurrent
// use from multiple request handlers.
type GradientBoostedModel struct {
	columns       []Column
	categories    map[string]map[string]int
	classes       []string
	positiveClass string
	negativeClass string
	baseScore     float64
	trees         []Tree
}

// Classes returns the class labels the model distinguishes.
func (m *GradientBoostedModel) Classes() []string {
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

// PositiveClass returns the label of the attack class.
func (m *GradientBoostedModel) PositiveClass() string {
	return m.positiveClass
}

// ColumnNames returns the feature schema in training order.
func (m *GradientBoostedModel) ColumnNames() []string {
	names := make([]string, len(m.columns))
	for i, col := range m.columns {
		names[i] = col.Name
	}
	return names
}

// PredictProba encodes the row against the artifact's feature schema, sums
// the margin contributions of all trees and squashes the result through a
// sigmoid. The two returned probabilities always sum to 1.
func (m *GradientBoostedModel) PredictProba(row FeatureRow) (map[string]float64, error) {
	vec, err := m.encode(row)
	if err != nil {
		return nil, err
	}

	margin := m.baseScore
	for i := range m.trees {
		value, err := m.trees[i].traverse(vec)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		margin += value
	}

	proba := sigmoid(margin)

	return map[string]float64{
		m.positiveClass: proba,
		m.negativeClass: 1 - proba,
	}, nil
}

// encode turns a named feature row into the ordered float vector the trees
// split on. The row must carry every schema column with the right dynamic
// type; extra keys are ignored.
func (m *GradientBoostedModel) encode(row FeatureRow) ([]float64, error) {
	vec := make([]float64, len(m.columns))
	for i, col := range m.columns {
		raw, ok := row[col.Name]
		if !ok {
			return nil, fmt.Errorf("feature row is missing column %q", col.Name)
		}

		switch col.Kind {
		case KindCategorical:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("column %q expects a string value, got %T", col.Name, raw)
			}
			code, ok := m.categories[col.Name][s]
			if !ok {
				code = unknownCategory
			}
			vec[i] = float64(code)
		case KindNumeric:
			f, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("column %q expects a numeric value, got %T", col.Name, raw)
			}
			vec[i] = f
		default:
			return nil, fmt.Errorf("column %q has unsupported kind %q", col.Name, col.Kind)
		}
	}
	return vec, nil
}

// traverse walks the tree from the root until it reaches a leaf. Child
// indices were validated at load time to point forward, so the walk always
// terminates.
func (t *Tree) traverse(vec []float64) (float64, error) {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(vec) {
			return 0, errors.New("feature index out of range")
		}
		if vec[node.FeatureIdx] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
