package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const supportedFormatVersion = 1

// Load restores a classifier from the artifact file at path. Every
// structural problem with the artifact is a load error; callers are expected
// to treat any error as fatal rather than start in a degraded state.
func Load(path string) (*GradientBoostedModel, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if err := validate(&artifact); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	var negative string
	for _, class := range artifact.Classes {
		if class != artifact.PositiveClass {
			negative = class
		}
	}

	return &GradientBoostedModel{
		columns:       artifact.Columns,
		categories:    artifact.Categories,
		classes:       artifact.Classes,
		positiveClass: artifact.PositiveClass,
		negativeClass: negative,
		baseScore:     artifact.BaseScore,
		trees:         artifact.Trees,
	}, nil
}

func validate(a *Artifact) error {
	if a.FormatVersion != supportedFormatVersion {
		return fmt.Errorf("unsupported format version %d", a.FormatVersion)
	}

	if len(a.Columns) == 0 {
		return errors.New("no feature columns")
	}
	seen := make(map[string]bool, len(a.Columns))
	for _, col := range a.Columns {
		if col.Name == "" {
			return errors.New("feature column with empty name")
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate feature column %q", col.Name)
		}
		seen[col.Name] = true

		switch col.Kind {
		case KindNumeric:
		case KindCategorical:
			if a.Categories[col.Name] == nil {
				return fmt.Errorf("categorical column %q has no category encoding", col.Name)
			}
		default:
			return fmt.Errorf("column %q has unsupported kind %q", col.Name, col.Kind)
		}
	}

	if len(a.Classes) != 2 {
		return fmt.Errorf("expected a binary classifier, got %d classes", len(a.Classes))
	}
	if a.Classes[0] == a.Classes[1] {
		return errors.New("duplicate class labels")
	}
	// The positive class is looked up by label, never by position, so a
	// retrained artifact may reorder its classes freely.
	if a.PositiveClass != a.Classes[0] && a.PositiveClass != a.Classes[1] {
		return fmt.Errorf("positive class %q not among class labels", a.PositiveClass)
	}

	if len(a.Trees) == 0 {
		return errors.New("no trees")
	}
	for ti, tree := range a.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.IsLeaf {
				continue
			}
			if node.FeatureIdx < 0 || node.FeatureIdx >= len(a.Columns) {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, node.FeatureIdx)
			}
			// Children must point forward so traversal always terminates.
			if node.Left <= ni || node.Left >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: invalid left child %d", ti, ni, node.Left)
			}
			if node.Right <= ni || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: invalid right child %d", ti, ni, node.Right)
			}
		}
	}

	return nil
}
