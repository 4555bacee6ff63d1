package model

// Column kinds understood by the artifact schema.
const (
	KindCategorical = "categorical"
	KindNumeric     = "numeric"
)

// Column describes one input feature consumed by the classifier, in the
// order the trees were trained on.
type Column struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// TreeNode is one node of a flattened decision tree. Internal nodes route on
// Threshold over the encoded feature at FeatureIdx; leaves carry their margin
// contribution in Value.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	Left       int     `json:"left"`
	Right      int     `json:"right"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

// Tree is a single boosted tree with its nodes stored as a flat array. The
// root is node 0 and child indices always point forward.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// Artifact is the on-disk representation of the trained binary classifier,
// exported as a single JSON document by the upstream training job. Categories
// holds the learned ordinal encoding for every categorical column.
type Artifact struct {
	FormatVersion int                       `json:"format_version"`
	Columns       []Column                  `json:"columns"`
	Categories    map[string]map[string]int `json:"categories"`
	Classes       []string                  `json:"classes"`
	PositiveClass string                    `json:"positive_class"`
	BaseScore     float64                   `json:"base_score"`
	Trees         []Tree                    `json:"trees"`
}
