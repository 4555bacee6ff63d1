package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArtifact builds a small but complete binary classifier over the six
// request-context columns. Its single tree splits on risk_rule at 0.5.
func testArtifact() Artifact {
	return Artifact{
		FormatVersion: 1,
		Columns: []Column{
			{Name: "method", Kind: KindCategorical},
			{Name: "path", Kind: KindCategorical},
			{Name: "role", Kind: KindCategorical},
			{Name: "userId", Kind: KindCategorical},
			{Name: "userAgent", Kind: KindCategorical},
			{Name: "risk_rule", Kind: KindNumeric},
		},
		Categories: map[string]map[string]int{
			"method":    {"GET": 0, "POST": 1},
			"path":      {"/": 0, "/admin": 1},
			"role":      {"user": 0, "admin": 1},
			"userId":    {"u1": 0},
			"userAgent": {"curl/7": 0},
		},
		Classes:       []string{"normal", "attack"},
		PositiveClass: "attack",
		BaseScore:     0,
		Trees: []Tree{
			{Nodes: []TreeNode{
				{FeatureIdx: 5, Threshold: 0.5, Left: 1, Right: 2},
				{IsLeaf: true, Value: -2},
				{IsLeaf: true, Value: 2},
			}},
		},
	}
}

func writeArtifact(t *testing.T, artifact Artifact) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	payload, err := json.Marshal(artifact)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, payload, 0o600))
	return path
}

func TestLoad_ValidArtifact(t *testing.T) {
	m, err := Load(writeArtifact(t, testArtifact()))
	require.NoError(t, err)

	assert.Equal(t, []string{"normal", "attack"}, m.Classes())
	assert.Equal(t, "attack", m.PositiveClass())
	assert.Equal(t, []string{"method", "path", "role", "userId", "userAgent", "risk_rule"}, m.ColumnNames())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read model artifact")
}

func TestLoad_CorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode model artifact")
}

func TestLoad_RejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{"unsupported format version", func(a *Artifact) { a.FormatVersion = 2 }},
		{"no columns", func(a *Artifact) { a.Columns = nil }},
		{"duplicate column", func(a *Artifact) { a.Columns[1].Name = "method" }},
		{"unknown column kind", func(a *Artifact) { a.Columns[0].Kind = "embedding" }},
		{"missing category encoding", func(a *Artifact) { delete(a.Categories, "role") }},
		{"not binary", func(a *Artifact) { a.Classes = []string{"normal", "attack", "probe"} }},
		{"duplicate class labels", func(a *Artifact) { a.Classes = []string{"attack", "attack"} }},
		{"unknown positive class", func(a *Artifact) { a.PositiveClass = "malicious" }},
		{"no trees", func(a *Artifact) { a.Trees = nil }},
		{"empty tree", func(a *Artifact) { a.Trees[0].Nodes = nil }},
		{"feature index out of range", func(a *Artifact) { a.Trees[0].Nodes[0].FeatureIdx = 6 }},
		{"backward left child", func(a *Artifact) { a.Trees[0].Nodes[0].Left = 0 }},
		{"right child out of range", func(a *Artifact) { a.Trees[0].Nodes[0].Right = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := testArtifact()
			tt.mutate(&artifact)

			_, err := Load(writeArtifact(t, artifact))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid model artifact")
		})
	}
}
