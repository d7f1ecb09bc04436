package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
[llm]
provider = "moonshot"
model = "moonshot-v1-8k"
api_key = "sk-test"

[graph]
uri = "bolt://graph:7687"
user = "neo4j"

[similarity]
default_top_n = 5

[classifier]
exclusion_slack = 3
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "moonshot", cfg.LLM.Provider)
	assert.Equal(t, "moonshot-v1-8k", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "bolt://graph:7687", cfg.Graph.URI)
	assert.Equal(t, 5, cfg.Similarity.DefaultTopN)
	assert.Equal(t, 3, cfg.Classifier.ExclusionSlack)

	// Unset sections still get defaults.
	assert.Equal(t, 3, cfg.Similarity.Oversample)
	assert.NotEmpty(t, cfg.Vocabulary.Relations)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm\nbroken"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI)
	assert.Equal(t, 10, cfg.Similarity.DefaultTopN)
	assert.Equal(t, 3, cfg.Similarity.Oversample)
	assert.Equal(t, 2, cfg.Classifier.ExclusionSlack)
	assert.Len(t, cfg.Vocabulary.Relations, 18)
	assert.Contains(t, cfg.Vocabulary.Relations, "传播")
	assert.Contains(t, cfg.Vocabulary.Relations, "易感")
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Graph:      GraphConfig{URI: "bolt://other:7687"},
		Similarity: SimilarityConfig{DefaultTopN: 20, Oversample: 2},
		Vocabulary: VocabularyConfig{Relations: []string{"传播"}},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "bolt://other:7687", cfg.Graph.URI)
	assert.Equal(t, 20, cfg.Similarity.DefaultTopN)
	assert.Equal(t, 2, cfg.Similarity.Oversample)
	assert.Equal(t, []string{"传播"}, cfg.Vocabulary.Relations)
}
