package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type SimilarityConfig struct {
	// DefaultTopN is the candidate count returned by the discover phase when
	// the request does not specify one.
	DefaultTopN int `toml:"default_top_n"`
	// Oversample multiplies the requested count when querying the index, so
	// in-graph candidates can still fill the result after partitioning.
	Oversample int `toml:"oversample"`
}

type ClassifierConfig struct {
	// ExclusionSlack is how many characters longer than a contained category
	// word a name may be before it is demoted to a concrete instance. The
	// historical value is 2; it stays configurable because it has never been
	// validated against a labeled set.
	ExclusionSlack int `toml:"exclusion_slack"`
}

type VocabularyConfig struct {
	// Relations seed the controlled relation vocabulary when the database
	// holds none yet.
	Relations []string `toml:"relations"`
}

type Config struct {
	LLM        LLMConfig        `toml:"llm"`
	Graph      GraphConfig      `toml:"graph"`
	Similarity SimilarityConfig `toml:"similarity"`
	Classifier ClassifierConfig `toml:"classifier"`
	Vocabulary VocabularyConfig `toml:"vocabulary"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values so a partial config file (or none at all)
// still yields a usable setup.
func (c *Config) ApplyDefaults() {
	if c.Graph.URI == "" {
		c.Graph.URI = "bolt://localhost:7687"
	}
	if c.Similarity.DefaultTopN <= 0 {
		c.Similarity.DefaultTopN = 10
	}
	if c.Similarity.Oversample <= 0 {
		c.Similarity.Oversample = 3
	}
	if c.Classifier.ExclusionSlack <= 0 {
		c.Classifier.ExclusionSlack = 2
	}
	if len(c.Vocabulary.Relations) == 0 {
		c.Vocabulary.Relations = []string{
			"传播", "感染", "易感", "寄主", "属于", "影响",
			"携带", "引起", "表现", "出现", "伴随", "导致",
			"发展", "竞争", "协同", "替代", "攻击", "防治",
		}
	}
}
