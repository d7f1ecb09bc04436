package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pinewatch/pinegraph/internal/config"
)

const moonshotBaseURL = "https://api.moonshot.cn/v1"

// NewClient builds the generative and embedding clients for the configured
// provider. A nil Embedder is a valid return (provider has no embedding
// endpoint); consumers must treat it as "fallback only".
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, Embedder, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL)
		return c, c, nil

	case "moonshot", "kimi":
		// Moonshot exposes an OpenAI-compatible API.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = moonshotBaseURL
		}
		model := cfg.Model
		if model == "" {
			model = "moonshot-v1-8k"
		}
		c := NewOpenAIClient(cfg.APIKey, model, cfg.EmbeddingModel, baseURL)
		if cfg.EmbeddingModel == "" {
			// Moonshot has no embedding endpoint of its own.
			return c, nil, nil
		}
		return c, c, nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case "claude":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		return c, nil, nil

	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		c, err := NewOllamaClient(cfg.Model, baseURL)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
