package llm

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/llms"
)

// OllamaClient runs against a local Ollama daemon. This is the fully offline
// deployment: the same model serves relation inference and the embedding
// vectors behind the similarity index.
type OllamaClient struct {
	llm *llms.OllamaLLM
}

func NewOllamaClient(modelName string, baseURL string) (*OllamaClient, error) {
	opts := []llms.OllamaOption{
		llms.WithBaseURL(baseURL),
		llms.WithOpenAIAPI(),
	}

	ollamaLLM, err := llms.NewOllamaLLM(core.ModelID(modelName), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama llm: %w", err)
	}

	return &OllamaClient{llm: ollamaLLM}, nil
}

func (c *OllamaClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}
	response, err := c.llm.Generate(ctx, full)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := c.llm.CreateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	return result.Vector, nil
}
