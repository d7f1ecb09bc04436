package llm

import (
	"context"
)

// Client is a generative-text backend. Complete sends a system instruction
// plus a user prompt and returns the raw text; callers validate the output
// themselves (the relation oracle only accepts exact vocabulary members).
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Embedder maps a term to a vector. Absence of an embedder (nil) is a
// supported configuration; consumers degrade to their static fallbacks.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
