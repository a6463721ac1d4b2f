package llm

import (
	"context"
	"errors"
)

var (
	ErrNoProviders = errors.New("llm: no providers configured")
	ErrEmptyOutput = errors.New("llm: empty output")
)

// Request is a single-turn generation call.
type Request struct {
	System string
	Prompt string
	// Zero values defer to the provider's configured defaults.
	MaxTokens   int
	Temperature float32
}

// Provider turns a prompt into text.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
