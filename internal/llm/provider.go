package llm

import "context"

// Provider is one LLM backend capable of turning a prompt into a
// structured git-command response.
type Provider interface {
	// Name returns the provider identifier (e.g. "gemini").
	Name() string

	// Available reports whether the provider is configured well enough to
	// accept requests.
	Available() bool

	// Generate sends the prompt and parses the model's JSON reply.
	Generate(ctx context.Context, prompt string) (*Response, error)

	// ModelInfo describes the backing model.
	ModelInfo() ModelInfo
}

// ModelInfo describes a provider's configuration for display.
type ModelInfo struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}
