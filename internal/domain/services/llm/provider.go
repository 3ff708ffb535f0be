package llm

import "context"

// CompletionRequest is a single-turn text generation request
type CompletionRequest struct {
	Model  string
	System string
	Prompt string
}

// CompletionResponse is the generated text plus usage
type CompletionResponse struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
	StopReason   string
}

// Generator produces text from a prompt.
// Implementations wrap an LLM provider library.
type Generator interface {
	Name() string
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// GeneratorSelector picks the generator and model for a provider/model pair
type GeneratorSelector interface {
	Select(provider, model string) (Generator, string, error)
}
