package port

import "context"

// LLM represents a hosted language model for answer generation. The
// retrieval core never calls it; only the CLI hand-off does.
type LLM interface {
	// Generate generates text based on the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
