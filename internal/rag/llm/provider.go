package llm

import "context"

type Provider interface {
	// Generate answers the user question constrained to the assembled context.
	Generate(ctx context.Context, question string, contextText string) (string, error)
}
