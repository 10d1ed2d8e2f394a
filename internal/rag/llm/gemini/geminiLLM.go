package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/rag/llm"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

type llmClient struct {
	client *genai.Client
	model  string
	logger *logger_i.Logger
}

func NewClient(ctx context.Context, apiKey string, model string) (llm.Provider, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = config.GeminiModelName
	}
	return &llmClient{
		client: c,
		model:  model,
		logger: logger_i.NewLogger("llm_gemini"),
	}, nil
}

func (c *llmClient) Generate(ctx context.Context, question string, contextText string) (string, error) {
	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.SystemPrompt},
		},
	}
	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, question)

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{SystemInstruction: systemInstruction},
	)
	if err != nil {
		c.logger.Error("Error generating completion", "error", err)
		return "", err
	}
	return result.Text(), nil
}
