package openaiLLM

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/rag/llm"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

type llmClient struct {
	openAI openai.Client
	model  string
	logger *logger_i.Logger
}

func NewClient(apiKey string, model string) (llm.Provider, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	if model == "" {
		model = config.OpenAIChatModel
	}
	return &llmClient{
		openAI: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger_i.NewLogger("llm_openai"),
	}, nil
}

func (c *llmClient) Generate(ctx context.Context, question string, contextText string) (string, error) {
	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, question)

	resp, err := c.openAI.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.SystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		c.logger.Error("Error generating completion", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
