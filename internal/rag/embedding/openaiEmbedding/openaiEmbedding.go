package openaiEmbedding

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/rag/embedding"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

type client struct {
	openAI    openai.Client
	model     string
	dimension int64
	logger    *logger_i.Logger
}

// NewClient builds an OpenAI-backed embedder. The vector dimension is pinned
// so the index schema and the embedding output can never drift apart.
func NewClient(apiKey string, model string) (embedding.Embedder, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	if model == "" {
		model = config.OpenAIEmbeddingModel
	}
	return &client{
		openAI:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		dimension: int64(config.EmbeddingOutputDimensionality),
		logger:    logger_i.NewLogger("openai_embedding"),
	}, nil
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.openAI.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(c.dimension),
	})
	if err != nil {
		c.logger.Error("Error getting embedding from OpenAI", "error", err)
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai returned no embedding data")
	}

	values := resp.Data[0].Embedding
	vector := make([]float32, len(values))
	for i, v := range values {
		vector[i] = float32(v)
	}
	return vector, nil
}
