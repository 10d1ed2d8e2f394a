package rag

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/internal/metrics"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB"

	"github.com/google/uuid"
)

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	vector, err := s.embedder.GetEmbedding(ctx, question)
	if err != nil {
		s.logger.Error("Embedding step failed", "error", err)
		return nil, stageErr(StageEmbedding, err)
	}
	return vector, nil
}

func (s *service) executeVectorSearchStep(ctx context.Context, queryVector []float32) ([]vectorDB.Match, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	matches, err := s.index.Query(ctx, queryVector, s.topK)
	if err != nil {
		s.logger.Error("Vector search step failed", "error", err)
		return nil, stageErr(StageVectorSearch, err)
	}
	return matches, nil
}

func (s *service) executeGenerationStep(ctx context.Context, question string, contextText string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	answer, err := s.llmProvider.Generate(ctx, question, contextText)
	if err != nil {
		s.logger.Error("Generation step failed", "error", err)
		return "", stageErr(StageGeneration, err)
	}
	return answer, nil
}

func (s *service) executePersistenceStep(ctx context.Context, question string, answer string, urls []string) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chat_persistence", time.Since(start)) }()

	record := chatModel.ChatRecord{
		Id:        uuid.New().String(),
		Question:  question,
		Answer:    answer,
		Urls:      urls,
		Messages:  buildMessages(question, answer),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chats.Append(ctx, record); err != nil {
		s.logger.Error("Persistence step failed", "error", err)
		return stageErr(StagePersistence, err)
	}
	return nil
}

// assembleContext joins the match texts in rank order separated by a blank
// line and collects the unique source URLs in first-seen order.
func assembleContext(matches []vectorDB.Match) (string, []string) {
	var texts []string
	var urls []string
	seen := make(map[string]bool)

	for _, match := range matches {
		texts = append(texts, match.Text)
		if match.URL != "" && !seen[match.URL] {
			seen[match.URL] = true
			urls = append(urls, match.URL)
		}
	}
	return strings.Join(texts, "\n\n"), urls
}

func buildMessages(question string, answer string) []json.RawMessage {
	messages := []chatModel.Message{
		{Role: "user", Text: question},
		{Role: "Assistant", Text: answer},
	}
	raw := make([]json.RawMessage, 0, len(messages))
	for _, m := range messages {
		data, err := json.Marshal(m)
		if err != nil {
			continue
		}
		raw = append(raw, data)
	}
	return raw
}
