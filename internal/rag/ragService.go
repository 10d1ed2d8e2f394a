package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/internal/metrics"
	"github.com/nsharath/TravelRAG/internal/rag/embedding"
	"github.com/nsharath/TravelRAG/internal/rag/fetch"
	"github.com/nsharath/TravelRAG/internal/rag/ingest"
	"github.com/nsharath/TravelRAG/internal/rag/llm"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

// Answer is the grounded response for one question: the generated text plus
// the unique set of source URLs whose chunks backed it.
type Answer struct {
	Answer  string
	Sources []string
}

// Service is the public contract of the retrieval and ingestion pipelines.
// Handlers only see this interface; the concrete clients (vector index,
// embedder, generator, chat store) stay private so they can be swapped for
// fakes in tests.
type Service interface {
	Answer(ctx context.Context, question string) (Answer, error)
	Ingest(ctx context.Context, sources map[string]string) (ingest.Report, error)
}

type service struct {
	index       vectorDB.Index
	llmProvider llm.Provider
	embedder    embedding.Embedder
	chats       chatModel.ChatStore
	fetcher     fetch.Fetcher
	chunkSize   int
	topK        int
	logger      *logger_i.Logger
}

// NewService wires the pipelines. Dependencies are constructed once at
// process start and held for the process lifetime.
func NewService(index vectorDB.Index, provider llm.Provider, em embedding.Embedder, chats chatModel.ChatStore, fetcher fetch.Fetcher) Service {
	return &service{
		index:       index,
		llmProvider: provider,
		embedder:    em,
		chats:       chats,
		fetcher:     fetcher,
		chunkSize:   config.ChunkSizeWords,
		topK:        config.SearchTopK,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// Answer runs the query path: embed the question, search the index, assemble
// context, generate and persist. Every step is attempted once; the first
// failure is terminal for the request and is returned as a StageError naming
// the failed stage.
//
// A persistence failure fails the whole request even though the answer was
// already generated. Returning the answer with a warning instead would keep
// the caller happy but let history drift from what users saw.
func (s *service) Answer(ctx context.Context, question string) (Answer, error) {
	log := s.logger.With(config.TRACE_ID_KEY, traceFrom(ctx))

	start := time.Now()
	status := "ok"
	defer func() { metrics.CaptureAnswerMetrics(status, time.Since(start)) }()

	queryVector, err := s.executeEmbeddingStep(ctx, question)
	if err != nil {
		status = "error"
		return Answer{}, err
	}

	matches, err := s.executeVectorSearchStep(ctx, queryVector)
	if err != nil {
		status = "error"
		return Answer{}, err
	}
	log.Debug("Vector search complete", "matches", len(matches))

	contextText, urls := assembleContext(matches)

	answer, err := s.executeGenerationStep(ctx, question, contextText)
	if err != nil {
		status = "error"
		return Answer{}, err
	}

	if err := s.executePersistenceStep(ctx, question, answer, urls); err != nil {
		status = "error"
		return Answer{}, err
	}

	return Answer{Answer: answer, Sources: urls}, nil
}

// Ingest crawls the configured sources and upserts their chunk embeddings.
// Failures are isolated per source; an error is returned only when every
// source failed.
func (s *service) Ingest(ctx context.Context, sources map[string]string) (ingest.Report, error) {
	log := s.logger.With(config.TRACE_ID_KEY, traceFrom(ctx))
	log.Info("Starting ingestion run", "sources", len(sources))

	report := ingest.Run(ctx, sources, ingest.Deps{
		Fetcher:   s.fetcher,
		Embedder:  s.embedder,
		Index:     s.index,
		ChunkSize: s.chunkSize,
		Workers:   config.IngestWorkerCount,
	})

	if len(sources) > 0 && len(report.Failed) == len(sources) {
		return report, fmt.Errorf("all %d sources failed to ingest", len(sources))
	}
	return report, nil
}

func traceFrom(ctx context.Context) string {
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return trace
	}
	return ""
}
