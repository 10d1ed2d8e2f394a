// Package ingest runs the content pipeline: fetch, normalize, chunk, embed,
// upsert. One run converges the vector index to exactly one record per
// distinct (url, chunk text) pair.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/nsharath/TravelRAG/internal/domain/commonModels"
	"github.com/nsharath/TravelRAG/internal/metrics"
	"github.com/nsharath/TravelRAG/internal/rag/chunk"
	"github.com/nsharath/TravelRAG/internal/rag/embedding"
	"github.com/nsharath/TravelRAG/internal/rag/fetch"
	"github.com/nsharath/TravelRAG/internal/rag/identity"
	"github.com/nsharath/TravelRAG/internal/rag/normalize"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

type Deps struct {
	Fetcher   fetch.Fetcher
	Embedder  embedding.Embedder
	Index     vectorDB.Index
	ChunkSize int
	Workers   int
}

type Report struct {
	Status  string
	Sources int
	Chunks  int
	Failed  map[string]string
}

type sourceResult struct {
	label  string
	chunks int
	err    error
}

// Run processes every configured source. Sources are fanned out over a small
// worker pool; a failure in one source never aborts the others. Within a
// source, an embedding or upsert failure aborts that source's remaining
// chunks so the index is not left with a silently partial page.
func Run(ctx context.Context, sources map[string]string, deps Deps) Report {
	logger := logger_i.NewLogger("Ingestion")
	if deps.Workers < 1 {
		deps.Workers = 1
	}

	jobs := make(chan commonModels.Source)
	results := make(chan sourceResult, len(sources))
	var workerWaitGroup sync.WaitGroup

	for i := 0; i < deps.Workers; i++ {
		workerWaitGroup.Add(1)
		go func() {
			defer workerWaitGroup.Done()
			for src := range jobs {
				chunks, err := processSource(ctx, src, deps, logger)
				results <- sourceResult{label: src.Label, chunks: chunks, err: err}
			}
		}()
	}

	go func() {
		for label, url := range sources {
			jobs <- commonModels.Source{Label: label, URL: url}
		}
		close(jobs)
		workerWaitGroup.Wait()
		close(results)
	}()

	report := Report{Sources: len(sources), Failed: map[string]string{}}
	for res := range results {
		if res.err != nil {
			logger.Error("Source ingestion failed", "source", res.label, "error", res.err)
			report.Failed[res.label] = res.err.Error()
			metrics.CountIngestedSource("failed")
			continue
		}
		report.Chunks += res.chunks
		metrics.CountIngestedSource("ok")
	}

	switch {
	case len(report.Failed) == 0:
		report.Status = "done"
	case len(report.Failed) == len(sources):
		report.Status = "failed"
	default:
		report.Status = "partial"
	}
	return report
}

func processSource(ctx context.Context, src commonModels.Source, deps Deps, logger *logger_i.Logger) (int, error) {
	raw, err := deps.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return 0, fmt.Errorf("fetch error: %w", err)
	}

	text := normalize.Flatten(raw)
	logger.Debug("Normalized source", "source", src.Label, "words", chunk.Count(text, 1))

	upserted := 0
	for c := range chunk.Split(text, deps.ChunkSize) {
		vector, err := deps.Embedder.GetEmbedding(ctx, c.Text)
		if err != nil {
			return upserted, fmt.Errorf("embedding error on chunk %d: %w", c.Order, err)
		}

		record := vectorDB.Record{
			Id:     identity.ChunkID(src.URL, c.Text),
			Vector: vector,
			URL:    src.URL,
			Text:   c.Text,
		}
		if err := deps.Index.Upsert(ctx, []vectorDB.Record{record}); err != nil {
			return upserted, fmt.Errorf("upsert error on chunk %d: %w", c.Order, err)
		}
		upserted++
		metrics.CountIngestedChunk()
	}

	logger.Info("Ingested source", "source", src.Label, "chunks", upserted)
	return upserted, nil
}
