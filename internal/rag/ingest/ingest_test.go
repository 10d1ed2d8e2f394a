package ingest_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nsharath/TravelRAG/internal/rag/ingest"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB"
)

type fetcherFunc func(ctx context.Context, url string) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

type embedderFunc func(ctx context.Context, text string) ([]float32, error)

func (f embedderFunc) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

// recordingIndex keeps upserted records keyed by id, like a real index would.
type recordingIndex struct {
	mu       sync.Mutex
	records  map[string]vectorDB.Record
	upserts  int
	OnUpsert func(ctx context.Context, records []vectorDB.Record) error
}

func newRecordingIndex() *recordingIndex {
	return &recordingIndex{records: map[string]vectorDB.Record{}}
}

func (r *recordingIndex) Upsert(ctx context.Context, records []vectorDB.Record) error {
	if r.OnUpsert != nil {
		if err := r.OnUpsert(ctx, records); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[rec.Id] = rec
	}
	r.upserts += len(records)
	return nil
}

func (r *recordingIndex) Query(ctx context.Context, vector []float32, k int) ([]vectorDB.Match, error) {
	return nil, nil
}

func okEmbedder() embedderFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0.1, 0.2}, nil
	}
}

func staticFetcher(pages map[string]string) fetcherFunc {
	return func(ctx context.Context, url string) (string, error) {
		page, ok := pages[url]
		if !ok {
			return "", errors.New("no route to host")
		}
		return page, nil
	}
}

func TestRun_ChunksAndUpserts(t *testing.T) {
	idx := newRecordingIndex()
	// 6 words, chunk size 2 -> 3 chunks
	deps := ingest.Deps{
		Fetcher:   staticFetcher(map[string]string{"https://a.example": "<p>one two three four five six</p>"}),
		Embedder:  okEmbedder(),
		Index:     idx,
		ChunkSize: 2,
		Workers:   2,
	}

	report := ingest.Run(context.Background(), map[string]string{"a": "https://a.example"}, deps)

	if report.Status != "done" {
		t.Errorf("Status got %s, want done", report.Status)
	}
	if report.Chunks != 3 {
		t.Errorf("Chunks got %d, want 3", report.Chunks)
	}
	if len(idx.records) != 3 {
		t.Errorf("index holds %d records, want 3", len(idx.records))
	}
	for _, rec := range idx.records {
		if rec.URL != "https://a.example" {
			t.Errorf("record url got %q", rec.URL)
		}
		if rec.Text == "" || len(rec.Vector) == 0 {
			t.Errorf("record missing payload: %+v", rec)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	idx := newRecordingIndex()
	sources := map[string]string{"a": "https://a.example"}
	deps := ingest.Deps{
		Fetcher:   staticFetcher(map[string]string{"https://a.example": "one two three four"}),
		Embedder:  okEmbedder(),
		Index:     idx,
		ChunkSize: 2,
		Workers:   1,
	}

	ingest.Run(context.Background(), sources, deps)
	firstCount := len(idx.records)

	ingest.Run(context.Background(), sources, deps)

	if len(idx.records) != firstCount {
		t.Errorf("second run grew the index to %d records, want %d", len(idx.records), firstCount)
	}
	if idx.upserts != 2*firstCount {
		t.Errorf("upserts got %d, want %d overwrites", idx.upserts, 2*firstCount)
	}
}

func TestRun_DistinctChunksGetDistinctIds(t *testing.T) {
	idx := newRecordingIndex()
	deps := ingest.Deps{
		Fetcher:   staticFetcher(map[string]string{"https://a.example": "alpha beta gamma delta"}),
		Embedder:  okEmbedder(),
		Index:     idx,
		ChunkSize: 2,
		Workers:   1,
	}

	ingest.Run(context.Background(), map[string]string{"a": "https://a.example"}, deps)

	if len(idx.records) != 2 {
		t.Fatalf("records got %d, want 2 distinct ids", len(idx.records))
	}
}

func TestRun_SourceIsolation(t *testing.T) {
	idx := newRecordingIndex()
	deps := ingest.Deps{
		Fetcher: staticFetcher(map[string]string{
			"https://good.example": "fine content here",
		}),
		Embedder:  okEmbedder(),
		Index:     idx,
		ChunkSize: 500,
		Workers:   2,
	}

	report := ingest.Run(context.Background(), map[string]string{
		"good": "https://good.example",
		"bad":  "https://bad.example",
	}, deps)

	if report.Status != "partial" {
		t.Errorf("Status got %s, want partial", report.Status)
	}
	if msg, ok := report.Failed["bad"]; !ok || !strings.Contains(msg, "fetch error") {
		t.Errorf("Failed[bad] got %q, want a fetch error", msg)
	}
	if report.Chunks != 1 {
		t.Errorf("Chunks got %d, want the good source's single chunk", report.Chunks)
	}
}

func TestRun_EmbeddingFailureAbortsSource(t *testing.T) {
	idx := newRecordingIndex()
	calls := 0
	deps := ingest.Deps{
		Fetcher:  staticFetcher(map[string]string{"https://a.example": "one two three four five six"}),
		Embedder: embedderFunc(func(ctx context.Context, text string) ([]float32, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("quota exceeded")
			}
			return []float32{0.1}, nil
		}),
		Index:     idx,
		ChunkSize: 2,
		Workers:   1,
	}

	report := ingest.Run(context.Background(), map[string]string{"a": "https://a.example"}, deps)

	if report.Status != "failed" {
		t.Errorf("Status got %s, want failed", report.Status)
	}
	if msg := report.Failed["a"]; !strings.Contains(msg, "embedding error") {
		t.Errorf("Failed[a] got %q, want an embedding error", msg)
	}
	if calls != 2 {
		t.Errorf("embedder called %d times, want abort after the failure", calls)
	}
}

func TestRun_UpsertFailureIsReported(t *testing.T) {
	idx := newRecordingIndex()
	idx.OnUpsert = func(ctx context.Context, records []vectorDB.Record) error {
		return errors.New("collection missing")
	}
	deps := ingest.Deps{
		Fetcher:   staticFetcher(map[string]string{"https://a.example": "short text"}),
		Embedder:  okEmbedder(),
		Index:     idx,
		ChunkSize: 500,
		Workers:   1,
	}

	report := ingest.Run(context.Background(), map[string]string{"a": "https://a.example"}, deps)

	if report.Status != "failed" {
		t.Errorf("Status got %s, want failed", report.Status)
	}
	if msg := report.Failed["a"]; !strings.Contains(msg, "upsert error") {
		t.Errorf("Failed[a] got %q, want an upsert error", msg)
	}
}

func TestRun_EmptySources(t *testing.T) {
	report := ingest.Run(context.Background(), map[string]string{}, ingest.Deps{
		Fetcher:   staticFetcher(nil),
		Embedder:  okEmbedder(),
		Index:     newRecordingIndex(),
		ChunkSize: 2,
		Workers:   2,
	})
	if report.Status != "done" || report.Chunks != 0 {
		t.Errorf("empty run got %+v, want done with no chunks", report)
	}
}
