package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/internal/rag"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB"
)

func newService(idx *MockIndex, l *MockLLM, e *MockEmbedder, c *MockChatStore, f *MockFetcher) rag.Service {
	return rag.NewService(idx, l, e, c, f)
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(e *MockEmbedder, v *MockIndex, l *MockLLM, c *MockChatStore)
		expectedStage rag.Stage
		expectedText  string
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockIndex, l *MockLLM, c *MockChatStore) {
				l.OnGenerate = func(ctx context.Context, q string, contextText string) (string, error) {
					return "final answer", nil
				}
			},
			expectedText: "final answer",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockIndex, l *MockLLM, c *MockChatStore) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStage: rag.StageEmbedding,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockIndex, l *MockLLM, c *MockChatStore) {
				v.OnQuery = func(ctx context.Context, vector []float32, k int) ([]vectorDB.Match, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectedStage: rag.StageVectorSearch,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockIndex, l *MockLLM, c *MockChatStore) {
				l.OnGenerate = func(ctx context.Context, q string, contextText string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStage: rag.StageGeneration,
		},
		{
			name: "Failure_Persistence_Drops_Answer",
			setupMocks: func(e *MockEmbedder, v *MockIndex, l *MockLLM, c *MockChatStore) {
				c.OnAppend = func(ctx context.Context, record chatModel.ChatRecord) error {
					return errors.New("store offline")
				}
			},
			expectedStage: rag.StagePersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mIdx := &MockIndex{}
			mLLM := &MockLLM{}
			mChats := &MockChatStore{}

			tt.setupMocks(mEmbed, mIdx, mLLM, mChats)

			s := newService(mIdx, mLLM, mEmbed, mChats, &MockFetcher{})

			answer, err := s.Answer(testCtx(), "test question")

			if tt.expectedStage != "" {
				var stageError *rag.StageError
				if !errors.As(err, &stageError) {
					t.Fatalf("expected a stage error, got %v", err)
				}
				if stageError.Stage != tt.expectedStage {
					t.Errorf("Stage got %s, want %s", stageError.Stage, tt.expectedStage)
				}
				if answer.Answer != "" {
					t.Errorf("failed request leaked an answer: %q", answer.Answer)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if answer.Answer != tt.expectedText {
				t.Errorf("Answer got %s, want %s", answer.Answer, tt.expectedText)
			}
		})
	}
}

func TestAnswer_ContextAssembly(t *testing.T) {
	matches := []vectorDB.Match{
		{Id: "1", Score: 0.9, URL: "https://a.example", Text: "X"},
		{Id: "2", Score: 0.8, URL: "https://b.example", Text: "Y"},
		{Id: "3", Score: 0.7, URL: "https://a.example", Text: "Z"},
	}

	var generatedContext string
	mIdx := &MockIndex{
		OnQuery: func(ctx context.Context, vector []float32, k int) ([]vectorDB.Match, error) {
			if k != config.SearchTopK {
				t.Errorf("k got %d, want %d", k, config.SearchTopK)
			}
			return matches, nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, contextText string) (string, error) {
			generatedContext = contextText
			return "ok", nil
		},
	}
	var persisted chatModel.ChatRecord
	mChats := &MockChatStore{
		OnAppend: func(ctx context.Context, record chatModel.ChatRecord) error {
			persisted = record
			return nil
		},
	}

	s := newService(mIdx, mLLM, &MockEmbedder{}, mChats, &MockFetcher{})

	answer, err := s.Answer(testCtx(), "where to dock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if generatedContext != "X\n\nY\n\nZ" {
		t.Errorf("context got %q, want rank-ordered blank-line join", generatedContext)
	}

	expectedSources := []string{"https://a.example", "https://b.example"}
	if strings.Join(answer.Sources, ",") != strings.Join(expectedSources, ",") {
		t.Errorf("Sources got %v, want %v (unique, first-seen order)", answer.Sources, expectedSources)
	}

	if persisted.Question != "where to dock" || persisted.Answer != "ok" {
		t.Errorf("persisted record got %+v", persisted)
	}
	if len(persisted.Messages) != 2 {
		t.Errorf("persisted messages got %d, want question + answer", len(persisted.Messages))
	}
	if persisted.Id == "" || persisted.CreatedAt.IsZero() {
		t.Errorf("persisted record missing id or timestamp: %+v", persisted)
	}
}

func TestAnswer_EmbeddingFailureShortCircuits(t *testing.T) {
	searched := false
	generated := false
	persisted := false

	mEmbed := &MockEmbedder{
		OnGetEmbedding: func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("quota")
		},
	}
	mIdx := &MockIndex{
		OnQuery: func(ctx context.Context, vector []float32, k int) ([]vectorDB.Match, error) {
			searched = true
			return nil, nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, c string) (string, error) {
			generated = true
			return "", nil
		},
	}
	mChats := &MockChatStore{
		OnAppend: func(ctx context.Context, record chatModel.ChatRecord) error {
			persisted = true
			return nil
		},
	}

	s := newService(mIdx, mLLM, mEmbed, mChats, &MockFetcher{})
	if _, err := s.Answer(testCtx(), "q"); err == nil {
		t.Fatal("expected error")
	}
	if searched || generated || persisted {
		t.Errorf("later steps ran after embedding failure: search=%v generate=%v persist=%v", searched, generated, persisted)
	}
}

func TestIngest_AllSourcesFailed(t *testing.T) {
	mFetch := &MockFetcher{
		OnFetch: func(ctx context.Context, url string) (string, error) {
			return "", errors.New("connection refused")
		},
	}

	s := newService(&MockIndex{}, &MockLLM{}, &MockEmbedder{}, &MockChatStore{}, mFetch)

	report, err := s.Ingest(testCtx(), map[string]string{
		"a": "https://a.example",
		"b": "https://b.example",
	})
	if err == nil {
		t.Fatal("expected error when every source fails")
	}
	if report.Status != "failed" {
		t.Errorf("Status got %s, want failed", report.Status)
	}
	if len(report.Failed) != 2 {
		t.Errorf("Failed got %d entries, want 2", len(report.Failed))
	}
}

func TestIngest_PartialFailureIsNotAnError(t *testing.T) {
	mFetch := &MockFetcher{
		OnFetch: func(ctx context.Context, url string) (string, error) {
			if url == "https://bad.example" {
				return "", errors.New("boom")
			}
			return "<p>good page text</p>", nil
		},
	}

	s := newService(&MockIndex{}, &MockLLM{}, &MockEmbedder{}, &MockChatStore{}, mFetch)

	report, err := s.Ingest(testCtx(), map[string]string{
		"good": "https://good.example",
		"bad":  "https://bad.example",
	})
	if err != nil {
		t.Fatalf("partial failure should not fail the run: %v", err)
	}
	if report.Status != "partial" {
		t.Errorf("Status got %s, want partial", report.Status)
	}
	if _, ok := report.Failed["bad"]; !ok {
		t.Errorf("Failed missing the bad source: %v", report.Failed)
	}
}
