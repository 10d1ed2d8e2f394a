package rag_test

import (
	"context"

	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB"
)

// MockIndex implements vectorDB.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnUpsert func(ctx context.Context, records []vectorDB.Record) error
	OnQuery  func(ctx context.Context, vector []float32, k int) ([]vectorDB.Match, error)
}

func (m *MockIndex) Upsert(ctx context.Context, records []vectorDB.Record) error {
	if m.OnUpsert != nil {
		return m.OnUpsert(ctx, records)
	}
	return nil
}

func (m *MockIndex) Query(ctx context.Context, vector []float32, k int) ([]vectorDB.Match, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, vector, k)
	}
	return []vectorDB.Match{{Id: "m1", Score: 0.9, URL: "https://example.com", Text: "default context"}}, nil
}

type MockEmbedder struct {
	OnGetEmbedding func(ctx context.Context, text string) ([]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, question string, contextText string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, question string, contextText string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, question, contextText)
	}
	return "mocked llm response", nil
}

type MockChatStore struct {
	OnAppend func(ctx context.Context, record chatModel.ChatRecord) error
	OnRecent func(ctx context.Context, n int) ([]chatModel.ChatRecord, error)
}

func (m *MockChatStore) Append(ctx context.Context, record chatModel.ChatRecord) error {
	if m.OnAppend != nil {
		return m.OnAppend(ctx, record)
	}
	return nil
}

func (m *MockChatStore) Recent(ctx context.Context, n int) ([]chatModel.ChatRecord, error) {
	if m.OnRecent != nil {
		return m.OnRecent(ctx, n)
	}
	return nil, nil
}

type MockFetcher struct {
	OnFetch func(ctx context.Context, url string) (string, error)
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if m.OnFetch != nil {
		return m.OnFetch(ctx, url)
	}
	return "<p>default page</p>", nil
}
