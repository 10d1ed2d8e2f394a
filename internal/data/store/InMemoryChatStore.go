package store

import (
	"context"
	"sync"

	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem ChatStore")

// InMemoryChatStore is the fallback when redis is offline at startup. History
// does not survive a restart, but the query path keeps working.
type InMemoryChatStore struct {
	mu      *sync.RWMutex
	records []chatModel.ChatRecord
}

func InitInMemoryChatStore() *InMemoryChatStore {
	return &InMemoryChatStore{
		mu: new(sync.RWMutex),
	}
}

func (s *InMemoryChatStore) Append(ctx context.Context, record chatModel.ChatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	inMemLogger.Debug("Appended chat record", "id", record.Id)
	return nil
}

func (s *InMemoryChatStore) Recent(ctx context.Context, n int) ([]chatModel.ChatRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.records) {
		n = len(s.records)
	}
	recent := make([]chatModel.ChatRecord, 0, n)
	for i := len(s.records) - 1; i >= len(s.records)-n; i-- {
		recent = append(recent, s.records[i])
	}
	return recent, nil
}
