package store

import (
	"context"
	"encoding/json"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/data/redisStore"
	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

// RedisChatStore keeps the chat history as a redis list with the newest
// record at the head. Records are append-only; nothing here deletes or
// rewrites them.
type RedisChatStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisChatStore(store *redisStore.Store) *RedisChatStore {
	return &RedisChatStore{
		store:  store,
		logger: logger_i.NewLogger("ChatStore"),
	}
}

func (s *RedisChatStore) Append(ctx context.Context, record chatModel.ChatRecord) error {
	log := s.logger.With(config.TRACE_ID_KEY, ctx.Value(config.TRACE_ID_KEY))

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.store.ListPushFront(ctx, config.ChatHistoryKey, data); err != nil {
		log.Error("Error appending chat record", "error", err)
		return err
	}
	log.Debug("Appended chat record", "id", record.Id)
	return nil
}

func (s *RedisChatStore) Recent(ctx context.Context, n int) ([]chatModel.ChatRecord, error) {
	log := s.logger.With(config.TRACE_ID_KEY, ctx.Value(config.TRACE_ID_KEY))

	rows, err := s.store.ListRange(ctx, config.ChatHistoryKey, 0, int64(n)-1)
	if err != nil {
		if s.store.IsNil(err) {
			return nil, nil
		}
		log.Error("Error reading chat history", "error", err)
		return nil, err
	}

	records := make([]chatModel.ChatRecord, 0, len(rows))
	for _, row := range rows {
		var record chatModel.ChatRecord
		if err := json.Unmarshal([]byte(row), &record); err != nil {
			log.Error("Skipping undecodable chat record", "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
