package adapter

import (
	"encoding/json"
	"strings"

	"github.com/nsharath/TravelRAG/internal/api"
	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
)

// ToHistoryResponse converts stored chat records into the history API shape,
// newest first. The record's question doubles as the entry title.
func ToHistoryResponse(records []chatModel.ChatRecord) api.HistoryResponse {
	entries := make([]api.HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, api.HistoryEntry{
			Id:        record.Id,
			Title:     record.Question,
			Messages:  normalizeMessages(record.Messages),
			CreatedAt: record.CreatedAt,
		})
	}
	return api.HistoryResponse{Chats: entries}
}

// normalizeMessages coerces loosely shaped stored messages into {role, text}.
// A message carrying neither a role nor a text field becomes an Assistant
// message whose text is the string form of the raw value.
func normalizeMessages(raw []json.RawMessage) []api.Message {
	messages := make([]api.Message, 0, len(raw))
	for _, item := range raw {
		var m api.Message
		if err := json.Unmarshal(item, &m); err == nil && (m.Role != "" || m.Text != "") {
			messages = append(messages, m)
			continue
		}
		messages = append(messages, api.Message{
			Role: "Assistant",
			Text: stringForm(item),
		})
	}
	return messages
}

func stringForm(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(item))
}
