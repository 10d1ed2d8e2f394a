package chatModel

import (
	"context"
	"encoding/json"
	"time"
)

// ChatRecord is one persisted question/answer turn. Records are append-only;
// nothing in the service mutates or deletes them.
//
// Messages is kept as raw JSON because rows written by earlier versions of the
// system carry loosely shaped message lists; normalization to the API shape
// happens in the adapter layer.
type ChatRecord struct {
	Id        string            `json:"id"`
	Question  string            `json:"question"`
	Answer    string            `json:"answer"`
	Urls      []string          `json:"urls"`
	Messages  []json.RawMessage `json:"messages,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Message is the well-formed message shape stored for new records.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatStore interface {
	Append(ctx context.Context, record ChatRecord) error
	Recent(ctx context.Context, n int) ([]ChatRecord, error)
}
