package api

import "time"

type ChatRequest struct {
	Question string `json:"question" validate:"required"`
}

type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

type IngestResponse struct {
	Status  string            `json:"status"`
	Sources int               `json:"sources"`
	Chunks  int               `json:"chunks"`
	Failed  map[string]string `json:"failed,omitempty"`
}

type HistoryResponse struct {
	Chats []HistoryEntry `json:"chats"`
}

type HistoryEntry struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ErrorResponse carries a machine-distinguishable stage alongside the
// human-readable cause.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}
