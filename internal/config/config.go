package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//vector records
	EmbeddingOutputDimensionality int32 = 1536
	CollectionName                      = "travel-pages"
	SearchTopK                          = 3

	//ingestion
	ChunkSizeWords     = 500
	FetchTimeout       = 10 * time.Second
	IngestWorkerCount  = 4
	PageExtractTimeout = 10 * time.Second

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//vectorDB
	QdrantHost             = "127.0.0.1"
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//llm
	OpenAIChatModel = "gpt-4o-mini"
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"
	SystemPrompt    = "Answer using only the context provided."

	//embeddings
	OpenAIEmbeddingModel = "text-embedding-3-small"
	GoogleEmbeddingModel = "gemini-embedding-001"

	//outbound fetch connection pooling
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//chat history lives in DB 0, append-only, no TTL
	RedisChatStoreDB = 0
	ChatHistoryKey   = "chat_history"
	HistoryLimit     = 50

	//source configuration
	DefaultSourcesPath = "sources.yaml"
)

// EnvOr reads an environment variable with a fallback default.
func EnvOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
