package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/data/redisStore"
	"github.com/nsharath/TravelRAG/internal/data/store"
	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/internal/handlers"
	"github.com/nsharath/TravelRAG/internal/rag"
	"github.com/nsharath/TravelRAG/internal/rag/embedding"
	"github.com/nsharath/TravelRAG/internal/rag/embedding/googleEmbedding"
	"github.com/nsharath/TravelRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/nsharath/TravelRAG/internal/rag/fetch"
	"github.com/nsharath/TravelRAG/internal/rag/llm"
	"github.com/nsharath/TravelRAG/internal/rag/llm/gemini"
	"github.com/nsharath/TravelRAG/internal/rag/llm/openaiLLM"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/nsharath/TravelRAG/internal/server"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

var (
	listenAddr  string
	sourcesPath string
)

func main() {
	_ = godotenv.Load() //optional .env for local runs

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.StringVar(&sourcesPath, "sources", config.DefaultSourcesPath, "path to the source catalog")
	flag.Parse()

	sources, err := config.LoadSources(sourcesPath)
	if err != nil {
		logger.Error("Could not load source catalog", "path", sourcesPath, "error", err)
		return
	}
	logger.Info("Source catalog loaded", "path", sourcesPath, "sources", len(sources))

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	chats := buildChatStore(serviceContext, logger)

	vectorIndex, err := qdrantDB.NewIndex(serviceContext)
	if err != nil {
		logger.Error("Vector index failed to initialize. Shutting down.", "error", err)
		return
	}

	embedder, err := buildEmbedder(serviceContext)
	if err != nil {
		logger.Error("Embedding provider failed to initialize. Shutting down.", "error", err)
		return
	}

	llmProvider, err := buildLLMProvider(serviceContext)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "error", err)
		return
	}

	ragService := rag.NewService(vectorIndex, llmProvider, embedder, chats, fetch.NewPageFetcher())

	handlers.Init(ragService, chats, sources)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

// buildChatStore prefers Redis and degrades to the in-memory store when
// Redis is offline at startup.
func buildChatStore(ctx context.Context, logger *logger_i.Logger) chatModel.ChatStore {
	redisClient, err := redisStore.New(ctx, config.EnvOr("REDIS_ADDR", config.RedisAddr), config.RedisChatStoreDB)
	if err != nil {
		logger.Error("Redis store is offline, chat history will not survive restarts", "error", err)
		return store.InitInMemoryChatStore()
	}
	return store.NewRedisChatStore(redisClient)
}

func buildEmbedder(ctx context.Context) (embedding.Embedder, error) {
	switch config.EnvOr("EMBEDDING_PROVIDER", "openai") {
	case "google":
		return googleEmbedding.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), config.GoogleEmbeddingModel)
	default:
		return openaiEmbedding.NewClient(os.Getenv("OPENAI_API_KEY"), config.OpenAIEmbeddingModel)
	}
}

func buildLLMProvider(ctx context.Context) (llm.Provider, error) {
	switch config.EnvOr("LLM_PROVIDER", "openai") {
	case "gemini":
		return gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), config.GeminiModelName)
	default:
		return openaiLLM.NewClient(os.Getenv("OPENAI_API_KEY"), config.OpenAIChatModel)
	}
}
