package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/nsharath/TravelRAG/internal/adapter"
	"github.com/nsharath/TravelRAG/internal/api"
	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/domain/chatModel"
	"github.com/nsharath/TravelRAG/internal/rag"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

var (
	handlerInstance *Handler //constructed once at startup
	once            sync.Once
	logRH           *logger_i.Logger
)

type Handler struct {
	ragService rag.Service
	chats      chatModel.ChatStore
	sources    config.Sources
}

func Init(ragService rag.Service, chats chatModel.ChatStore, sources config.Sources) {
	once.Do(func() {
		handlerInstance = &Handler{
			ragService: ragService,
			chats:      chats,
			sources:    sources,
		}
		logRH = logger_i.NewLogger("RequestHandler")
		logRH.Info("Request handlers initialized")
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ChatHandler answers a question grounded in the ingested pages.
func ChatHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid context by request", "remoteAddr", request.RemoteAddr)
		return
	}

	var requestData api.ChatRequest
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the chat request reader", "error", err)
		}
	}(request.Body)

	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Question == "" {
		logRH.Warn("Bad chat request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
		return
	}

	answer, err := handlerInstance.ragService.Answer(request.Context(), requestData.Question)
	if err != nil {
		writeStageError(w, err)
		return
	}

	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	writeJsonResponse(w, http.StatusOK, api.ChatResponse{Answer: answer.Answer, Sources: sources})
}

// IngestHandler runs the full ingestion pipeline over the configured sources.
func IngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid context by request", "remoteAddr", r.RemoteAddr)
		return
	}

	report, err := handlerInstance.ragService.Ingest(r.Context(), handlerInstance.sources)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "ingest", err.Error())
		return
	}

	writeJsonResponse(w, http.StatusOK, api.IngestResponse{
		Status:  report.Status,
		Sources: report.Sources,
		Chunks:  report.Chunks,
		Failed:  report.Failed,
	})
}

// HistoryHandler returns the most recent persisted chats, newest first.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid context by request", "remoteAddr", r.RemoteAddr)
		return
	}

	records, err := handlerInstance.chats.Recent(r.Context(), config.HistoryLimit)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, string(rag.StagePersistence), err.Error())
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(records))
}
