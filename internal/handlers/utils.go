package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nsharath/TravelRAG/internal/api"
	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/rag"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Too late to send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, stage string, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{
		Error: api.ErrorBody{Stage: stage, Message: message},
	})
}

// writeStageError maps a pipeline failure to a server error identifying
// which stage failed, keeping the original cause's message.
func writeStageError(w http.ResponseWriter, err error) {
	var stageError *rag.StageError
	if errors.As(err, &stageError) {
		WriteErrorResponse(w, http.StatusInternalServerError, string(stageError.Stage), stageError.Error())
		return
	}
	WriteErrorResponse(w, http.StatusInternalServerError, "", err.Error())
}

func validateContext(ctx context.Context) bool {
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logRH.Debug("Handling request", config.TRACE_ID_KEY, trace)
	}
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}
