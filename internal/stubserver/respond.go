package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope mirrors the production API's response wrapper.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		slog.Default().Warn("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Success: false, Message: message}); err != nil {
		slog.Default().Warn("failed to encode error response", "error", err)
	}
}
