package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", "error", err)
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	payload := errorPayload{Message: message}
	if err != nil {
		payload.Error = err.Error()
	}
	respondJSON(ctx, w, status, payload)
}
