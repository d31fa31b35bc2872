package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error messages are fixed per error kind; no detail is exposed to callers.
const (
	MsgBadRequest       = "Bad Request"
	MsgTodoNotFound     = "Todo Not Found"
	MsgTodoDuplicate    = "Todo Duplicated"
	MsgInternalError    = "Internal Server Error"
	MsgNotFound         = "Not Found"
	MsgMethodNotAllowed = "Method Not Allowed"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// NotFound and MethodNotAllowed replace the router's plain-text defaults.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, MsgNotFound)
	})
}

func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})
}
