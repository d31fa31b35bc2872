package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaekwang-park/combo-todo/internal/http/handler"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

func TestHealthHandler_GET(t *testing.T) {
	tests := []struct {
		name       string
		db         handler.Pinger
		wantStatus int
		wantBody   string
	}{
		{"no database", nil, http.StatusOK, "ok"},
		{"database reachable", stubPinger{}, http.StatusOK, "ok"},
		{"database down", stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db)
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}

			var result map[string]string
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result["status"] != tt.wantBody {
				t.Errorf("expected status=%s, got %s", tt.wantBody, result["status"])
			}
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			h := handler.NewHealthHandler(nil)
			req := httptest.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected status 405, got %d", w.Code)
			}

			var result handler.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result.Error != handler.MsgMethodNotAllowed {
				t.Errorf("expected error=%q, got %q", handler.MsgMethodNotAllowed, result.Error)
			}
		})
	}
}
