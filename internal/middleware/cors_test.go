package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaekwang-park/combo-todo/internal/middleware"
)

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.CORS([]string{"http://localhost:3000"})(inner)

	tests := []struct {
		name       string
		method     string
		origin     string
		reqMethod  string
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", http.MethodGet, "http://localhost:3000", "", "http://localhost:3000", http.StatusOK},
		{"disallowed origin", http.MethodGet, "http://evil.example", "", "", http.StatusOK},
		{"preflight patch", http.MethodOptions, "http://localhost:3000", http.MethodPatch, "http://localhost:3000", http.StatusNoContent},
		{"preflight put rejected", http.MethodOptions, "http://localhost:3000", http.MethodPut, "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/todos", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.reqMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tt.reqMethod)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected Access-Control-Allow-Origin=%q, got %q", tt.wantOrigin, got)
			}
		})
	}
}

func TestCORS_EmptyOriginsDisabled(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.CORS(nil)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Access-Control-Allow-Origin, got %q", got)
	}
}
