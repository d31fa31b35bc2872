package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jaekwang-park/combo-todo/internal/middleware"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"propagates caller id", "req-123", true},
		{"generates when missing", "", false},
		{"replaces oversized id", strings.Repeat("x", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.GetRequestID(r)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()

			middleware.RequestID(inner).ServeHTTP(w, req)

			if tt.keep && seen != tt.incoming {
				t.Errorf("expected request id %q, got %q", tt.incoming, seen)
			}
			if !tt.keep {
				if _, err := uuid.Parse(seen); err != nil {
					t.Errorf("expected generated UUID, got %q", seen)
				}
			}
			if got := w.Header().Get(middleware.RequestIDHeader); got != seen {
				t.Errorf("expected response header %q, got %q", seen, got)
			}
		})
	}
}
