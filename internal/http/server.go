package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/combo-todo/internal/http/handler"
	"github.com/jaekwang-park/combo-todo/internal/middleware"
	"github.com/jaekwang-park/combo-todo/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, todoSvc *service.TodoService, db handler.Pinger, corsOrigins []string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      NewHandler(logger, todoSvc, db, corsOrigins),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// NewHandler returns the router wrapped in the middleware chain:
// request id -> recovery -> logging -> cors -> router.
func NewHandler(logger *slog.Logger, todoSvc *service.TodoService, db handler.Pinger, corsOrigins []string) http.Handler {
	router := NewRouter(todoSvc, db)

	chain := middleware.CORS(corsOrigins)(router)
	chain = middleware.Logging(logger)(chain)
	chain = middleware.Recovery(logger)(chain)
	return middleware.RequestID(chain)
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
