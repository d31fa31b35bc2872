package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jaekwang-park/combo-todo/internal/http/handler"
	"github.com/jaekwang-park/combo-todo/internal/service"
)

// NewRouter wires the health check and the todo API. db may be nil, in
// which case /health reports liveness only.
func NewRouter(todoSvc *service.TodoService, db handler.Pinger) http.Handler {
	r := mux.NewRouter()

	// Health check - outside /api for load balancer compatibility
	r.Handle("/health", handler.NewHealthHandler(db))

	todoHandler := handler.NewTodoHandler(todoSvc)
	r.Handle("/api/todos", todoHandler)
	r.PathPrefix("/api/todos/").Handler(todoHandler)

	r.NotFoundHandler = handler.NotFound()
	r.MethodNotAllowedHandler = handler.MethodNotAllowed()

	return r
}
