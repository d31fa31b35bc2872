package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jaekwang-park/combo-todo/internal/middleware"
	"github.com/jaekwang-park/combo-todo/internal/model"
	"github.com/jaekwang-park/combo-todo/internal/service"
)

type TodoHandler struct {
	svc    *service.TodoService
	router *mux.Router
}

// NewTodoHandler serves /api/todos and /api/todos/{id}.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	h := &TodoHandler{svc: svc, router: mux.NewRouter()}

	h.router.HandleFunc("/api/todos", h.handleList).Methods(http.MethodGet)
	h.router.HandleFunc("/api/todos", h.handleCreate).Methods(http.MethodPost)
	h.router.HandleFunc("/api/todos", h.handleDeleteAll).Methods(http.MethodDelete)
	h.router.HandleFunc("/api/todos/{id}", h.handleGetByID).Methods(http.MethodGet)
	h.router.HandleFunc("/api/todos/{id}", h.handleUpdate).Methods(http.MethodPatch)
	h.router.HandleFunc("/api/todos/{id}", h.handleDelete).Methods(http.MethodDelete)

	h.router.NotFoundHandler = NotFound()
	h.router.MethodNotAllowedHandler = MethodNotAllowed()

	return h
}

func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	params := model.ListParams{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	todos, err := h.svc.List(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := h.svc.GetByID(r.Context(), todoID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

type createTodoRequest struct {
	Title      string `json:"title"`
	Movement   *int8  `json:"movement"`
	Punishment *int8  `json:"punishment"`
	Mixup      *int8  `json:"mixup"`
	Combo      *int8  `json:"combo"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeBody(w, r, createTodoSchema, &req); err != nil {
		slog.Debug("rejected create request", "error", err, "request_id", middleware.GetRequestID(r))
		WriteError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	todo, err := h.svc.Create(r.Context(), model.CreateTodoInput{
		Title:      req.Title,
		Movement:   req.Movement,
		Punishment: req.Punishment,
		Mixup:      req.Mixup,
		Combo:      req.Combo,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, todo)
}

type updateTodoRequest struct {
	Movement   *int8 `json:"movement"`
	Punishment *int8 `json:"punishment"`
	Mixup      *int8 `json:"mixup"`
	Combo      *int8 `json:"combo"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := decodeBody(w, r, updateTodoSchema, &req); err != nil {
		slog.Debug("rejected update request", "error", err, "request_id", middleware.GetRequestID(r))
		WriteError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	todo, err := h.svc.Update(r.Context(), todoID, model.UpdateTodoInput{
		Movement:   req.Movement,
		Punishment: req.Punishment,
		Mixup:      req.Mixup,
		Combo:      req.Combo,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), todoID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAll(r.Context()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID extracts the todo id. Ids are always UUIDs, so anything else cannot
// exist and is answered with 404 without touching storage.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	todoID := mux.Vars(r)["id"]
	if err := uuid.Validate(todoID); err != nil {
		WriteError(w, http.StatusNotFound, MsgTodoNotFound)
		return "", false
	}
	return todoID, true
}

// queryInt returns 0 for absent or malformed values so the defaults apply.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

func (h *TodoHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, MsgTodoNotFound)
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, MsgBadRequest)
	case errors.Is(err, service.ErrDuplicate):
		WriteError(w, http.StatusConflict, MsgTodoDuplicate)
	default:
		slog.Error("todo operation failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r),
		)
		WriteError(w, http.StatusInternalServerError, MsgInternalError)
	}
}
