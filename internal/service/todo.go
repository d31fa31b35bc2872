package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jaekwang-park/combo-todo/internal/model"
	"github.com/jaekwang-park/combo-todo/internal/repository"
)

type TodoService struct {
	repo  repository.TodoRepository
	newID func() string
}

type Option func(*TodoService)

// WithIDGenerator replaces the default UUID v4 generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *TodoService) {
		s.newID = fn
	}
}

func NewTodoService(repo repository.TodoRepository, opts ...Option) *TodoService {
	s := &TodoService{repo: repo, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List scans the whole table in id order and returns the requested page.
func (s *TodoService) List(ctx context.Context, params model.ListParams) ([]model.Todo, error) {
	todos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return model.Paginate(todos, params), nil
}

func (s *TodoService) GetByID(ctx context.Context, todoID string) (model.Todo, error) {
	todo, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// Create relies on the storage unique constraint for title uniqueness, so two
// concurrent creates with one title cannot both succeed.
func (s *TodoService) Create(ctx context.Context, input model.CreateTodoInput) (model.Todo, error) {
	if input.Title == "" {
		return model.Todo{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	created, err := s.repo.Create(ctx, model.NewTodo(s.newID(), input))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return model.Todo{}, fmt.Errorf("%w: title %q already exists", ErrDuplicate, input.Title)
		}
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return created, nil
}

// Update merges the provided scores into the stored record and returns the
// row as read back from storage. The title is never modified.
func (s *TodoService) Update(ctx context.Context, todoID string, input model.UpdateTodoInput) (model.Todo, error) {
	existing, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for update: %w", err)
	}

	if err := s.repo.UpdateScores(ctx, existing.ApplyScores(input)); err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	updated, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to reload updated todo: %w", err)
	}

	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, todoID string) error {
	err := s.repo.Delete(ctx, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete all todos: %w", err)
	}
	return nil
}
