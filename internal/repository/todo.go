package repository

import (
	"context"
	"errors"

	"github.com/jaekwang-park/combo-todo/internal/model"
)

// ErrDuplicateTitle is returned by Create when the title unique constraint rejects the insert.
var ErrDuplicateTitle = errors.New("duplicate todo title")

// TodoRepository reports missing rows with a wrapped sql.ErrNoRows.
type TodoRepository interface {
	ListAll(ctx context.Context) ([]model.Todo, error)
	GetByID(ctx context.Context, todoID string) (model.Todo, error)
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	UpdateScores(ctx context.Context, todo model.Todo) error
	Delete(ctx context.Context, todoID string) error
	DeleteAll(ctx context.Context) error
}
