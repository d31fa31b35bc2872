package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/combo-todo/internal/model"
)

// todoQueries holds the dialect-specific statements for the todos table.
type todoQueries struct {
	listAll      string
	getByID      string
	insert       string
	updateScores string
	deleteByID   string
	deleteAll    string
}

// sqlTodoRepository implements TodoRepository over database/sql. Dialects
// supply their statements and how a title unique violation is reported.
type sqlTodoRepository struct {
	db                *sql.DB
	queries           todoQueries
	isUniqueViolation func(error) bool
}

func (r *sqlTodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, r.queries.listAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

func (r *sqlTodoRepository) GetByID(ctx context.Context, todoID string) (model.Todo, error) {
	row := r.db.QueryRowContext(ctx, r.queries.getByID, todoID)
	return scanTodo(row)
}

func (r *sqlTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	row := r.db.QueryRowContext(ctx, r.queries.insert,
		todo.ID, todo.Title, todo.Movement, todo.Punishment, todo.Mixup, todo.Combo,
	)

	created, err := scanTodo(row)
	if err != nil {
		if r.isUniqueViolation(err) {
			return model.Todo{}, fmt.Errorf("%w: %q", ErrDuplicateTitle, todo.Title)
		}
		return model.Todo{}, err
	}
	return created, nil
}

func (r *sqlTodoRepository) UpdateScores(ctx context.Context, todo model.Todo) error {
	result, err := r.db.ExecContext(ctx, r.queries.updateScores,
		todo.Movement, todo.Punishment, todo.Mixup, todo.Combo, todo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return expectRows(result)
}

func (r *sqlTodoRepository) Delete(ctx context.Context, todoID string) error {
	result, err := r.db.ExecContext(ctx, r.queries.deleteByID, todoID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return expectRows(result)
}

func (r *sqlTodoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.queries.deleteAll); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	return nil
}

func expectRows(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (model.Todo, error) {
	var t model.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Movement, &t.Punishment, &t.Mixup, &t.Combo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	return t, nil
}
