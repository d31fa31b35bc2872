package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const pgUniqueViolation = pq.ErrorCode("23505")

type PostgresTodoRepository struct {
	sqlTodoRepository
}

func NewPostgresTodo(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{sqlTodoRepository{
		db: db,
		queries: todoQueries{
			listAll: `
				SELECT id, title, movement, punishment, mixup, combo
				FROM todos
				ORDER BY id ASC`,
			getByID: `
				SELECT id, title, movement, punishment, mixup, combo
				FROM todos
				WHERE id = $1`,
			insert: `
				INSERT INTO todos (id, title, movement, punishment, mixup, combo)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, title, movement, punishment, mixup, combo`,
			updateScores: `
				UPDATE todos
				SET movement = $1, punishment = $2, mixup = $3, combo = $4
				WHERE id = $5`,
			deleteByID: `DELETE FROM todos WHERE id = $1`,
			deleteAll:  `DELETE FROM todos`,
		},
		isUniqueViolation: isPostgresTitleConflict,
	}}
}

// isPostgresTitleConflict reports a unique violation on anything but the primary key.
func isPostgresTitleConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgUniqueViolation && pqErr.Constraint != "todos_pkey"
}

// ensure compile-time interface compliance
var _ TodoRepository = (*PostgresTodoRepository)(nil)
