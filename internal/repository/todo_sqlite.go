package repository

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

type SQLiteTodoRepository struct {
	sqlTodoRepository
}

func NewSQLiteTodo(db *sql.DB) *SQLiteTodoRepository {
	return &SQLiteTodoRepository{sqlTodoRepository{
		db: db,
		queries: todoQueries{
			listAll: `
				SELECT id, title, movement, punishment, mixup, combo
				FROM todos
				ORDER BY id ASC`,
			getByID: `
				SELECT id, title, movement, punishment, mixup, combo
				FROM todos
				WHERE id = ?`,
			insert: `
				INSERT INTO todos (id, title, movement, punishment, mixup, combo)
				VALUES (?, ?, ?, ?, ?, ?)
				RETURNING id, title, movement, punishment, mixup, combo`,
			updateScores: `
				UPDATE todos
				SET movement = ?, punishment = ?, mixup = ?, combo = ?
				WHERE id = ?`,
			deleteByID: `DELETE FROM todos WHERE id = ?`,
			deleteAll:  `DELETE FROM todos`,
		},
		isUniqueViolation: isSQLiteTitleConflict,
	}}
}

// SQLite reports primary key collisions with a separate extended code.
func isSQLiteTitleConflict(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

var _ TodoRepository = (*SQLiteTodoRepository)(nil)
