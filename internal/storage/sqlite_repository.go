package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"todoloop/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, in model.Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (id, content, is_completed, is_deleted, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Content, boolInt(in.IsCompleted), boolInt(in.IsDeleted),
		mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, content, is_completed, is_deleted, created_at, completed_at
		FROM todos WHERE id = ? AND is_deleted = 0`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, err
	}
	return todo, nil
}

func (r *SQLiteRepository) UpdateTodo(ctx context.Context, in model.Todo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET content = ?, is_completed = ?, completed_at = ?
		WHERE id = ? AND is_deleted = 0`,
		in.Content, boolInt(in.IsCompleted), nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) SoftDeleteTodo(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListTodos returns non-deleted todos, completed ones last, newest first
// within each group.
func (r *SQLiteRepository) ListTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, is_completed, is_deleted, created_at, completed_at
		FROM todos WHERE is_deleted = 0
		ORDER BY is_completed ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (model.Todo, error) {
	var out model.Todo
	var isCompleted, isDeleted int
	var created string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Content, &isCompleted, &isDeleted, &created, &completed); err != nil {
		return model.Todo{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return model.Todo{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return model.Todo{}, err
	}
	out.IsCompleted = isCompleted != 0
	out.IsDeleted = isDeleted != 0
	out.CreatedAt = createdAt
	out.CompletedAt = completedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
