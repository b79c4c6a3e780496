package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"todoloop/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todoloop-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestTodoCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	todo := model.Todo{
		ID:        "todo-1",
		Content:   "Write schema",
		CreatedAt: created,
	}
	if err := repo.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	got, err := repo.GetTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("get todo: %v", err)
	}
	if got.Content != todo.Content || got.IsCompleted {
		t.Fatalf("unexpected todo get result: %#v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed across storage: %v", got.CreatedAt)
	}

	done := created.Add(time.Hour)
	got.Content = "Write schema v2"
	got.IsCompleted = true
	got.CompletedAt = &done
	if err := repo.UpdateTodo(ctx, got); err != nil {
		t.Fatalf("update todo: %v", err)
	}

	updated, err := repo.GetTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("get updated todo: %v", err)
	}
	if !updated.IsCompleted || updated.CompletedAt == nil || !updated.CompletedAt.Equal(done) {
		t.Fatalf("unexpected updated todo: %#v", updated)
	}

	if err := repo.SoftDeleteTodo(ctx, todo.ID); err != nil {
		t.Fatalf("soft delete todo: %v", err)
	}
	if _, err := repo.GetTodo(ctx, todo.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after soft delete, got: %v", err)
	}
	if err := repo.SoftDeleteTodo(ctx, todo.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat soft delete, got: %v", err)
	}
}

func TestListTodosOrdering(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	done := base.Add(6 * time.Hour)

	seed := []model.Todo{
		{ID: "old-pending", Content: "old pending", CreatedAt: base},
		{ID: "new-pending", Content: "new pending", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "done", Content: "done", CreatedAt: base.Add(time.Hour), IsCompleted: true, CompletedAt: &done},
		{ID: "gone", Content: "gone", CreatedAt: base.Add(3 * time.Hour), IsDeleted: true},
	}
	for _, todo := range seed {
		if err := repo.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("create %s: %v", todo.ID, err)
		}
	}

	got, err := repo.ListTodos(ctx)
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	want := []string{"new-pending", "old-pending", "done"}
	if len(got) != len(want) {
		t.Fatalf("expected %d todos, got %d: %#v", len(want), len(got), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestUpdateMissingTodo(t *testing.T) {
	repo := setupRepo(t)
	err := repo.UpdateTodo(context.Background(), model.Todo{
		ID:        "missing",
		Content:   "nope",
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
