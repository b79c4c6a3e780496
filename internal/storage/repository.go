package storage

import (
	"context"

	"todoloop/internal/model"
)

// Repository is the server-side persistence surface. Deletes are soft:
// rows are flagged rather than removed, and listing skips flagged rows.
type Repository interface {
	CreateTodo(ctx context.Context, in model.Todo) error
	GetTodo(ctx context.Context, id string) (model.Todo, error)
	UpdateTodo(ctx context.Context, in model.Todo) error
	SoftDeleteTodo(ctx context.Context, id string) error
	ListTodos(ctx context.Context) ([]model.Todo, error)
}
