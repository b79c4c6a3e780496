package storage

import (
	"context"
	"errors"

	"todoloop/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Store holds the ordered in-memory todo collection and keeps it in sync
// with a persistent source. The bool returned by every mutation reports
// whether the collection actually changed; callers re-render only then.
//
// Two implementations exist: FileStore persists to a local JSON file and
// RESTStore treats a remote HTTP resource as the source of truth.
type Store interface {
	// Load replaces the in-memory collection from the persistent source
	// and returns the fresh snapshot.
	Load(ctx context.Context) ([]model.Todo, error)

	// Todos returns the current in-memory snapshot without touching the
	// persistent source.
	Todos() []model.Todo

	// Add creates a todo from the trimmed content. Blank content is a
	// no-op: (false, nil).
	Add(ctx context.Context, content string) (bool, error)

	// Toggle sets the completion flag of the todo with the given id.
	// Unknown ids are a no-op: (false, nil).
	Toggle(ctx context.Context, id string, completed bool) (bool, error)

	// Delete removes the todo with the given id. Unknown ids are a no-op
	// with no persistence call.
	Delete(ctx context.Context, id string) (bool, error)

	// ClearCompleted removes every completed todo in one batch. With zero
	// completed todos no persistence call is made.
	ClearCompleted(ctx context.Context) (bool, error)
}
