package model

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var ErrEmptyContent = errors.New("model: todo content is required")

// Todo is a single to-do entry. The wire shape matches the REST contract:
// deleted rows are retained server-side but never listed.
type Todo struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	IsCompleted bool       `json:"is_completed"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: todo id is required")
	}
	if strings.TrimSpace(t.Content) == "" {
		return ErrEmptyContent
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: todo created_at is required")
	}
	if t.IsCompleted && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when todo is completed")
	}
	if !t.IsCompleted && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when todo is not completed")
	}
	return nil
}

// SetCompleted flips the completion flag and keeps CompletedAt consistent
// with it.
func (t *Todo) SetCompleted(completed bool, now time.Time) {
	if completed && !t.IsCompleted {
		at := now
		t.CompletedAt = &at
	}
	if !completed {
		t.CompletedAt = nil
	}
	t.IsCompleted = completed
}

// NewLocalID returns an id for locally created todos. Uniqueness within one
// collection is all that matters, so millisecond timestamp plus a random
// suffix is enough.
func NewLocalID(now time.Time) string {
	return fmt.Sprintf("%d-%04d", now.UnixMilli(), rand.Intn(10000))
}

// ActiveCount reports how many todos are not yet completed.
func ActiveCount(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.IsCompleted {
			n++
		}
	}
	return n
}
