package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todoloop/internal/model"
)

// FileStore persists the collection as a JSON array in a single file.
// Insertion order is newest-first. A missing or malformed file loads as an
// empty collection without surfacing an error; absence and corruption are
// indistinguishable to the caller.
type FileStore struct {
	path  string
	todos []model.Todo
	now   func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, todos: []model.Todo{}, now: time.Now}
}

func (s *FileStore) Load(_ context.Context) ([]model.Todo, error) {
	s.todos = []model.Todo{}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return s.Todos(), nil
	}
	var todos []model.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		return s.Todos(), nil
	}
	s.todos = todos
	return s.Todos(), nil
}

func (s *FileStore) Todos() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *FileStore) Add(_ context.Context, content string) (bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return false, nil
	}
	now := s.now()
	todo := model.Todo{
		ID:        model.NewLocalID(now),
		Content:   content,
		CreatedAt: now,
	}
	s.todos = append([]model.Todo{todo}, s.todos...)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Toggle(_ context.Context, id string, completed bool) (bool, error) {
	for i := range s.todos {
		if s.todos[i].ID != id {
			continue
		}
		s.todos[i].SetCompleted(completed, s.now())
		if err := s.save(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *FileStore) Delete(_ context.Context, id string) (bool, error) {
	kept := s.todos[:0]
	for _, t := range s.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.todos) {
		return false, nil
	}
	s.todos = kept
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) ClearCompleted(_ context.Context) (bool, error) {
	kept := s.todos[:0]
	for _, t := range s.todos {
		if !t.IsCompleted {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.todos) {
		return false, nil
	}
	s.todos = kept
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) save() error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	payload, err := json.MarshalIndent(s.todos, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todos: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write todos: %w", err)
	}
	return os.Rename(tmp, s.path)
}
