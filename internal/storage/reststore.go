package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"todoloop/internal/model"
)

// RESTStore talks to a todoloop server and treats it as the source of
// truth: every mutation is a single request followed by a full re-fetch.
// Requests are serialized by the caller; there is no retry logic.
type RESTStore struct {
	baseURL string
	client  *http.Client
	todos   []model.Todo
}

func NewRESTStore(baseURL string) *RESTStore {
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		todos:   []model.Todo{},
	}
}

func (s *RESTStore) Load(ctx context.Context) ([]model.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/todos", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch todos: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}
	var todos []model.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	s.todos = todos
	return s.Todos(), nil
}

func (s *RESTStore) Todos() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *RESTStore) Add(ctx context.Context, content string) (bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return false, nil
	}
	payload := map[string]string{"content": content}
	if err := s.send(ctx, http.MethodPost, "/todos", payload, http.StatusCreated); err != nil {
		return false, err
	}
	if _, err := s.Load(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RESTStore) Toggle(ctx context.Context, id string, completed bool) (bool, error) {
	if !s.has(id) {
		return false, nil
	}
	payload := map[string]bool{"is_completed": completed}
	if err := s.send(ctx, http.MethodPut, "/todos/"+id, payload, http.StatusOK); err != nil {
		return false, err
	}
	if _, err := s.Load(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RESTStore) Delete(ctx context.Context, id string) (bool, error) {
	if !s.has(id) {
		return false, nil
	}
	if err := s.send(ctx, http.MethodDelete, "/todos/"+id, nil, http.StatusNoContent); err != nil {
		return false, err
	}
	if _, err := s.Load(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RESTStore) ClearCompleted(ctx context.Context) (bool, error) {
	var completed []string
	for _, t := range s.todos {
		if t.IsCompleted {
			completed = append(completed, t.ID)
		}
	}
	if len(completed) == 0 {
		return false, nil
	}
	for _, id := range completed {
		if err := s.send(ctx, http.MethodDelete, "/todos/"+id, nil, http.StatusNoContent); err != nil {
			return false, err
		}
	}
	if _, err := s.Load(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RESTStore) has(id string) bool {
	for _, t := range s.todos {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (s *RESTStore) send(ctx context.Context, method, path string, payload any, want int) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		return apiError(resp)
	}
	return nil
}

// apiError surfaces the server-provided error message when the body carries
// one, otherwise the HTTP status line.
func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && strings.TrimSpace(body.Error) != "" {
		return fmt.Errorf("server: %s", body.Error)
	}
	return fmt.Errorf("server: %s", resp.Status)
}
