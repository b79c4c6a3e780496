package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"todoloop/internal/model"
)

// fakeAPI is a minimal in-memory stand-in for the todoloop server, with a
// mutation counter so tests can assert on persistence calls.
type fakeAPI struct {
	mu        sync.Mutex
	todos     []model.Todo
	mutations int
	nextID    int
	failWith  string // when set, every mutation answers 500 with this message
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todos", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.todos)
	})
	mux.HandleFunc("POST /todos", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failWith != "" {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": f.failWith})
			return
		}
		var body struct {
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mutations++
		f.nextID++
		todo := model.Todo{
			ID:        fmt.Sprintf("srv-%d", f.nextID),
			Content:   strings.TrimSpace(body.Content),
			CreatedAt: time.Now().UTC(),
		}
		f.todos = append([]model.Todo{todo}, f.todos...)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(todo)
	})
	mux.HandleFunc("PUT /todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var body struct {
			IsCompleted bool `json:"is_completed"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range f.todos {
			if f.todos[i].ID == r.PathValue("id") {
				f.mutations++
				f.todos[i].SetCompleted(body.IsCompleted, time.Now().UTC())
				_ = json.NewEncoder(w).Encode(f.todos[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	})
	mux.HandleFunc("DELETE /todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.todos {
			if f.todos[i].ID == r.PathValue("id") {
				f.mutations++
				f.todos = append(f.todos[:i], f.todos[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	})
	return mux
}

func (f *fakeAPI) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations
}

func setupRESTStore(t *testing.T) (*RESTStore, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return NewRESTStore(srv.URL), api
}

func TestRESTStoreAddRefetches(t *testing.T) {
	store, api := setupRESTStore(t)
	ctx := context.Background()
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	changed, err := store.Add(ctx, "  remote todo  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !changed {
		t.Fatal("add reported no change")
	}
	todos := store.Todos()
	if len(todos) != 1 || todos[0].Content != "remote todo" {
		t.Fatalf("expected re-fetched todo, got %#v", todos)
	}
	if api.mutationCount() != 1 {
		t.Fatalf("expected 1 mutation on server, got %d", api.mutationCount())
	}
}

func TestRESTStoreBlankAddSkipsNetwork(t *testing.T) {
	store, api := setupRESTStore(t)
	ctx := context.Background()
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	changed, err := store.Add(ctx, "   ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if changed || api.mutationCount() != 0 {
		t.Fatalf("blank add hit the server: changed=%v mutations=%d", changed, api.mutationCount())
	}
}

func TestRESTStoreToggleAndDeleteUnknownID(t *testing.T) {
	store, api := setupRESTStore(t)
	ctx := context.Background()
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	changed, err := store.Toggle(ctx, "ghost", true)
	if err != nil || changed {
		t.Fatalf("toggle unknown id: changed=%v err=%v", changed, err)
	}
	changed, err = store.Delete(ctx, "ghost")
	if err != nil || changed {
		t.Fatalf("delete unknown id: changed=%v err=%v", changed, err)
	}
	if api.mutationCount() != 0 {
		t.Fatalf("no-op mutations hit the server %d times", api.mutationCount())
	}
}

func TestRESTStoreClearCompleted(t *testing.T) {
	store, api := setupRESTStore(t)
	ctx := context.Background()
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := store.Add(ctx, "stays"); err != nil {
		t.Fatalf("add stays: %v", err)
	}
	if _, err := store.Add(ctx, "goes"); err != nil {
		t.Fatalf("add goes: %v", err)
	}

	// No completed todos yet: no network traffic.
	before := api.mutationCount()
	changed, err := store.ClearCompleted(ctx)
	if err != nil || changed {
		t.Fatalf("clear with nothing completed: changed=%v err=%v", changed, err)
	}
	if api.mutationCount() != before {
		t.Fatal("clear-completed with nothing to do hit the server")
	}

	goes := findByContent(t, store.Todos(), "goes")
	if _, err := store.Toggle(ctx, goes.ID, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	changed, err = store.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("clear completed: %v", err)
	}
	if !changed {
		t.Fatal("clear-completed reported no change")
	}
	left := store.Todos()
	if len(left) != 1 || left[0].Content != "stays" {
		t.Fatalf("unexpected todos after clear: %#v", left)
	}
}

func TestRESTStoreSurfacesServerError(t *testing.T) {
	store, api := setupRESTStore(t)
	ctx := context.Background()
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	api.failWith = "database is on fire"
	_, err := store.Add(ctx, "doomed")
	if err == nil {
		t.Fatal("expected error from failing server")
	}
	if !strings.Contains(err.Error(), "database is on fire") {
		t.Fatalf("expected server message in error, got: %v", err)
	}
}

func TestRESTStoreLoadFailurePropagates(t *testing.T) {
	store := NewRESTStore("http://127.0.0.1:1") // nothing listens here
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected network failure to propagate")
	}
}
