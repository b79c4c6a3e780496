package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todoloop/internal/model"
)

// Messages produced by store commands. Every mutation reports whether the
// collection changed; only a change triggers the reload that redraws the
// full view.
type todosLoadedMsg struct {
	todos []model.Todo
}

type mutationDoneMsg struct {
	changed bool
	status  string
}

type storeErrMsg struct {
	err error
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Capture {
			return m.handleCaptureKey(typed)
		}
		return m.handleListKey(typed)

	case todosLoadedMsg:
		m.Todos = typed.todos
		m.clampCursor()
		return m, nil

	case mutationDoneMsg:
		m.Status = StatusBar{Text: typed.status, IsError: false}
		if typed.changed {
			return m, m.loadCmd()
		}
		return m, nil

	case storeErrMsg:
		m.LastError = typed.err
		m.Status = StatusBar{Text: typed.err.Error(), IsError: true}
		return m, nil
	}
	return m, nil
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Capture = false
		m.captureInput.Blur()
		m.captureInput.SetValue("")
		m.Status = StatusBar{Text: "list mode"}
		return m, nil
	case "enter":
		content := m.captureInput.Value()
		// Clear and refocus so several todos can be entered in a row.
		// Blank submissions fall through to the store, which ignores them.
		m.captureInput.SetValue("")
		m.captureInput.Focus()
		return m, m.addCmd(content)
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.captureInput, cmd = m.captureInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit, "ctrl+c", "esc":
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Add, "i":
		m.Capture = true
		m.captureInput.Focus()
		m.Status = StatusBar{Text: "capture mode"}
		return m, nil
	case m.Keys.Palette:
		m.Palette.Active = true
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Todos)-1 {
			m.Cursor++
		}
		return m, nil
	case m.Keys.Toggle:
		if todo, ok := m.selected(); ok {
			return m, m.toggleCmd(todo.ID, !todo.IsCompleted)
		}
		return m, nil
	case m.Keys.Delete:
		if todo, ok := m.selected(); ok {
			return m, m.deleteCmd(todo.ID)
		}
		return m, nil
	case m.Keys.Clear:
		return m, m.clearCompletedCmd()
	case m.Keys.Reload:
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) loadCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		todos, err := store.Load(context.Background())
		if err != nil {
			return storeErrMsg{err: err}
		}
		return todosLoadedMsg{todos: todos}
	}
}

func (m Model) addCmd(content string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		changed, err := store.Add(context.Background(), content)
		if err != nil {
			return storeErrMsg{err: err}
		}
		if !changed {
			return mutationDoneMsg{changed: false, status: "nothing to add"}
		}
		return mutationDoneMsg{changed: true, status: "added " + strings.TrimSpace(content)}
	}
}

func (m Model) toggleCmd(id string, completed bool) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		changed, err := store.Toggle(context.Background(), id, completed)
		if err != nil {
			return storeErrMsg{err: err}
		}
		status := "marked done"
		if !completed {
			status = "marked pending"
		}
		return mutationDoneMsg{changed: changed, status: status}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		changed, err := store.Delete(context.Background(), id)
		if err != nil {
			return storeErrMsg{err: err}
		}
		if !changed {
			return mutationDoneMsg{changed: false, status: "nothing deleted"}
		}
		return mutationDoneMsg{changed: true, status: "deleted"}
	}
}

func (m Model) clearCompletedCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		changed, err := store.ClearCompleted(context.Background())
		if err != nil {
			return storeErrMsg{err: err}
		}
		if !changed {
			return mutationDoneMsg{changed: false, status: "no completed todos"}
		}
		return mutationDoneMsg{changed: true, status: "cleared completed"}
	}
}
