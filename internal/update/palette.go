package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todoloop/internal/commands"
	"todoloop/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var storeCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			storeCmd = m.addCmd(a.Content)
			return commands.Result{Message: "adding " + a.Content}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			todo, ok := m.findByIDPrefix(d.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no todo matches id " + d.ID}
			}
			storeCmd = m.toggleCmd(todo.ID, !todo.IsCompleted)
			return commands.Result{Message: "toggling " + todo.Content}, nil
		},
		Remove: func(r commands.RemoveArgs) (commands.Result, error) {
			todo, ok := m.findByIDPrefix(r.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no todo matches id " + r.ID}
			}
			storeCmd = m.deleteCmd(todo.ID)
			return commands.Result{Message: "deleting " + todo.Content}, nil
		},
		Clear: func() (commands.Result, error) {
			storeCmd = m.clearCompletedCmd()
			return commands.Result{Message: "clearing completed"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, storeCmd
}

// findByIDPrefix resolves a palette id argument against the snapshot. A
// prefix is accepted when it matches exactly one todo.
func (m Model) findByIDPrefix(prefix string) (model.Todo, bool) {
	var found model.Todo
	matches := 0
	for _, t := range m.Todos {
		if strings.HasPrefix(t.ID, prefix) {
			found = t
			matches++
		}
	}
	if matches != 1 {
		return model.Todo{}, false
	}
	return found, true
}
