package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"todoloop/internal/model"
	"todoloop/internal/storage"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type PaletteState struct {
	Active bool
	Input  string
}

type GlobalKeyMap struct {
	Add     string
	Toggle  string
	Delete  string
	Clear   string
	Reload  string
	Palette string
	Help    string
	Quit    string
}

// Model is the single owned state object: the current collection snapshot,
// cursor, input components, and the store every mutation goes through.
// Rendering derives entirely from this struct.
type Model struct {
	Todos       []model.Todo
	Cursor      int
	Capture     bool
	Palette     PaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	store        storage.Store
	captureInput textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

func NewModel(store storage.Store) Model {
	capture := textinput.New()
	capture.Prompt = "> "
	capture.Placeholder = "What needs to be done?"
	capture.CharLimit = 200

	command := textinput.New()
	command.Prompt = "/ "
	command.Placeholder = "add <content> | done <id> | rm <id> | clear"

	return Model{
		Todos: []model.Todo{},
		Keys: GlobalKeyMap{
			Add:     "a",
			Toggle:  " ",
			Delete:  "d",
			Clear:   "C",
			Reload:  "r",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		store:        store,
		captureInput: capture,
		commandInput: command,
		helpModel:    help.New(),
	}
}

// selected returns the todo under the cursor.
func (m Model) selected() (model.Todo, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Todos) {
		return model.Todo{}, false
	}
	return m.Todos[m.Cursor], true
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Todos) {
		m.Cursor = len(m.Todos) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
