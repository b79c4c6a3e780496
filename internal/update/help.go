package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"todoloop/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `# todoloop

A tiny to-do list. Every mutation goes through the store and the whole
view is redrawn from the fresh state.

- type into the capture bar and press **enter** to add
- the palette accepts ` + "`add <content>`, `done <id>`, `rm <id>`, `clear`"

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var plain []string
	for _, kb := range m.keyBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	md := views.RenderMarkdown(helpMarkdown)
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: md,
	})
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add + "/i", Action: "add a todo"},
		{Key: "enter", Action: "submit capture input"},
		{Key: "j/k", Action: "move cursor"},
		{Key: "space", Action: "toggle completion"},
		{Key: m.Keys.Delete, Action: "delete todo"},
		{Key: m.Keys.Clear, Action: "clear completed"},
		{Key: m.Keys.Reload, Action: "reload from store"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle this help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) footerHelp() string {
	bindings := make([]key.Binding, 0, 4)
	for _, kb := range []KeyBinding{
		{Key: m.Keys.Add, Action: "add"},
		{Key: "space", Action: "toggle"},
		{Key: m.Keys.Delete, Action: "delete"},
		{Key: m.Keys.Help, Action: "help"},
	} {
		bindings = append(bindings, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return strings.TrimSpace(m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
}
