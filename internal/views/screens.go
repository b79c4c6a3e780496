package views

import (
	"fmt"
	"strings"
)

type TodoRowData struct {
	ID        string
	Content   string
	Completed bool
	Selected  bool
}

const emptyPlaceholder = "Nothing to do. Press a to add a todo."

// RenderTodoList draws one line per todo: cursor, checkbox, content. An
// empty collection renders the empty-state placeholder instead.
func RenderTodoList(rows []TodoRowData) string {
	if len(rows) == 0 {
		return mutedStyle.Render(emptyPlaceholder)
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, renderTodoRow(row))
	}
	return strings.Join(lines, "\n")
}

func renderTodoRow(row TodoRowData) string {
	box := "[ ]"
	content := row.Content
	if row.Completed {
		box = checkedStyle.Render("[x]")
		content = doneStyle.Render(content)
	}
	prefix := "  "
	if row.Selected {
		prefix = cursorStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s", prefix, box, content)
}

// ActiveCountLabel formats the incomplete-item counter, singular only when
// the count is exactly one.
func ActiveCountLabel(active int) string {
	if active == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", active)
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("keys:\n")
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	if data.HelpView != "" {
		b.WriteString(data.HelpView)
	}
	return strings.TrimSpace(b.String())
}
