package update

import (
	"todoloop/internal/model"
	"todoloop/internal/views"
)

// View is a pure function of the model: the whole frame is rebuilt from
// the current snapshot on every update.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	captureBar := ""
	if m.Capture {
		captureBar = m.captureInput.View()
	}
	if m.Palette.Active {
		captureBar = m.commandInput.View()
	}

	rows := make([]views.TodoRowData, 0, len(m.Todos))
	for i, t := range m.Todos {
		rows = append(rows, views.TodoRowData{
			ID:        t.ID,
			Content:   t.Content,
			Completed: t.IsCompleted,
			Selected:  i == m.Cursor,
		})
	}

	return views.RenderApp(views.AppData{
		Header:     "todoloop",
		CaptureBar: captureBar,
		ListView:   views.RenderTodoList(rows),
		CountLabel: views.ActiveCountLabel(model.ActiveCount(m.Todos)),
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     m.footerHelp(),
		HelpView:   m.renderHelpIfVisible(),
	})
}
