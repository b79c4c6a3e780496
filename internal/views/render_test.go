package views

import (
	"strings"
	"testing"
)

func TestActiveCountLabelPluralization(t *testing.T) {
	cases := []struct {
		active int
		want   string
	}{
		{0, "0 items"},
		{1, "1 item"},
		{2, "2 items"},
		{11, "11 items"},
	}
	for _, tc := range cases {
		if got := ActiveCountLabel(tc.active); got != tc.want {
			t.Fatalf("ActiveCountLabel(%d) = %q, want %q", tc.active, got, tc.want)
		}
	}
}

func TestRenderTodoListEmptyState(t *testing.T) {
	out := RenderTodoList(nil)
	if !strings.Contains(out, "Nothing to do") {
		t.Fatalf("expected empty-state placeholder, got %q", out)
	}
}

func TestRenderTodoListRows(t *testing.T) {
	out := RenderTodoList([]TodoRowData{
		{ID: "a", Content: "pending thing", Selected: true},
		{ID: "b", Content: "finished thing", Completed: true},
	})
	if strings.Contains(out, "Nothing to do") {
		t.Fatal("placeholder rendered for non-empty list")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "[ ]") || !strings.Contains(lines[0], "pending thing") {
		t.Fatalf("unexpected pending row: %q", lines[0])
	}
	if !strings.Contains(lines[1], "[x]") || !strings.Contains(lines[1], "finished thing") {
		t.Fatalf("unexpected completed row: %q", lines[1])
	}
	if !strings.Contains(lines[0], ">") {
		t.Fatalf("expected cursor on selected row: %q", lines[0])
	}
}

func TestRenderAppIncludesCountAndStatus(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "todoloop",
		ListView:   "  [ ] one",
		CountLabel: "1 item",
		StatusLine: "added",
	})
	for _, want := range []string{"todoloop", "[ ] one", "1 item", "added"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered app:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty output for blank markdown, got %q", got)
	}
}
