package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"zhfmt/internal/pipeline"
)

func update(t *testing.T, m tea.Model, ev pipeline.Event) tea.Model {
	t.Helper()
	next, _ := m.Update(eventMsg(ev))
	return next
}

func TestProgressModelCounts(t *testing.T) {
	events := make(chan pipeline.Event)
	var m tea.Model = NewProgressModel("check", []string{"a.md", "b.md", "中文/c.md"}, events)

	m = update(t, m, pipeline.Event{File: "a.md", Stage: pipeline.StageLint, Status: pipeline.StatusWorking})
	view := m.View()
	if !strings.Contains(view, "linting a.md") {
		t.Fatalf("expected working row, got:\n%s", view)
	}

	m = update(t, m, pipeline.Event{File: "a.md", Stage: pipeline.StageLint, Status: pipeline.StatusChanged, Changes: 3})
	m = update(t, m, pipeline.Event{File: "b.md", Stage: pipeline.StageLint, Status: pipeline.StatusError})
	// повторное терминальное событие не считается дважды
	m = update(t, m, pipeline.Event{File: "b.md", Stage: pipeline.StageLint, Status: pipeline.StatusError})
	m = update(t, m, pipeline.Event{File: "unknown.md", Status: pipeline.StatusDone})

	pm := m.(*progressModel)
	if pm.finished != 2 || pm.changed != 1 || pm.failed != 1 {
		t.Errorf("finished=%d changed=%d failed=%d", pm.finished, pm.changed, pm.failed)
	}
	view = m.View()
	for _, want := range []string{"check 2/3", "changed a.md (3)", "error b.md", "queued 中文/c.md", "1 changed, 1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, cmd := m.Update(doneMsg{})
	if cmd == nil || !strings.Contains(m.View(), "done: check") {
		t.Errorf("expected quit and done header, got:\n%s", m.View())
	}
}

func TestVisibleItemsLimit(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".md"
	}
	m := NewProgressModel("check", files, nil).(*progressModel)
	if got := len(m.visibleItems()); got != maxRows {
		t.Fatalf("visible = %d, want %d", got, maxRows)
	}
	if !strings.Contains(m.View(), "… 8 more") {
		t.Errorf("expected collapsed counter:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"docs/readme.md", 40, "docs/readme.md"},
		{"docs/readme.md", 10, "docs/re..."},
		{"文档/说明.md", 8, "文档/..."},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
