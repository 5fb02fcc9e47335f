// Package ui renders live progress of a multi-file run in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"zhfmt/internal/pipeline"
)

// maxRows ограничивает список файлов на экране; остальные сворачиваются в счётчик.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool

	finished int
	changed  int
	failed   int
}

type fileItem struct {
	path    string
	status  string
	changes int
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model fed by events. The model quits
// when the channel is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(pipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		model, cmd := m.prog.Update(msg)
		m.prog = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %d/%d", m.title, m.finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.visibleItems() {
		status := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		name := truncate(item.path, nameWidth)
		if item.changes > 0 {
			name = fmt.Sprintf("%s (%d)", name, item.changes)
		}
		b.WriteString("  " + status + " " + name + "\n")
	}
	if hidden := len(m.items) - min(len(m.items), maxRows); hidden > 0 {
		fmt.Fprintf(&b, "  %10s … %d more\n", "", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	fmt.Fprintf(&b, "\n  %d changed, %d failed\n", m.changed, m.failed)
	return b.String()
}

// visibleItems: сначала файлы в работе, затем последние завершённые.
func (m *progressModel) visibleItems() []fileItem {
	if len(m.items) <= maxRows {
		return m.items
	}
	out := make([]fileItem, 0, maxRows)
	for _, item := range m.items {
		if item.status != "queued" && !isTerminal(item.status) {
			out = append(out, item)
		}
	}
	for i := len(m.items) - 1; i >= 0 && len(out) < maxRows; i-- {
		if isTerminal(m.items[i].status) && m.items[i].status != "done" {
			out = append(out, m.items[i])
		}
	}
	for _, item := range m.items {
		if len(out) >= maxRows {
			break
		}
		if item.status == "queued" {
			out = append(out, item)
		}
	}
	return out[:min(len(out), maxRows)]
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	wasTerminal := isTerminal(item.status)
	item.status = statusLabel(ev.Stage, ev.Status)
	if ev.Changes > 0 {
		item.changes = ev.Changes
	}
	if !wasTerminal && ev.Status.Terminal() {
		m.finished++
		switch ev.Status {
		case pipeline.StatusChanged:
			m.changed++
		case pipeline.StatusError:
			m.failed++
		}
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func statusLabel(stage pipeline.Stage, status pipeline.Status) string {
	if status != pipeline.StatusWorking {
		return string(status)
	}
	switch stage {
	case pipeline.StageLoad:
		return "loading"
	case pipeline.StageLint:
		return "linting"
	case pipeline.StageFix:
		return "fixing"
	default:
		return "working"
	}
}

func isTerminal(label string) bool {
	return pipeline.Status(label).Terminal()
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "changed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "loading", "linting", "fixing", "working":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// truncate укорачивает путь по ширине терминала: иероглифы в путях занимают две колонки.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
