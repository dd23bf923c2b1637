// Package ui provides the interactive terminal renderer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskpad/internal/task"
)

// Controller receives the intents emitted by the renderer. *task.Store
// satisfies it.
type Controller interface {
	Snapshot() *task.Snapshot
	Add(title string) *task.Snapshot
	Toggle(id string) *task.Snapshot
	Delete(id string) *task.Snapshot
	Update(id, title string) *task.Snapshot
	ClearCompleted() *task.Snapshot
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	filter task.Filter
	logger *log.Logger
}

// WithFilter sets the filter shown on start.
func WithFilter(f task.Filter) TUIOption {
	return func(c *tuiConfig) {
		c.filter = task.ParseFilter(string(f))
	}
}

// WithLogger sets the logger used for intent tracing.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI starts the TUI on the alternate screen and blocks until the user
// quits or ctx is canceled.
func RunTUI(ctx context.Context, ctrl Controller, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(ctrl, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type tuiModel struct {
	ctrl      Controller
	logger    *log.Logger
	snap      *task.Snapshot
	visible   []task.Task
	filter    task.Filter
	cursor    int
	mode      mode
	editID    string
	input     textinput.Model
	help      help.Model
	keys      keyMap
	inputKeys inputKeys
	styles    styles
	showHelp  bool
}

func newTUIModel(ctrl Controller, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{filter: task.FilterAll}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 500
	ti.Width = 50

	m := &tuiModel{
		ctrl:      ctrl,
		logger:    c.logger,
		filter:    c.filter,
		input:     ti,
		help:      help.New(),
		keys:      newKeyMap(),
		inputKeys: newInputKeys(),
		styles:    defaultStyles(),
	}
	m.apply(ctrl.Snapshot())
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if w := msg.Width - 16; w > 10 {
			m.input.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m, m.startInput(modeAdd, "", "")
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return m, m.startInput(modeEdit, t.ID, t.Title)
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.logger.Debug("toggle", "id", t.ID)
			m.apply(m.ctrl.Toggle(t.ID))
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.logger.Debug("delete", "id", t.ID)
			m.apply(m.ctrl.Delete(t.ID))
		}
	case key.Matches(msg, m.keys.Clear):
		m.logger.Debug("clear completed")
		m.apply(m.ctrl.ClearCompleted())
	case key.Matches(msg, m.keys.All):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.setFilter(task.FilterActive)
	case key.Matches(msg, m.keys.Completed):
		m.setFilter(task.FilterCompleted)
	case key.Matches(msg, m.keys.Cycle):
		m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		m.stopInput()
		return m, nil
	case key.Matches(msg, m.inputKeys.Submit):
		value := m.input.Value()
		if m.mode == modeAdd {
			m.logger.Debug("add", "title", value)
			before := m.snap
			m.apply(m.ctrl.Add(value))
			if m.snap != before && m.filter != task.FilterCompleted && len(m.visible) > 0 {
				m.cursor = len(m.visible) - 1
			}
		} else {
			m.logger.Debug("update", "id", m.editID, "title", value)
			m.apply(m.ctrl.Update(m.editID, value))
		}
		m.stopInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) startInput(md mode, id, value string) tea.Cmd {
	m.mode = md
	m.editID = id
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *tuiModel) stopInput() {
	m.mode = modeList
	m.editID = ""
	m.input.Reset()
	m.input.Blur()
}

// apply stores a snapshot returned by the controller and recomputes the
// visible subset.
func (m *tuiModel) apply(snap *task.Snapshot) {
	m.snap = snap
	m.refresh()
}

func (m *tuiModel) setFilter(f task.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.cursor = 0
	m.refresh()
}

func (m *tuiModel) refresh() {
	m.visible = m.snap.Select(m.filter)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("taskpad"))
	b.WriteString("\n")
	m.writeTabs(&b)

	if m.mode == modeAdd {
		b.WriteString(m.styles.InputPrompt.Render("New task: "))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	m.writeList(&b)
	m.writeFooter(&b)

	b.WriteString("\n")
	if m.mode == modeList {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(m.inputKeys))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *tuiModel) writeTabs(b *strings.Builder) {
	tabs := make([]string, 0, len(task.Filters))
	for _, f := range task.Filters {
		if f == m.filter {
			tabs = append(tabs, m.styles.ActiveTab.Render(f.Label()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(f.Label()))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")
}

func (m *tuiModel) writeList(b *strings.Builder) {
	if len(m.visible) == 0 {
		b.WriteString(m.styles.Empty.Render(m.filter.EmptyMessage()))
		b.WriteString("\n")
		return
	}

	for i, t := range m.visible {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		b.WriteString(cursor)

		if m.mode == modeEdit && t.ID == m.editID {
			b.WriteString(m.input.View())
			b.WriteString("\n")
			continue
		}

		b.WriteString(formatTask(t, m.styles))
		b.WriteString("\n")
	}
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	counts := m.snap.Counts()
	if counts.Total == 0 {
		return
	}
	line := m.styles.Left.Render(fmt.Sprintf("%d tasks left", counts.Active)) +
		"  " + m.styles.Completed.Render(fmt.Sprintf("%d completed", counts.Completed))
	if m.snap.HasCompleted() {
		line += "  " + m.styles.ClearHint.Render("c: Clear completed")
	}
	b.WriteString(m.styles.Footer.Render(line))
	b.WriteString("\n")
}

func formatTask(t task.Task, st styles) string {
	box := "[ ]"
	title := st.Item.Render(t.Title)
	if t.Completed {
		box = "[x]"
		title = st.Done.Render(t.Title)
	}
	created := st.Created.Render("Created: " + t.CreatedAt.Local().Format("Jan 2, 2006"))
	return fmt.Sprintf("%s %s  %s", box, title, created)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
