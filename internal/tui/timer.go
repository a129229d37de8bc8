package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tempus/internal/domain"
	"tempus/internal/stopwatch"
)

// Form field order. Text inputs come first, then the checkbox and the button.
const (
	fieldProject = iota
	fieldClient
	fieldDescription
	fieldTask
	fieldEmail
	fieldTags
	fieldBillable
	fieldButton
	fieldCount
)

var fieldLabels = [...]string{"Project", "Client", "Description", "Task", "Email", "Tags"}

// tickMsg redraws the elapsed label. gen is the stopwatch generation it was
// scheduled under; ticks from an earlier session are dropped.
type tickMsg struct {
	gen uint64
}

// closeTimerMsg returns to the list. saved reports whether a session was stored.
type closeTimerMsg struct {
	saved bool
}

// TimerModel is the stopwatch form
type TimerModel struct {
	ctx      context.Context
	sw       *stopwatch.Stopwatch
	inputs   []textinput.Model
	billable bool
	focus    int

	lastSummary string
	keys        timerKeyMap
	help        help.Model
	width       int
}

// NewTimerModel creates an idle form driving sw
func NewTimerModel(ctx context.Context, sw *stopwatch.Stopwatch, maxFieldLength int) *TimerModel {
	inputs := make([]textinput.Model, len(fieldLabels))
	for i, label := range fieldLabels {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = strings.ToLower(label)
		in.CharLimit = maxFieldLength
		in.Width = 40
		inputs[i] = in
	}
	inputs[fieldTags].Placeholder = "comma, separated"

	m := &TimerModel{
		ctx:    ctx,
		sw:     sw,
		inputs: inputs,
		keys:   timerKeys,
		help:   help.New(),
	}
	m.setFocus(fieldProject)
	return m
}

// Open prepares the form for a visit. A carried entry prefills the fields and
// starts timing at once.
func (m *TimerModel) Open(carried *domain.TimeEntry) tea.Cmd {
	if carried == nil {
		m.setFocus(fieldProject)
		return textinput.Blink
	}
	m.load(stopwatch.FieldsFrom(*carried))
	m.setFocus(fieldButton)
	return m.start(carried)
}

func (m *TimerModel) load(f stopwatch.Fields) {
	values := [...]string{f.ProjectName, f.ClientName, f.Description, f.Task, f.Email, f.Tags}
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	m.billable = f.Billable
}

func (m *TimerModel) fields() stopwatch.Fields {
	return stopwatch.Fields{
		ProjectName: m.inputs[fieldProject].Value(),
		ClientName:  m.inputs[fieldClient].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Task:        m.inputs[fieldTask].Value(),
		Email:       m.inputs[fieldEmail].Value(),
		Tags:        m.inputs[fieldTags].Value(),
		Billable:    m.billable,
	}
}

func (m *TimerModel) setFocus(i int) {
	m.focus = (i + fieldCount) % fieldCount
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *TimerModel) start(carried *domain.TimeEntry) tea.Cmd {
	if carried == nil {
		m.sw.SetFields(m.fields())
	}
	if !m.sw.Start(carried) {
		return nil
	}
	m.lastSummary = ""
	return m.tick()
}

// stop ends a running session; it reports whether the entry was stored
func (m *TimerModel) stop() bool {
	if !m.sw.Running() {
		return false
	}
	m.sw.SetFields(m.fields())
	entry, saved := m.sw.Stop(m.ctx)
	if saved {
		m.lastSummary = stopwatch.Summary(entry)
	} else {
		m.lastSummary = ""
	}
	return saved
}

func (m *TimerModel) toggle() tea.Cmd {
	if m.sw.Running() {
		m.stop()
		return nil
	}
	return m.start(nil)
}

func (m *TimerModel) tick() tea.Cmd {
	gen := m.sw.Generation()
	return tea.Tick(m.sw.Interval(), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// LastSummary is the "Worked on" line of the last stored session
func (m *TimerModel) LastSummary() string {
	return m.lastSummary
}

func (m *TimerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.gen != m.sw.Generation() || !m.sw.Running() {
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			saved := m.stop()
			return m, func() tea.Msg { return closeTimerMsg{saved: saved} }
		case key.Matches(msg, m.keys.Submit):
			return m, m.toggle()
		case key.Matches(msg, m.keys.Next):
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.setFocus(m.focus - 1)
			return m, nil
		case m.focus == fieldBillable && key.Matches(msg, m.keys.Toggle):
			m.billable = !m.billable
			m.sw.SetFields(m.fields())
			return m, nil
		case m.focus == fieldButton && key.Matches(msg, m.keys.Toggle):
			return m, m.toggle()
		}
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.sw.SetFields(m.fields())
	}
	return m, cmd
}

func (m *TimerModel) View() string {
	var b strings.Builder

	for i, label := range fieldLabels {
		style := labelStyle
		if i == m.focus {
			style = focusedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	check := "[ ]"
	if m.billable {
		check = "[x]"
	}
	checkStyle := labelStyle
	if m.focus == fieldBillable {
		checkStyle = focusedStyle
	}
	b.WriteString(checkStyle.Render(fmt.Sprintf("%-12s", "Billable")) + check + "\n")

	elapsed := domain.FormatHHMMSS(0)
	if m.sw.Running() {
		elapsed = m.sw.Display()
	}

	label := "Start"
	if m.sw.Running() {
		label = "Stop"
	}
	button := buttonStyle
	if m.focus == fieldButton {
		button = buttonFocused
	}

	b.WriteString(elapsedStyle.Render(elapsed))
	b.WriteString("\n")
	b.WriteString(button.Render(label))

	body := formBoxStyle.Render(b.String())
	parts := []string{titleStyle.Render("tempus timer"), body}
	if m.lastSummary != "" {
		parts = append(parts, summaryStyle.Render(m.lastSummary))
	}
	if strings.TrimSpace(m.inputs[fieldProject].Value()) == "" && m.sw.Running() {
		parts = append(parts, errorStyle.Render("No project set; this session will not be saved."))
	}
	parts = append(parts, footerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
