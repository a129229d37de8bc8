package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tempus/internal/domain"
	"tempus/internal/logging"
	"tempus/internal/rows"
	"tempus/internal/services"
	"tempus/internal/viewport"
)

// openTimerMsg asks the app to show the timer form, prefilled when carried is set
type openTimerMsg struct {
	carried *domain.TimeEntry
}

// ListModel is the scrollable day/group/entry list
type ListModel struct {
	ctx      context.Context
	store    services.RecordStore
	builder  *rows.Builder
	location *time.Location

	table []rows.DisplayRow
	view  *viewport.Viewport
	keys  listKeyMap
	help  help.Model
}

// NewListModel creates the list screen and loads the table
func NewListModel(ctx context.Context, store services.RecordStore, builder *rows.Builder) *ListModel {
	m := &ListModel{
		ctx:      ctx,
		store:    store,
		builder:  builder,
		location: builder.Location,
		view:     viewport.New(80, 24),
		keys:     listKeys,
		help:     help.New(),
	}
	m.Refresh()
	return m
}

// Refresh reloads every entry from the store and rebuilds the table
func (m *ListModel) Refresh() {
	m.rebuild()
	m.view.Refresh(m.table)
}

func (m *ListModel) rebuild() {
	entries := m.store.FetchAll(m.ctx)
	days := services.AggregateIn(entries, m.location)
	m.table = m.builder.Build(days)
	logging.Debugf("list refreshed: %d entries, %d days, %d rows", len(entries), len(days), len(m.table))
}

// Table returns the current rows
func (m *ListModel) Table() []rows.DisplayRow {
	return m.table
}

// Viewport returns the scroll and cursor state
func (m *ListModel) Viewport() *viewport.Viewport {
	return m.view
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// a resize is a full refresh
		m.rebuild()
		m.view.Resize(msg.Width, msg.Height, m.table)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.view.MoveUp(m.table)
		case key.Matches(msg, m.keys.Down):
			m.view.MoveDown(m.table)
		case key.Matches(msg, m.keys.Left):
			m.view.MoveLeft()
		case key.Matches(msg, m.keys.Right):
			m.view.MoveRight()
		case key.Matches(msg, m.keys.NextGroup):
			m.view.JumpToGroup(m.table, 1)
		case key.Matches(msg, m.keys.PrevGroup):
			m.view.JumpToGroup(m.table, -1)
		case key.Matches(msg, m.keys.New):
			return m, openTimer(nil)
		case key.Matches(msg, m.keys.Resume):
			if entry, ok := m.view.Selected(m.table); ok {
				return m, openTimer(&entry)
			}
		}
	}
	return m, nil
}

func openTimer(carried *domain.TimeEntry) tea.Cmd {
	return func() tea.Msg { return openTimerMsg{carried: carried} }
}

func (m *ListModel) View() string {
	usable := m.view.UsableRows()
	lines := make([]string, 0, usable+1)

	for i, row := range m.view.Visible(m.table) {
		cursor := -1
		if i == m.view.CursorRow {
			cursor = m.view.CursorCol
		}
		lines = append(lines, renderLine(row, m.view.Width, cursor))
	}
	if len(m.table) == 0 {
		lines = append(lines, "No entries yet. Press n to start a timer.")
	}
	for len(lines) < usable {
		lines = append(lines, "")
	}

	lines = append(lines, footerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return strings.Join(lines, "\n")
}
