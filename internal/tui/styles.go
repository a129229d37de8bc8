package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tempus/internal/rows"
)

var (
	plainStyle       = lipgloss.NewStyle()
	dayStyle         = lipgloss.NewStyle().Bold(true)
	groupStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))  // Magenta
	billableStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // Green
	nonBillableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))  // Red
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray

	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	elapsedStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	summaryStyle  = lipgloss.NewStyle().Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	formBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder())
	buttonFocused = buttonStyle.BorderForeground(lipgloss.Color("205")).Bold(true)
)

func styleFor(s rows.Style) lipgloss.Style {
	switch s {
	case rows.StyleDescription:
		return plainStyle
	case rows.StyleDay:
		return dayStyle
	case rows.StyleGroup:
		return groupStyle
	case rows.StyleBillable:
		return billableStyle
	case rows.StyleNonBillable:
		return nonBillableStyle
	default:
		return plainStyle
	}
}

// renderLine draws a row's cells, grouping runs of equal style. cursorCol
// is shown in reverse video; pass -1 for no cursor.
func renderLine(row rows.DisplayRow, width, cursorCol int) string {
	cells := rows.Grid(row, width)
	if len(cells) == 0 {
		return ""
	}

	var b strings.Builder
	var run strings.Builder
	runStyle := cells[0].Style
	runCursor := cursorCol == 0

	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := styleFor(runStyle)
		if runCursor {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for i, c := range cells {
		if c.Rune == 0 {
			continue
		}
		isCursor := i == cursorCol
		if c.Style != runStyle || isCursor != runCursor {
			flush()
			runStyle = c.Style
			runCursor = isCursor
		}
		run.WriteRune(c.Rune)
	}
	flush()
	return b.String()
}
