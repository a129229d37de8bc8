// Package tui hosts the interactive list and timer screens.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tempus/internal/config"
	"tempus/internal/domain"
	"tempus/internal/errors"
	"tempus/internal/logging"
	"tempus/internal/rows"
	"tempus/internal/services"
	"tempus/internal/stopwatch"
)

type screen int

const (
	screenList screen = iota
	screenTimer
)

// App switches between the list and the timer form
type App struct {
	screen screen
	list   *ListModel
	timer  *TimerModel
	sw     *stopwatch.Stopwatch
}

// NewApp wires the screens to the store in c
func NewApp(ctx context.Context, c services.ServiceContainer, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	elapsed := func(template domain.TimeEntry, date time.Time) time.Duration {
		return c.Store.ComputeDailyElapsed(ctx, template, date, true)
	}
	builder := rows.NewBuilder(cfg.Display, c.Location, elapsed)
	sw := stopwatch.New(c.Store, stopwatch.WithInterval(cfg.Stopwatch.TickInterval))

	return &App{
		screen: screenList,
		list:   NewListModel(ctx, c.Store, builder),
		timer:  NewTimerModel(ctx, sw, cfg.Validation.FieldMaxLength),
		sw:     sw,
	}
}

// List returns the list screen
func (a *App) List() *ListModel {
	return a.list
}

// Timer returns the timer screen
func (a *App) Timer() *TimerModel {
	return a.timer
}

// OnTimer reports whether the timer form is showing
func (a *App) OnTimer() bool {
	return a.screen == screenTimer
}

// Close stops the display ticker. A running session is not saved.
func (a *App) Close() {
	a.sw.Close()
}

func (a *App) Init() tea.Cmd {
	if a.screen == screenTimer {
		return a.timer.Open(nil)
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.list.Update(msg)
		a.timer.Update(msg)
		return a, nil

	case openTimerMsg:
		a.screen = screenTimer
		return a, a.timer.Open(msg.carried)

	case closeTimerMsg:
		a.screen = screenList
		a.list.Refresh()
		logging.Debugf("timer closed, saved=%t", msg.saved)
		return a, tea.ClearScreen
	}

	if a.screen == screenTimer {
		_, cmd := a.timer.Update(msg)
		return a, cmd
	}
	_, cmd := a.list.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.screen == screenTimer {
		return a.timer.View()
	}
	return a.list.View()
}

// Run starts the interactive program and blocks until it exits
func Run(ctx context.Context, c services.ServiceContainer, cfg *config.Config, startOnTimer bool) error {
	app := NewApp(ctx, c, cfg)
	if startOnTimer {
		app.screen = screenTimer
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		name := "list"
		if startOnTimer {
			name = "timer"
		}
		return errors.NewTerminalError(name, err)
	}
	return nil
}
