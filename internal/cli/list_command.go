package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"tempus/internal/domain"
	"tempus/internal/errors"
	"tempus/internal/rows"
	"tempus/internal/services"
)

// DefaultListWidth is used when the output is not a terminal and no width is given
const DefaultListWidth = 80

// OutputWidth returns the width of out when it is a terminal, else DefaultListWidth
func OutputWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultListWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultListWidth
	}
	return width
}

// ListCommand prints the row table once, without the interactive screen
type ListCommand struct {
	container    services.ServiceContainer
	builder      *rows.Builder
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler writing to out
func NewListCommand(app *App, out io.Writer) *ListCommand {
	c := app.Container()
	return &ListCommand{
		container:    c,
		builder:      rows.NewBuilder(app.Config().Display, c.Location, nil),
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints every row at the given width
func (c *ListCommand) Execute(ctx context.Context, width int) error {
	if width <= 0 {
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("width", width, "must be a positive number of columns"))
	}

	c.builder.GroupElapsed = c.groupElapsed(ctx)
	entries := c.container.Store.FetchAll(ctx)
	table := c.builder.Build(services.AggregateIn(entries, c.container.Location))

	if len(table) == 0 {
		_, err := fmt.Fprintln(c.out, "No entries found")
		return err
	}
	for _, row := range table {
		if _, err := fmt.Fprintln(c.out, rows.PlainLine(row, width)); err != nil {
			return err
		}
	}
	return nil
}

func (c *ListCommand) groupElapsed(ctx context.Context) rows.ElapsedFunc {
	return func(template domain.TimeEntry, date time.Time) time.Duration {
		return c.container.Store.ComputeDailyElapsed(ctx, template, date, true)
	}
}
