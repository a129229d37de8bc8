package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tempus/internal/config"
	"tempus/internal/tui"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	ownApp bool
}

// NewRootCommand creates the root cobra command. The configuration is loaded
// and the database opened once the flags have been parsed.
func NewRootCommand() *RootCommand {
	return newRootCommand(nil)
}

// NewRootCommandWithApp creates the root command over an already configured App
func NewRootCommandWithApp(app *App) *RootCommand {
	return newRootCommand(app)
}

func newRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "tempus",
		Short: "A terminal work timer",
		Long: `tempus records timed work sessions and shows them grouped by day and by
project/task, with daily totals.

SCREENS:
  List    ↑/↓ or j/k move, ←/→ or h/l move the cursor across a row,
          ctrl+n/ctrl+p jump between groups, n starts a new timer,
          space/enter resumes the selected entry, esc quits.
  Timer   tab/shift+tab move between fields, ctrl+s starts or stops,
          esc stops the running session, saves it and returns to the list.

EXAMPLES:
  tempus                                   # Open the list
  tempus timer                             # Open the timer form directly
  tempus list --width 100                  # Print the list once

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is YAML, read from ~/.tempus/config.yaml or $TEMPUS_CONFIG.

  Database Configuration:
    TEMPUS_DB_DIR                          Database directory (default: ~/.tempus)
    TEMPUS_DB_FILENAME                     Database filename (default: tempus.db)
    TEMPUS_DB_QUERY_TIMEOUT                Query timeout (default: 10s)
    TEMPUS_DB_WRITE_TIMEOUT                Write timeout (default: 5s)

  Display Configuration:
    TEMPUS_DISPLAY_DAY_FORMAT              Day label layout (default: Mon, Jan 2)
    TEMPUS_DISPLAY_CLOCK_FORMAT            Clock layout (default: 15:04)
    TEMPUS_DISPLAY_DESCRIPTION_COLUMN      Description column (default: 2)

  Stopwatch Configuration:
    TEMPUS_STOPWATCH_TICK                  Elapsed refresh interval (default: 1s)
    TEMPUS_CACHE_ELAPSED                   Cache group totals (default: false)

  Logging Configuration:
    TEMPUS_LOG_FILE                        Log file (default: ~/.tempus/tempus.log)
    TEMPUS_LOG_LEVEL                       debug, info, warn or error (default: info)
    TEMPUS_DEBUG                           Force debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runScreen(cmd.Context(), false)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and closes what setup opened
func (r *RootCommand) Execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if closeErr := r.teardown(); err == nil {
		err = closeErr
	}
	return err
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TEMPUS_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TEMPUS_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TEMPUS_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TEMPUS_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TEMPUS_DB_WRITE_TIMEOUT)")

	// Display configuration
	flags.String("day-format", "", "Day label layout (overrides TEMPUS_DISPLAY_DAY_FORMAT)")
	flags.String("clock-format", "", "Clock layout (overrides TEMPUS_DISPLAY_CLOCK_FORMAT)")

	// Stopwatch configuration
	flags.Duration("tick-interval", 0, "Elapsed refresh interval (overrides TEMPUS_STOPWATCH_TICK)")
	flags.Bool("cache-elapsed", false, "Cache group totals (overrides TEMPUS_CACHE_ELAPSED)")

	// Logging configuration
	flags.String("log-file", "", "Log file (overrides TEMPUS_LOG_FILE)")
	flags.String("log-level", "", "Log level (overrides TEMPUS_LOG_LEVEL)")
	flags.Bool("verbose", false, "Log at debug level (overrides TEMPUS_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Open the timer form",
		Long:  "Open the stopwatch form directly. Leaving it with esc shows the list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runScreen(cmd.Context(), true)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the entry list once",
		Long: `Print every day, group and entry row once, as the list screen lays them out.

Examples:
  tempus list                # Print at the terminal width, or 80 columns
  tempus list --width 120    # Print at 120 columns`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetInt("width")
			if !cmd.Flags().Changed("width") {
				width = OutputWidth(cmd.OutOrStdout())
			}
			return NewListCommand(r.app, cmd.OutOrStdout()).Execute(cmd.Context(), width)
		},
	}
	listCmd.Flags().Int("width", DefaultListWidth, "Output width in columns")

	r.cmd.AddCommand(timerCmd, listCmd)
}

func (r *RootCommand) runScreen(ctx context.Context, startOnTimer bool) error {
	err := tui.Run(ctx, r.app.Container(), r.app.Config(), startOnTimer)
	return NewErrorHandler().Handle("run tempus", err)
}

// setup loads the configuration and opens the database unless an App was injected
func (r *RootCommand) setup() error {
	if r.app != nil {
		return nil
	}

	loader := config.NewLoader()
	if path, _ := r.cmd.PersistentFlags().GetString("config"); path != "" {
		loader = loader.WithFile(path)
	}
	cfg, err := loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, err := NewApp(cfg)
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}
	r.app = app
	r.ownApp = true
	return nil
}

func (r *RootCommand) teardown() error {
	if !r.ownApp || r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	r.ownApp = false
	return err
}

// getOverridesFromFlags collects the flags that were set on the command line
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}

	if flags.Changed("day-format") {
		v, _ := flags.GetString("day-format")
		overrides.DayFormat = &v
	}
	if flags.Changed("clock-format") {
		v, _ := flags.GetString("clock-format")
		overrides.ClockFormat = &v
	}

	if flags.Changed("tick-interval") {
		v, _ := flags.GetDuration("tick-interval")
		overrides.TickInterval = &v
	}
	if flags.Changed("cache-elapsed") {
		v, _ := flags.GetBool("cache-elapsed")
		overrides.CacheElapsed = &v
	}

	if flags.Changed("log-file") {
		v, _ := flags.GetString("log-file")
		overrides.LogFile = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
