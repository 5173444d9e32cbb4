package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/smart-attendance/internal/app"
	"github.com/cmlabs-hris/smart-attendance/internal/config"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbPath  string
	noColor bool
	verbose bool

	// clk overrides the wall clock; nil means the system clock.
	clk clock.Clock
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	clockInColor  = color.New(color.FgBlue, color.Bold)
	clockOutColor = color.New(color.FgGreen, color.Bold)
	warnColor     = color.New(color.FgYellow)
	badColor      = color.New(color.FgRed, color.Bold)
)

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "attendance",
		Short: "Smart Attendance - staff clock-in/clock-out log",
		Long: `Smart Attendance records when staff clock in and out of the single daily shift,
and derives how many minutes they were late and how much overtime they worked.

Records are kept in a local SQLite file (DB_PATH, default smart_attendance.db).
The shift is configured with SHIFT_START_TIME and STANDARD_SHIFT_MINUTES.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "attendance database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newClockInCommand())
	rootCmd.AddCommand(newClockOutCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newShiftCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}

// loadConfig reads the environment and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if verbose {
		cfg.App.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openApp opens the store for a one-shot command. Logs go to stderr as text.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return app.New(cmd.Context(), cfg, logger, clk)
}

// PrintError writes err in the CLI's error color.
func PrintError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	badColor.Fprintln(w, "Error:", describeError(err))
}
