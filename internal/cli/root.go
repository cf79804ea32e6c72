// Package cli provides the command-line interface for shopfloor.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShopFloor/internal/logging"
	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

// Version is set at build time.
var Version = "0.1.0"

// ErrBlocked is returned when a guard refuses an edit, so the process exits non-zero.
var ErrBlocked = errors.New("operation blocked")

// app carries state shared by all commands of one invocation.
type app struct {
	configPath string
	jsonOut    bool

	cfg     model.AppConfig
	logger  *slog.Logger
	cleanup func() error
	now     func() time.Time
}

// settings returns cut settings from the config defaults.
func (a *app) settings() model.CutSettings {
	s := model.DefaultSettings()
	a.cfg.ApplyToSettings(&s)
	return s
}

// printJSON writes v as indented JSON.
func (a *app) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{now: time.Now, cleanup: func() error { return nil }, logger: slog.Default()}

	rootCmd := &cobra.Command{
		Use:   "shopfloor",
		Short: "Job-card scheduling and raw-material cutting for the shop floor",
		Long: `ShopFloor analyses job-card dependency snapshots (readiness, execution
levels, critical path, cycle and delete guards) and plans raw-material cuts
that keep scrap to a minimum.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(a.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = project.ApplyEnv(cfg)
			a.logger, a.cleanup = logging.SetupLogger(a.cfg.LogFile, logging.ParseLevel(a.cfg.LogLevel))
			a.logger.Debug("config loaded", "path", a.configPath, "log_level", a.cfg.LogLevel)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.cleanup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", project.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "machine-readable JSON output")

	rootCmd.AddCommand(jobsCmd(a))
	rootCmd.AddCommand(cutCmd(a))
	rootCmd.AddCommand(stockCmd(a))
	rootCmd.AddCommand(backupCmd(a))
	rootCmd.AddCommand(configCmd(a))

	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
