package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the shopfloor config",
	}
	cmd.AddCommand(configShowCmd(a), configInitCmd(a), configSetCmd(a))
	return cmd
}

func configShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if a.jsonOut {
				return a.printJSON(w, a.cfg)
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "config\t%s\n", a.configPath)
			fmt.Fprintf(tw, "min usable length\t%.0f mm\n", a.cfg.DefaultMinimumUsableLength)
			fmt.Fprintf(tw, "min usable weight\t%.2f kg\n", a.cfg.DefaultMinimumUsableWeight)
			fmt.Fprintf(tw, "operator\t%s\n", a.cfg.DefaultOperator)
			fmt.Fprintf(tw, "company\t%s\n", a.cfg.CompanyName)
			fmt.Fprintf(tw, "log level\t%s\n", a.cfg.LogLevel)
			fmt.Fprintf(tw, "log file\t%s\n", a.cfg.LogFile)
			for _, f := range a.cfg.RecentFiles {
				fmt.Fprintf(tw, "recent\t%s\n", Dim(f))
			}
			return tw.Flush()
		},
	}
}

func configInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileExists(a.configPath) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			}
			if err := project.SaveAppConfig(a.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "config written to %s", a.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func configSetCmd(a *app) *cobra.Command {
	var minLength, minWeight float64
	var operator, company, logLevel, logFile string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change config values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reload without env overrides so they are not persisted.
			cfg, err := project.LoadAppConfig(a.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("min-length") {
				if minLength <= 0 {
					return fmt.Errorf("min-length must be positive")
				}
				cfg.DefaultMinimumUsableLength = minLength
			}
			if flags.Changed("min-weight") {
				if minWeight <= 0 {
					return fmt.Errorf("min-weight must be positive")
				}
				cfg.DefaultMinimumUsableWeight = minWeight
			}
			if flags.Changed("operator") {
				cfg.DefaultOperator = operator
			}
			if flags.Changed("company") {
				cfg.CompanyName = company
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}

			if err := project.SaveAppConfig(a.configPath, cfg); err != nil {
				return err
			}
			a.logger.Info("config updated", "path", a.configPath)
			ok(cmd.OutOrStdout(), "config saved to %s", a.configPath)
			return nil
		},
	}
	cmd.Flags().Float64Var(&minLength, "min-length", 0, "minimum usable remnant length (mm)")
	cmd.Flags().Float64Var(&minWeight, "min-weight", 0, "minimum usable remnant weight (kg)")
	cmd.Flags().StringVar(&operator, "operator", "", "operator recorded on cuts and completions")
	cmd.Flags().StringVar(&company, "company", "", "company name printed on reports")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	cmd.Flags().StringVar(&logFile, "log-file", "", "JSON log file")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
