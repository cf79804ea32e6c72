package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

func backupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config, stock and job cards in one file",
	}
	cmd.AddCommand(backupExportCmd(a), backupRestoreCmd(a))
	return cmd
}

func backupExportCmd(a *app) *cobra.Command {
	var stockPath, cardsPath string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stockPath == "" {
				stockPath = project.DefaultStockPath()
			}
			stock, err := project.LoadStock(stockPath)
			if err != nil {
				return err
			}
			var cards []model.JobCard
			if cardsPath != "" {
				if cards, err = a.loadCards(cardsPath); err != nil {
					return err
				}
			}

			// The file config, not the env-adjusted one, goes into the backup.
			cfg, err := project.LoadAppConfig(a.configPath)
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], cfg, stock, cards); err != nil {
				return err
			}
			a.logger.Info("backup written", "path", args[0], "pieces", len(stock), "cards", len(cards))
			ok(cmd.OutOrStdout(), "backup written to %s (%d piece(s), %d job card(s))", args[0], len(stock), len(cards))
			return nil
		},
	}
	cmd.Flags().StringVarP(&stockPath, "stock", "s", "", "stock snapshot (default ~/.shopfloor/stock.json)")
	cmd.Flags().StringVarP(&cardsPath, "jobs", "f", "", "job card snapshot to include")
	return cmd
}

func backupRestoreCmd(a *app) *cobra.Command {
	var stockPath, cardsPath string
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore config and stock from a backup file",
		Long: `Restore the config and stock snapshot from a backup file. Job cards are
written only when --jobs names a destination.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if backup.Version != project.BackupVersion {
				warn(cmd.OutOrStdout(), "backup version %s differs from %s", backup.Version, project.BackupVersion)
			}

			if err := project.SaveAppConfig(a.configPath, backup.Config); err != nil {
				return fmt.Errorf("restore config: %w", err)
			}
			a.cfg = backup.Config

			if stockPath == "" {
				stockPath = project.DefaultStockPath()
			}
			if err := project.SaveStock(stockPath, backup.Stock); err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
			if cardsPath != "" {
				if err := project.SaveJobCards(cardsPath, backup.JobCards); err != nil {
					return fmt.Errorf("restore job cards: %w", err)
				}
			}

			a.logger.Info("backup restored", "path", args[0], "created_at", backup.CreatedAt)
			ok(cmd.OutOrStdout(), "restored %d piece(s) and %d job card(s) from %s", len(backup.Stock), len(backup.JobCards), backup.CreatedAt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&stockPath, "stock", "s", "", "stock snapshot to write (default ~/.shopfloor/stock.json)")
	cmd.Flags().StringVarP(&cardsPath, "jobs", "f", "", "write job cards to this file")
	return cmd
}
