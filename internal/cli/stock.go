package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

func stockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Inspect and maintain raw-material stock",
	}
	cmd.AddCommand(stockValueCmd(a), stockImportCmd(a))
	return cmd
}

func stockValueCmd(a *app) *cobra.Command {
	var stockPath string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Value remaining stock at purchase cost",
		Long: `Value the remaining stock at its purchase unit cost, split into usable
pieces and wastage. Pieces without a cost are left out of the totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if stockPath == "" {
				stockPath = project.DefaultStockPath()
			}
			pieces, err := a.loadStock(w, stockPath)
			if err != nil {
				return err
			}

			value := model.CalculateInventoryValue(pieces)
			var wastage []model.MaterialPiece
			for _, p := range pieces {
				if p.IsWastage {
					wastage = append(wastage, p)
				}
			}
			scrapValue := model.CalculateWastageValue(wastage)

			if a.jsonOut {
				return a.printJSON(w, map[string]any{
					"value":          value,
					"wastage_pieces": len(wastage),
					"scrap_value":    scrapValue,
				})
			}

			if verbose {
				rows := make([][]string, len(pieces))
				for i, p := range pieces {
					remaining := fmt.Sprintf("%.0f mm", p.CurrentLength)
					drawn := model.CalculateWastagePercentage(p.OriginalLength, p.CurrentLength)
					if !p.TracksLength() && p.TracksWeight() {
						remaining = fmt.Sprintf("%.2f kg", p.CurrentWeight)
						drawn = model.CalculateWastagePercentage(p.OriginalWeight, p.CurrentWeight)
					}
					status := string(p.Status)
					if p.IsWastage {
						status = Red(status + " (wastage)")
					}
					rows[i] = []string{p.ID, p.RawMaterialID, p.Grade, status, remaining, fmt.Sprintf("%.0f%%", drawn)}
				}
				renderTable(w, []string{"Piece", "Material", "Grade", "Status", "Remaining", "Drawn"}, rows)
			}

			fmt.Fprintf(w, "%s %d piece(s), %d wastage\n", Bold("Stock:"), len(pieces), len(wastage))
			fmt.Fprintf(w, "%s %.0f\n", Bold("Available value:"), value.AvailableValue)
			fmt.Fprintf(w, "%s %.0f\n", Bold("Wastage value:"), value.WastageValue)
			fmt.Fprintf(w, "%s %.0f\n", Bold("Total value:"), value.TotalValue)
			return nil
		},
	}
	cmd.Flags().StringVarP(&stockPath, "stock", "s", "", "stock file (default ~/.shopfloor/stock.json)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every piece")
	return cmd
}

func stockImportCmd(a *app) *cobra.Command {
	var from, into string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge pieces from a CSV or Excel sheet into a stock snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if into == "" {
				into = project.DefaultStockPath()
			}
			incoming, err := a.loadStock(w, from)
			if err != nil {
				return err
			}
			existing, err := project.LoadStock(into)
			if err != nil {
				return err
			}

			merged, skipped := project.MergeStock(existing, incoming)
			if err := project.SaveStock(into, merged); err != nil {
				return fmt.Errorf("save stock: %w", err)
			}
			a.rememberFile(into)
			a.logger.Info("stock imported", "from", from, "into", into, "added", len(merged)-len(existing), "skipped", skipped)

			if a.jsonOut {
				return a.printJSON(w, map[string]int{"added": len(merged) - len(existing), "skipped": skipped, "total": len(merged)})
			}
			if skipped > 0 {
				warn(w, "%d piece(s) already in stock were skipped", skipped)
			}
			ok(w, "%d piece(s) added, %d in stock", len(merged)-len(existing), len(merged))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "sheet or JSON snapshot to import")
	cmd.Flags().StringVar(&into, "into", "", "stock snapshot to update (default ~/.shopfloor/stock.json)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
