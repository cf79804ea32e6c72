package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShopFloor/internal/engine"
	"github.com/piwi3910/ShopFloor/internal/export"
	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

// cutInputs are the flags shared by the cut subcommands.
type cutInputs struct {
	stockPath string
	reqPath   string
	minUsable float64
}

func (in *cutInputs) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.stockPath, "stock", "s", "", "stock file (JSON snapshot, CSV or Excel)")
	cmd.Flags().StringVarP(&in.reqPath, "requirements", "r", "", "cutting requirements (CSV or Excel)")
	cmd.Flags().Float64Var(&in.minUsable, "min-usable", 0, "minimum usable remnant length in mm (default from config)")
	_ = cmd.MarkFlagRequired("stock")
	_ = cmd.MarkFlagRequired("requirements")
}

func (in *cutInputs) load(a *app, w io.Writer) ([]model.MaterialPiece, []model.CuttingRequirement, model.CutSettings, error) {
	settings := a.settings()
	if in.minUsable > 0 {
		settings.MinimumUsableLength = in.minUsable
	}
	pieces, err := a.loadStock(w, in.stockPath)
	if err != nil {
		return nil, nil, settings, err
	}
	reqs, err := a.loadRequirements(w, in.reqPath)
	if err != nil {
		return nil, nil, settings, err
	}
	return pieces, reqs, settings, nil
}

func cutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cut",
		Short: "Plan raw-material cuts",
	}
	cmd.AddCommand(cutPlanCmd(a), cutCompareCmd(a))
	return cmd
}

func cutPlanCmd(a *app) *cobra.Command {
	var in cutInputs
	var pdfPath, labelsPath, xlsxPath, applyPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Assign cuts to stock pieces with minimum scrap",
		Long: `Assign every requested cut to an available stock piece. Cuts are placed
longest first; each goes to the piece that leaves no scrap, or the least scrap,
preferring remnants long enough to stay in stock.

With --apply the cuts are committed: lengths are reduced, usage is recorded,
and the updated stock is written to the given JSON file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			pieces, reqs, settings, err := in.load(a, w)
			if err != nil {
				return err
			}

			opt := engine.New(settings)
			plan := opt.Plan(pieces, reqs)
			a.logger.Info("plan calculated",
				"pieces", len(pieces),
				"cuts", plan.RequestedCuts(),
				"placed", plan.PlacedCuts(),
				"efficiency", plan.Efficiency)

			opts := export.ReportOptions{CompanyName: a.cfg.CompanyName}
			if pdfPath != "" {
				if err := export.ExportPlanPDF(pdfPath, plan, opts); err != nil {
					return fmt.Errorf("export plan: %w", err)
				}
				a.logger.Info("plan exported", "path", pdfPath)
			}
			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, plan); err != nil {
					return fmt.Errorf("export labels: %w", err)
				}
				a.logger.Info("labels exported", "path", labelsPath)
			}
			if xlsxPath != "" {
				if err := export.ExportPlanXLSX(xlsxPath, plan); err != nil {
					return fmt.Errorf("export workbook: %w", err)
				}
				a.logger.Info("workbook exported", "path", xlsxPath)
			}
			if applyPath != "" {
				updated := opt.Apply(pieces, plan, a.now().UTC())
				if err := project.SaveStock(applyPath, updated); err != nil {
					return fmt.Errorf("save stock: %w", err)
				}
				a.rememberFile(applyPath)
				a.logger.Info("plan applied", "path", applyPath, "pieces", len(plan.Entries))
			}

			if a.jsonOut {
				return a.printJSON(w, plan)
			}
			printPlan(w, plan)
			if !plan.Complete() {
				warnShortage(w, plan)
			}
			if applyPath != "" {
				ok(w, "updated stock written to %s", applyPath)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a cutting diagram PDF")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "write a PDF sheet of QR cut labels")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the plan to an Excel workbook")
	cmd.Flags().StringVar(&applyPath, "apply", "", "commit the plan and write the updated stock JSON here")
	return cmd
}

func cutCompareCmd(a *app) *cobra.Command {
	var in cutInputs
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare plans under alternative remnant thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			pieces, reqs, settings, err := in.load(a, w)
			if err != nil {
				return err
			}

			results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), pieces, reqs)
			if a.jsonOut {
				type row struct {
					Scenario      string  `json:"scenario"`
					MinUsable     float64 `json:"minimum_usable_length"`
					PiecesUsed    int     `json:"pieces_used"`
					TotalCuts     int     `json:"total_cuts"`
					WastePercent  float64 `json:"waste_percent"`
					UnplacedCount int     `json:"unplaced"`
				}
				rows := make([]row, len(results))
				for i, r := range results {
					rows[i] = row{r.Scenario.Name, r.Scenario.Settings.MinimumUsableLength, r.PiecesUsed, r.TotalCuts, r.WastePercent, r.UnplacedCount}
				}
				return a.printJSON(w, rows)
			}

			rows := make([][]string, len(results))
			for i, r := range results {
				rows[i] = []string{
					r.Scenario.Name,
					fmt.Sprintf("%d", r.PiecesUsed),
					fmt.Sprintf("%d", r.TotalCuts),
					fmt.Sprintf("%.1f%%", r.WastePercent),
					fmt.Sprintf("%d", r.UnplacedCount),
				}
			}
			renderTable(w, []string{"Scenario", "Pieces", "Cuts", "Waste", "Unplaced"}, rows)
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

// printPlan writes one row per used piece followed by plan totals.
func printPlan(w io.Writer, plan engine.CuttingPlan) {
	rows := make([][]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		cuts := make([]string, len(e.Cuts))
		for i, c := range e.Cuts {
			cuts[i] = fmt.Sprintf("%.0f", c.Length)
		}
		remnant := fmt.Sprintf("%.0f", e.RemainingLength)
		if e.IsWastage {
			remnant = Red(remnant + " scrap")
		}
		rows = append(rows, []string{
			e.Piece.ID,
			strings.TrimSpace(e.Piece.RawMaterialID + " " + e.Piece.Grade),
			fmt.Sprintf("%.0f", e.StartLength()),
			strings.Join(cuts, " + "),
			remnant,
		})
	}
	if len(rows) > 0 {
		renderTable(w, []string{"Piece", "Material", "Start", "Cuts", "Remnant"}, rows)
	}

	fmt.Fprintf(w, "%s %d of %d cut(s) on %d piece(s)\n", Bold("Placed:"), plan.PlacedCuts(), plan.RequestedCuts(), len(plan.Entries))
	fmt.Fprintf(w, "%s %.0f mm consumed, %.0f mm scrap, %.1f%% efficiency\n", Bold("Material:"), plan.TotalConsumed, plan.TotalWastage, plan.Efficiency)
}

func warnShortage(w io.Writer, plan engine.CuttingPlan) {
	short := plan.ShortageByOrder()
	orders := make([]string, 0, len(short))
	for o := range short {
		orders = append(orders, o)
	}
	sort.Strings(orders)

	warn(w, "stock shortage: %d cut(s) could not be placed", len(plan.Unplaced))
	for _, o := range orders {
		label := o
		if label == "" {
			label = "(no order)"
		}
		fmt.Fprintf(w, "  %s\t%.0f mm\n", label, short[o])
	}
}

// rememberFile records path in the recent files list of the config on disk.
// Failures only reach the log.
func (a *app) rememberFile(path string) {
	cfg, err := project.LoadAppConfig(a.configPath)
	if err == nil {
		cfg = project.AddRecentFile(cfg, path)
		err = project.SaveAppConfig(a.configPath, cfg)
	}
	if err != nil {
		a.logger.Warn("could not update recent files", "error", err)
		return
	}
	a.cfg.RecentFiles = cfg.RecentFiles
}
