package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShopFloor/internal/depgraph"
	"github.com/piwi3910/ShopFloor/internal/export"
	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

func jobsCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Analyse job-card dependencies",
		Long: `Analyse a job-card snapshot (JSON, or YAML for .yaml/.yml files).

Dependencies may reference other cards by ID or job card number.
References to cards outside the snapshot are treated as satisfied.`,
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "job card snapshot")
	_ = cmd.MarkPersistentFlagRequired("file")

	cmd.AddCommand(
		jobsCheckCmd(a, &file),
		jobsOrderCmd(a, &file),
		jobsCriticalPathCmd(a, &file),
		jobsCompleteCmd(a, &file),
		jobsCanDeleteCmd(a, &file),
		jobsCycleCmd(a, &file),
		jobsStatusCmd(a, &file),
		jobsRefreshCmd(a, &file),
	)
	return cmd
}

func jobsCheckCmd(a *app, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check <job-card>",
		Short: "Show whether a job card can start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, found := depgraph.ResolveCardRef(args[0], cards); !found {
				warn(w, "job card %s is not in the snapshot", args[0])
			}
			check := depgraph.CheckDependencies(args[0], cards)
			if a.jsonOut {
				return a.printJSON(w, check)
			}

			if check.CanStart {
				ok(w, "%s can start", args[0])
			} else {
				fmt.Fprintf(w, "%s %s cannot start\n", BoldRed("no:"), args[0])
			}
			printCardList(w, "Waiting on", check.BlockedBy)
			printCardList(w, "Blocks", check.Blocks)
			return nil
		},
	}
}

func jobsOrderCmd(a *app, file *string) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Print execution levels",
		Long: `Print the job cards grouped into execution levels. Every card on a level
depends only on cards from earlier levels, so cards on the same level can run
in parallel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			order := depgraph.GetExecutionOrder(cards)
			w := cmd.OutOrStdout()

			if pdfPath != "" {
				cp := depgraph.CalculateCriticalPath(cards)
				if err := export.ExportSchedulePDF(pdfPath, order, cp, export.ReportOptions{CompanyName: a.cfg.CompanyName}); err != nil {
					return fmt.Errorf("export schedule: %w", err)
				}
				a.logger.Info("schedule exported", "path", pdfPath)
			}

			if a.jsonOut {
				return a.printJSON(w, order)
			}
			for i, level := range order.Levels {
				labels := make([]string, len(level))
				for j, c := range level {
					labels[j] = c.Label()
				}
				fmt.Fprintf(w, "%s %s\n", Bold(fmt.Sprintf("Level %d:", i+1)), strings.Join(labels, ", "))
			}
			if !order.Complete() {
				warn(w, "circular dependency: %d of %d card(s) cannot be scheduled", len(order.Unscheduled), len(cards))
				printCardList(w, "Unscheduled", order.Unscheduled)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write a schedule PDF")
	return cmd
}

func jobsCriticalPathCmd(a *app, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "critical-path",
		Short: "Print the longest chain of dependent job cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			cp := depgraph.CalculateCriticalPath(cards)
			w := cmd.OutOrStdout()
			if a.jsonOut {
				return a.printJSON(w, cp)
			}

			labels := make([]string, len(cp.Path))
			for i, c := range cp.Path {
				labels[i] = c.Label()
			}
			fmt.Fprintf(w, "%s %s\n", Bold("Critical path:"), strings.Join(labels, " -> "))
			fmt.Fprintf(w, "%s %.0f min\n", Bold("Total time:"), cp.TotalTime)
			if cp.Cyclic {
				warn(w, "circular dependency detected; the path covers only the acyclic part")
			}
			return nil
		},
	}
}

func jobsCompleteCmd(a *app, file *string) *cobra.Command {
	var out, by string
	cmd := &cobra.Command{
		Use:   "complete <job-card>",
		Short: "Mark a job card completed and unblock its dependents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			ti, found := depgraph.ResolveCardIndex(args[0], cards)
			if !found {
				return fmt.Errorf("job card %s not found", args[0])
			}
			target := cards[ti]

			w := cmd.OutOrStdout()
			at := a.now().UTC()
			if by == "" {
				by = a.settings().Operator
			}

			if target.IsCompleted() {
				warn(w, "%s is already completed", target.Label())
			}
			completed := make([]model.JobCard, len(cards))
			copy(completed, cards)
			completed[ti] = target.Clone()
			completed[ti].Status = model.JobCardCompleted
			completed[ti].UpdatedAt = at
			completed[ti].UpdatedBy = by

			updated := depgraph.UpdateDependentJobCards(args[0], completed, at)

			dest := out
			if dest == "" {
				dest = *file
			}
			if err := project.SaveJobCards(dest, updated); err != nil {
				return fmt.Errorf("save job cards: %w", err)
			}
			a.logger.Info("job card completed", "card", target.Label(), "by", by, "path", dest)

			var unblocked []model.JobCard
			for i, c := range updated {
				if cards[i].Status == model.JobCardBlocked && c.Status == model.JobCardReady {
					unblocked = append(unblocked, c)
				}
			}
			if a.jsonOut {
				return a.printJSON(w, map[string]any{"completed": target.Label(), "unblocked": unblocked})
			}
			ok(w, "%s completed", target.Label())
			printCardList(w, "Now ready", unblocked)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the updated snapshot here instead of in place")
	cmd.Flags().StringVar(&by, "by", "", "user recorded on the completed card")
	return cmd
}

func jobsCanDeleteCmd(a *app, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "can-delete <job-card>",
		Short: "Check whether a job card can be deleted",
		Long:  "Check whether a job card can be deleted. Exits non-zero when other cards depend on it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			check := depgraph.CanDeleteJobCard(args[0], cards)
			w := cmd.OutOrStdout()
			if a.jsonOut {
				if err := a.printJSON(w, check); err != nil {
					return err
				}
			} else if check.CanDelete {
				ok(w, "%s can be deleted", args[0])
			} else {
				fail(w, "%s", check.Reason)
				printCardList(w, "Dependents", check.DependentCards)
			}
			if !check.CanDelete {
				return fmt.Errorf("%w: %s", ErrBlocked, check.Reason)
			}
			return nil
		},
	}
}

func jobsCycleCmd(a *app, file *string) *cobra.Command {
	var dependsOn []string
	cmd := &cobra.Command{
		Use:   "cycle <job-card>",
		Short: "Check whether a proposed dependency list would create a cycle",
		Long: `Check whether giving a job card the dependency list passed with --depends-on
would create a circular dependency. The proposed list replaces the card's
current dependencies. Exits non-zero when the edit must be rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			cyclic := depgraph.DetectCircularDependency(args[0], dependsOn, cards)
			w := cmd.OutOrStdout()
			if a.jsonOut {
				if err := a.printJSON(w, map[string]bool{"circular": cyclic}); err != nil {
					return err
				}
			} else if cyclic {
				fail(w, "making %s depend on %s creates a circular dependency", args[0], strings.Join(dependsOn, ", "))
			} else {
				ok(w, "no circular dependency")
			}
			if cyclic {
				return fmt.Errorf("%w: circular dependency", ErrBlocked)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&dependsOn, "depends-on", nil, "proposed dependencies (IDs or job card numbers)")
	return cmd
}

func jobsStatusCmd(a *app, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarise progress of the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			s := depgraph.Summarize(cards)
			w := cmd.OutOrStdout()
			if a.jsonOut {
				return a.printJSON(w, s)
			}

			fmt.Fprintf(w, "%s %d card(s), %.0f%% complete\n", Bold("Progress:"), s.Total, s.CompletionPercent)
			fmt.Fprintf(w, "%s %.0f of %.0f min remaining\n", Bold("Time:"), s.RemainingEstimatedMin, s.TotalEstimatedMin)
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, status := range model.JobCardStatuses {
				if n := s.ByStatus[status]; n > 0 {
					fmt.Fprintf(tw, "  %s\t%d\n", StatusText(status), n)
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(s.Startable) > 0 {
				fmt.Fprintf(w, "%s %s\n", Bold("Can start now:"), strings.Join(s.Startable, ", "))
			}
			return nil
		},
	}
}

func jobsRefreshCmd(a *app, file *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute blocked-by sets and Blocked/Ready statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.loadCards(*file)
			if err != nil {
				return err
			}
			refreshed := depgraph.RefreshBlockedBy(cards, a.now().UTC())

			changed := 0
			for i := range cards {
				if cards[i].Status != refreshed[i].Status || !slices.Equal(cards[i].BlockedBy, refreshed[i].BlockedBy) {
					changed++
				}
			}

			dest := out
			if dest == "" {
				dest = *file
			}
			if err := project.SaveJobCards(dest, refreshed); err != nil {
				return fmt.Errorf("save job cards: %w", err)
			}
			a.logger.Info("job cards refreshed", "changed", changed, "path", dest)

			w := cmd.OutOrStdout()
			if a.jsonOut {
				return a.printJSON(w, refreshed)
			}
			ok(w, "%d card(s) updated", changed)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the updated snapshot here instead of in place")
	return cmd
}

// printCardList prints a titled, indented list of cards; empty lists print nothing.
func printCardList(w io.Writer, title string, cards []model.JobCard) {
	if len(cards) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\n", Bold(title+":"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range cards {
		fmt.Fprintf(tw, "  %s\t%s\t%.0f min\t%s\n", c.Label(), StatusText(c.Status), c.EstimatedTotalTimeMin, Dim(c.ProcessName))
	}
	_ = tw.Flush()
}
