package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// Sprint color functions for building styled strings.
var (
	Bold       = color.New(color.Bold).SprintFunc()
	Dim        = color.New(color.Faint).SprintFunc()
	Green      = color.New(color.FgGreen).SprintFunc()
	Red        = color.New(color.FgRed).SprintFunc()
	Yellow     = color.New(color.FgYellow).SprintFunc()
	Cyan       = color.New(color.FgCyan).SprintFunc()
	BoldRed    = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldGreen  = color.New(color.Bold, color.FgGreen).SprintFunc()
)

// StatusText returns a colored job-card status.
func StatusText(s model.JobCardStatus) string {
	switch s {
	case model.JobCardCompleted:
		return Green(string(s))
	case model.JobCardInProgress:
		return Cyan(string(s))
	case model.JobCardBlocked, model.JobCardPendingMaterial:
		return Red(string(s))
	case model.JobCardPaused:
		return Yellow(string(s))
	default:
		return string(s)
	}
}

// warn prints a highlighted warning line.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", BoldYellow("warning:"), fmt.Sprintf(format, args...))
}

// fail prints a highlighted refusal line.
func fail(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", BoldRed("blocked:"), fmt.Sprintf(format, args...))
}

// ok prints a highlighted success line.
func ok(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", BoldGreen("ok:"), fmt.Sprintf(format, args...))
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderTable writes a bordered table with a bold header row.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}
