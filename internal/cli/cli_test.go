package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShopFloor/internal/depgraph"
	"github.com/piwi3910/ShopFloor/internal/engine"
	"github.com/piwi3910/ShopFloor/internal/model"
	"github.com/piwi3910/ShopFloor/internal/project"
)

const jobsYAML = `job_cards:
  - id: a
    job_card_no: JC-1
    process_name: Saw
    status: InProgress
    estimated_total_time_min: 30
  - id: b
    job_card_no: JC-2
    process_name: Turn
    status: Blocked
    depends_on_job_card_ids: [a]
    blocked_by: [a]
    estimated_total_time_min: 60
  - id: c
    job_card_no: JC-3
    process_name: Mill
    status: Pending
    depends_on_job_card_ids: [JC-2]
    estimated_total_time_min: 45
  - id: d
    job_card_no: JC-4
    process_name: Deburr
    status: Completed
    estimated_total_time_min: 10
`

// Cards keyed only by job card number.
const jobsNoIDsYAML = `job_cards:
  - job_card_no: A
    process_name: Saw
    status: InProgress
    estimated_total_time_min: 30
  - job_card_no: B
    process_name: Turn
    status: Blocked
    depends_on_job_card_ids: [A]
    blocked_by: [A]
    estimated_total_time_min: 60
  - job_card_no: C
    process_name: Mill
    status: Pending
    estimated_total_time_min: 45
`

const stockCSV = `id,raw material,grade,shape,length,cost
P1,RM-1,EN8,Rod,1000,100
P4,RM-1,EN8,Rod,900,90
`

const requirementsCSV = `order,length,qty
SO-1,750,1
SO-2,600,1
`

// runCLI executes the command tree with an isolated config and returns stdout.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.json")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func setup(t *testing.T) string {
	t.Helper()
	color.NoColor = true
	t.Setenv(project.EnvLogLevel, "error")
	t.Setenv(project.EnvLogFile, "")
	return t.TempDir()
}

func TestJobsCheck(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	out, err := runCLI(t, dir, "--json", "jobs", "check", "JC-2", "-f", jobs)
	require.NoError(t, err)

	var check depgraph.DependencyCheck
	require.NoError(t, json.Unmarshal([]byte(out), &check))
	assert.False(t, check.CanStart)
	require.Len(t, check.BlockedBy, 1)
	assert.Equal(t, "a", check.BlockedBy[0].ID)
	require.Len(t, check.Blocks, 1)
	assert.Equal(t, "c", check.Blocks[0].ID)
}

func TestJobsCheck_Text(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	out, err := runCLI(t, dir, "jobs", "check", "JC-2", "-f", jobs)
	require.NoError(t, err)
	assert.Contains(t, out, "JC-2 cannot start")
	assert.Contains(t, out, "Waiting on:")
	assert.Contains(t, out, "JC-1")
}

func TestJobsOrder(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	out, err := runCLI(t, dir, "--json", "jobs", "order", "-f", jobs)
	require.NoError(t, err)

	var order depgraph.ExecutionOrder
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	require.Len(t, order.Levels, 3)
	assert.Len(t, order.Levels[0], 2)
	assert.Equal(t, "b", order.Levels[1][0].ID)
	assert.Equal(t, "c", order.Levels[2][0].ID)
	assert.Empty(t, order.Unscheduled)
}

func TestJobsOrder_WritesSchedulePDF(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	pdf := filepath.Join(dir, "schedule.pdf")

	_, err := runCLI(t, dir, "jobs", "order", "-f", jobs, "--pdf", pdf)
	require.NoError(t, err)

	info, err := os.Stat(pdf)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestJobsCriticalPath(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	out, err := runCLI(t, dir, "jobs", "critical-path", "-f", jobs)
	require.NoError(t, err)
	assert.Contains(t, out, "JC-1 -> JC-2 -> JC-3")
	assert.Contains(t, out, "135 min")
}

func TestJobsComplete_UnblocksDependents(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	updated := filepath.Join(dir, "updated.json")

	out, err := runCLI(t, dir, "jobs", "complete", "JC-1", "-f", jobs, "-o", updated, "--by", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "JC-1 completed")
	assert.Contains(t, out, "Now ready:")

	cards, err := project.LoadJobCards(updated)
	require.NoError(t, err)
	require.Len(t, cards, 4)
	assert.Equal(t, model.JobCardCompleted, cards[0].Status)
	assert.Equal(t, "alice", cards[0].UpdatedBy)
	assert.False(t, cards[0].UpdatedAt.IsZero())
	assert.Equal(t, model.JobCardReady, cards[1].Status)
	assert.Empty(t, cards[1].BlockedBy)
	assert.Equal(t, model.SystemUser, cards[1].UpdatedBy)
	assert.Equal(t, model.JobCardPending, cards[2].Status)

	// The source snapshot is left alone when -o is given.
	original, err := project.LoadJobCards(jobs)
	require.NoError(t, err)
	assert.Equal(t, model.JobCardInProgress, original[0].Status)
}

func TestJobsComplete_CardsWithoutIDs(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsNoIDsYAML)
	updated := filepath.Join(dir, "updated.yaml")

	out, err := runCLI(t, dir, "jobs", "complete", "A", "-f", jobs, "-o", updated)
	require.NoError(t, err)
	assert.Contains(t, out, "A completed")

	cards, err := project.LoadJobCards(updated)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, model.JobCardCompleted, cards[0].Status)
	assert.Equal(t, model.JobCardReady, cards[1].Status)
	assert.Empty(t, cards[1].BlockedBy)
	assert.Equal(t, model.JobCardPending, cards[2].Status)
}

func TestJobsOrder_SchedulePDFWithoutIDs(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsNoIDsYAML)
	pdf := filepath.Join(dir, "schedule.pdf")

	_, err := runCLI(t, dir, "jobs", "order", "-f", jobs, "--pdf", pdf)
	require.NoError(t, err)
	info, err := os.Stat(pdf)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestJobsComplete_UnknownCard(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	_, err := runCLI(t, dir, "jobs", "complete", "nope", "-f", jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestJobsCanDelete(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	out, err := runCLI(t, dir, "jobs", "can-delete", "JC-3", "-f", jobs)
	require.NoError(t, err)
	assert.Contains(t, out, "can be deleted")

	out, err = runCLI(t, dir, "jobs", "can-delete", "JC-1", "-f", jobs)
	require.ErrorIs(t, err, ErrBlocked)
	assert.Contains(t, out, "JC-2")
}

func TestJobsCycle(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	_, err := runCLI(t, dir, "jobs", "cycle", "JC-1", "-f", jobs, "--depends-on", "JC-3")
	require.ErrorIs(t, err, ErrBlocked)

	out, err := runCLI(t, dir, "jobs", "cycle", "JC-1", "-f", jobs, "--depends-on", "JC-4")
	require.NoError(t, err)
	assert.Contains(t, out, "no circular dependency")
}

func TestJobsStatus(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	out, err := runCLI(t, dir, "--json", "jobs", "status", "-f", jobs)
	require.NoError(t, err)

	var s depgraph.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.ByStatus[model.JobCardCompleted])
	assert.InDelta(t, 25.0, s.CompletionPercent, 1e-9)
	assert.InDelta(t, 145.0, s.TotalEstimatedMin, 1e-9)
}

func TestJobsRefresh(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)

	out, err := runCLI(t, dir, "jobs", "refresh", "-f", jobs)
	require.NoError(t, err)
	assert.Contains(t, out, "1 card(s) updated")

	cards, err := project.LoadJobCards(jobs)
	require.NoError(t, err)
	assert.Equal(t, model.JobCardBlocked, cards[2].Status)
	assert.Equal(t, []string{"JC-2"}, cards[2].BlockedBy)
}

func TestJobs_MissingFile(t *testing.T) {
	dir := setup(t)
	_, err := runCLI(t, dir, "jobs", "status", "-f", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestCutPlan(t *testing.T) {
	dir := setup(t)
	stock := writeFile(t, dir, "stock.csv", stockCSV)
	reqs := writeFile(t, dir, "reqs.csv", requirementsCSV)

	out, err := runCLI(t, dir, "--json", "cut", "plan", "-s", stock, "-r", reqs)
	require.NoError(t, err)

	var plan engine.CuttingPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "P4", plan.Entries[0].Piece.ID)
	assert.Equal(t, 150.0, plan.Entries[0].RemainingLength)
	assert.True(t, plan.Entries[0].IsWastage)
	assert.Equal(t, "P1", plan.Entries[1].Piece.ID)
	assert.Equal(t, 400.0, plan.Entries[1].RemainingLength)
	assert.InDelta(t, 90.0, plan.Efficiency, 1e-9)
	assert.True(t, plan.Complete())
}

func TestCutPlan_ApplyAndValue(t *testing.T) {
	dir := setup(t)
	stock := writeFile(t, dir, "stock.csv", stockCSV)
	reqs := writeFile(t, dir, "reqs.csv", requirementsCSV)
	applied := filepath.Join(dir, "stock.json")

	out, err := runCLI(t, dir, "cut", "plan", "-s", stock, "-r", reqs, "--apply", applied)
	require.NoError(t, err)
	assert.Contains(t, out, "updated stock written")

	pieces, err := project.LoadStock(applied)
	require.NoError(t, err)
	require.Len(t, pieces, 2)
	assert.Equal(t, 400.0, pieces[0].CurrentLength)
	assert.Equal(t, model.PieceAvailable, pieces[0].Status)
	assert.Equal(t, model.PieceScrap, pieces[1].Status)
	assert.True(t, pieces[1].IsWastage)

	cfg, err := project.LoadAppConfig(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{applied}, cfg.RecentFiles)

	out, err = runCLI(t, dir, "--json", "stock", "value", "-s", applied)
	require.NoError(t, err)
	var result struct {
		Value      model.InventoryValue `json:"value"`
		Wastage    int                  `json:"wastage_pieces"`
		ScrapValue float64              `json:"scrap_value"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 40.0, result.Value.AvailableValue)
	assert.Equal(t, 15.0, result.Value.WastageValue)
	assert.Equal(t, 1, result.Wastage)
	assert.InDelta(t, 15.0, result.ScrapValue, 1e-9)
}

func TestCutPlan_Shortage(t *testing.T) {
	dir := setup(t)
	stock := writeFile(t, dir, "stock.csv", stockCSV)
	reqs := writeFile(t, dir, "reqs.csv", "order,length,qty\nSO-9,1200,2\n")

	out, err := runCLI(t, dir, "cut", "plan", "-s", stock, "-r", reqs)
	require.NoError(t, err)
	assert.Contains(t, out, "stock shortage: 2 cut(s)")
	assert.Contains(t, out, "SO-9")
}

func TestCutPlan_Exports(t *testing.T) {
	dir := setup(t)
	stock := writeFile(t, dir, "stock.csv", stockCSV)
	reqs := writeFile(t, dir, "reqs.csv", requirementsCSV)
	pdf := filepath.Join(dir, "plan.pdf")
	labels := filepath.Join(dir, "labels.pdf")
	xlsx := filepath.Join(dir, "plan.xlsx")

	_, err := runCLI(t, dir, "cut", "plan", "-s", stock, "-r", reqs, "--pdf", pdf, "--labels", labels, "--xlsx", xlsx)
	require.NoError(t, err)
	for _, p := range []string{pdf, labels, xlsx} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Greater(t, info.Size(), int64(0), p)
	}
}

func TestCutCompare(t *testing.T) {
	dir := setup(t)
	stock := writeFile(t, dir, "stock.csv", stockCSV)
	reqs := writeFile(t, dir, "reqs.csv", requirementsCSV)

	out, err := runCLI(t, dir, "cut", "compare", "-s", stock, "-r", reqs)
	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "Min remnant 150mm (half)")
	assert.Contains(t, out, "Min remnant 600mm (double)")
}

func TestStockImport(t *testing.T) {
	dir := setup(t)
	sheet := writeFile(t, dir, "stock.csv", stockCSV)
	into := filepath.Join(dir, "stock.json")

	out, err := runCLI(t, dir, "stock", "import", "--from", sheet, "--into", into)
	require.NoError(t, err)
	assert.Contains(t, out, "2 piece(s) added")

	out, err = runCLI(t, dir, "stock", "import", "--from", sheet, "--into", into)
	require.NoError(t, err)
	assert.Contains(t, out, "2 piece(s) already in stock were skipped")

	pieces, err := project.LoadStock(into)
	require.NoError(t, err)
	assert.Len(t, pieces, 2)
}

func TestConfigSetAndShow(t *testing.T) {
	dir := setup(t)

	_, err := runCLI(t, dir, "config", "set", "--min-length", "450", "--operator", "bob")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "--json", "config", "show")
	require.NoError(t, err)
	var cfg model.AppConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 450.0, cfg.DefaultMinimumUsableLength)
	assert.Equal(t, "bob", cfg.DefaultOperator)

	_, err = runCLI(t, dir, "config", "set", "--min-length", "-1")
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	dir := setup(t)

	_, err := runCLI(t, dir, "config", "init")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "config", "init")
	require.Error(t, err)
	_, err = runCLI(t, dir, "config", "init", "--force")
	require.NoError(t, err)
}

func TestBackupRoundTrip(t *testing.T) {
	dir := setup(t)
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	stockPath := filepath.Join(dir, "stock.json")
	require.NoError(t, project.SaveStock(stockPath, []model.MaterialPiece{model.NewMaterialPiece("RM-1", "EN8", model.ShapeRod, 1000)}))
	backup := filepath.Join(dir, "backup.json")

	_, err := runCLI(t, dir, "backup", "export", backup, "-s", stockPath, "-f", jobs)
	require.NoError(t, err)

	restoredStock := filepath.Join(dir, "restored", "stock.json")
	restoredJobs := filepath.Join(dir, "restored", "jobs.json")
	out, err := runCLI(t, dir, "backup", "restore", backup, "-s", restoredStock, "-f", restoredJobs)
	require.NoError(t, err)
	assert.Contains(t, out, "restored 1 piece(s) and 4 job card(s)")

	pieces, err := project.LoadStock(restoredStock)
	require.NoError(t, err)
	assert.Len(t, pieces, 1)
	cards, err := project.LoadJobCards(restoredJobs)
	require.NoError(t, err)
	assert.Len(t, cards, 4)
}

func TestStockValue_Verbose(t *testing.T) {
	dir := setup(t)
	stock := writeFile(t, dir, "stock.csv", stockCSV)

	out, err := runCLI(t, dir, "stock", "value", "-s", stock, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "1000 mm")
	assert.Contains(t, out, "Available value: 190")
	assert.Contains(t, out, "Total value: 190")
}
