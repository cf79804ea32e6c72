package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShopFloor/internal/depgraph"
	"github.com/piwi3910/ShopFloor/internal/model"
)

func scheduleCards() []model.JobCard {
	a := model.NewJobCard("JC-A", 30)
	a.Status = model.JobCardReady
	a.ProcessName = "Sawing"
	b := model.NewJobCard("JC-B", 45, "JC-A")
	b.Status = model.JobCardBlocked
	b.ProcessName = "Turning"
	c := model.NewJobCard("JC-C", 20, "JC-B")
	c.Status = model.JobCardBlocked
	return []model.JobCard{a, b, c}
}

func TestExportSchedulePDF(t *testing.T) {
	cards := scheduleCards()
	path := filepath.Join(t.TempDir(), "schedule.pdf")

	err := ExportSchedulePDF(path, depgraph.GetExecutionOrder(cards), depgraph.CalculateCriticalPath(cards), ReportOptions{})
	if err != nil {
		t.Fatalf("ExportSchedulePDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportSchedulePDF_Cycle(t *testing.T) {
	cards := scheduleCards()
	cards[0].DependsOnJobCardIDs = []string{"JC-C"}
	path := filepath.Join(t.TempDir(), "cycle.pdf")

	order := depgraph.GetExecutionOrder(cards)
	if order.Complete() {
		t.Fatal("expected an incomplete order for a cyclic snapshot")
	}
	if err := ExportSchedulePDF(path, order, depgraph.CalculateCriticalPath(cards), ReportOptions{Title: "Cyclic"}); err != nil {
		t.Fatalf("ExportSchedulePDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportSchedulePDF_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportSchedulePDF(path, depgraph.ExecutionOrder{}, depgraph.CriticalPath{}, ReportOptions{}); err == nil {
		t.Fatal("expected error for empty schedule")
	}
}

func TestCardKey_CardsWithoutIDs(t *testing.T) {
	a := model.JobCard{JobCardNo: "A"}
	b := model.JobCard{JobCardNo: "B"}
	if cardKey(a) == cardKey(b) {
		t.Fatalf("cards without IDs share key %q", cardKey(a))
	}
	if cardKey(model.JobCard{ID: "A"}) == cardKey(a) {
		t.Fatal("an ID and a JobCardNo with the same text must not collide")
	}
}

func TestExportSchedulePDF_CardsWithoutIDs(t *testing.T) {
	cards := scheduleCards()
	for i := range cards {
		cards[i].ID = ""
	}
	path := filepath.Join(t.TempDir(), "no-ids.pdf")

	cp := depgraph.CalculateCriticalPath(cards)
	if len(cp.Path) != 3 {
		t.Fatalf("critical path has %d cards, want 3", len(cp.Path))
	}
	if err := ExportSchedulePDF(path, depgraph.GetExecutionOrder(cards), cp, ReportOptions{}); err != nil {
		t.Fatalf("ExportSchedulePDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}
