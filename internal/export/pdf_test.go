package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShopFloor/internal/engine"
	"github.com/piwi3910/ShopFloor/internal/model"
)

func testPiece(id string, length float64) model.MaterialPiece {
	p := model.NewMaterialPiece("RM-EN8-40", "EN8", model.ShapeRod, length)
	p.ID = id
	p.Location = "Rack A"
	return p
}

// buildTestPlan creates a realistic cutting plan with a scrap remnant, a
// reusable remnant and an exact fit.
func buildTestPlan() engine.CuttingPlan {
	pieces := []model.MaterialPiece{testPiece("P1", 1000), testPiece("P2", 2000), testPiece("P3", 500)}
	reqs := []model.CuttingRequirement{
		{RequiredLength: 750, Quantity: 1, OrderID: "SO-1"},
		{RequiredLength: 600, Quantity: 2, OrderID: "SO-2"},
		{RequiredLength: 500, Quantity: 1, OrderID: "SO-3"},
	}
	return engine.CalculateOptimalCuttingPlan(pieces, reqs, 300)
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("file is empty")
	}
}

func TestExportPlanPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	err := ExportPlanPDF(path, buildTestPlan(), ReportOptions{CompanyName: "Acme Turning"})
	if err != nil {
		t.Fatalf("ExportPlanPDF returned error: %v", err)
	}

	assertNonEmptyFile(t, path)
	info, _ := os.Stat(path)
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPlanPDF_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPlanPDF(path, engine.CuttingPlan{}, ReportOptions{}); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}

func TestExportPlanPDF_ShortageOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortage.pdf")
	plan := engine.CalculateOptimalCuttingPlan(
		[]model.MaterialPiece{testPiece("P1", 400)},
		[]model.CuttingRequirement{{RequiredLength: 600, Quantity: 3, OrderID: "SO-9"}},
		300,
	)

	if err := ExportPlanPDF(path, plan, ReportOptions{Title: "Shortage"}); err != nil {
		t.Fatalf("ExportPlanPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPlanPDF_ManyPieces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	// More pieces than fit on a page and more cuts than colors
	var pieces []model.MaterialPiece
	for i := 0; i < 30; i++ {
		pieces = append(pieces, testPiece(fmt.Sprintf("P%02d", i), 1000+float64(i*50)))
	}
	reqs := []model.CuttingRequirement{
		{RequiredLength: 120, Quantity: 120, OrderID: "SO-1"},
		{RequiredLength: 310, Quantity: 20, OrderID: "SO-2"},
	}
	plan := engine.CalculateOptimalCuttingPlan(pieces, reqs, 300)

	if err := ExportPlanPDF(path, plan, ReportOptions{}); err != nil {
		t.Fatalf("ExportPlanPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestRemnantTag(t *testing.T) {
	tests := []struct {
		entry engine.PlanEntry
		want  string
	}{
		{engine.PlanEntry{RemainingLength: 0}, "(consumed)"},
		{engine.PlanEntry{RemainingLength: 120, IsWastage: true}, "(SCRAP)"},
		{engine.PlanEntry{RemainingLength: 400}, "(back to stock)"},
	}
	for _, tt := range tests {
		if got := remnantTag(tt.entry); got != tt.want {
			t.Errorf("remnantTag(%+v) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestReportOptionsDefaults(t *testing.T) {
	var opts ReportOptions
	if opts.title() != "Cutting Plan" {
		t.Errorf("unexpected default title %q", opts.title())
	}
	if opts.footer() != "Generated by ShopFloor" {
		t.Errorf("unexpected default footer %q", opts.footer())
	}
	opts.CompanyName = "Acme"
	if opts.footer() != "Generated by ShopFloor for Acme" {
		t.Errorf("unexpected footer %q", opts.footer())
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w    float64
		want float64
	}{
		{50, 8},
		{30, 7},
		{10, 6},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.w); got != tt.want {
			t.Errorf("labelFontSize(%v) = %v, want %v", tt.w, got, tt.want)
		}
	}
}
