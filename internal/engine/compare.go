package engine

import (
	"fmt"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds the plan and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Plan          CuttingPlan
	PiecesUsed    int
	TotalCuts     int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios plans the same requirements under each scenario and
// returns the results in scenario order. This enables side-by-side comparison
// of what-if thresholds before a plan is committed.
func CompareScenarios(scenarios []ComparisonScenario, pieces []model.MaterialPiece, reqs []model.CuttingRequirement) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan := New(scenario.Settings).Plan(pieces, reqs)

		wastePercent := 0.0
		if plan.PlacedCuts() > 0 {
			wastePercent = 100.0 - plan.Efficiency
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Plan:          plan,
			PiecesUsed:    len(plan.Entries),
			TotalCuts:     plan.PlacedCuts(),
			WastePercent:  wastePercent,
			UnplacedCount: len(plan.Unplaced),
		})
	}

	return results
}

// BuildDefaultScenarios generates comparison scenarios around the current
// settings by varying the minimum usable remnant length.
func BuildDefaultScenarios(baseSettings model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	base := baseSettings.MinimumUsableLength
	if base <= 0 {
		base = model.DefaultMinimumUsableLength
	}

	// Scenario: keep shorter remnants as stock
	lenient := baseSettings
	lenient.MinimumUsableLength = base * 0.5
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Min remnant %.0fmm (half)", lenient.MinimumUsableLength),
		Settings: lenient,
	})

	// Scenario: scrap more aggressively
	strict := baseSettings
	strict.MinimumUsableLength = base * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Min remnant %.0fmm (double)", strict.MinimumUsableLength),
		Settings: strict,
	})

	return scenarios
}
