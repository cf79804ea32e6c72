package engine

import (
	"sort"
	"time"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// Optimizer plans raw-material cuts with a fixed set of settings.
type Optimizer struct {
	Settings model.CutSettings
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// minimumUsable returns the configured threshold, falling back to the default.
func (o *Optimizer) minimumUsable() float64 {
	if o.Settings.MinimumUsableLength > 0 {
		return o.Settings.MinimumUsableLength
	}
	return model.DefaultMinimumUsableLength
}

// Plan assigns the requirements to the pieces using the optimizer's settings.
func (o *Optimizer) Plan(pieces []model.MaterialPiece, reqs []model.CuttingRequirement) CuttingPlan {
	return CalculateOptimalCuttingPlan(pieces, reqs, o.minimumUsable())
}

// Apply commits a plan to the pieces, stamping the configured operator.
func (o *Optimizer) Apply(pieces []model.MaterialPiece, plan CuttingPlan, at time.Time) []model.MaterialPiece {
	return ApplyPlan(pieces, plan, at, o.Settings.Operator)
}

// effectiveWaste scores a candidate: a remnant at or above the usable
// threshold stays in stock and counts as no waste.
func effectiveWaste(remaining, minimumUsableLength float64) float64 {
	if remaining < minimumUsableLength {
		return remaining
	}
	return 0
}

// bestPieceIndex returns the index of the best available piece for a cut, or
// -1 when no piece is long enough. Candidates are ranked by effective waste,
// then by remaining length; remaining ties keep slice order.
func bestPieceIndex(pieces []model.MaterialPiece, requiredLength, minimumUsableLength float64) int {
	if requiredLength <= 0 {
		return -1
	}
	var candidates []int
	for i, p := range pieces {
		if p.Status == model.PieceAvailable && p.CurrentLength >= requiredLength {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		ra := pieces[candidates[a]].CurrentLength - requiredLength
		rb := pieces[candidates[b]].CurrentLength - requiredLength
		wa := effectiveWaste(ra, minimumUsableLength)
		wb := effectiveWaste(rb, minimumUsableLength)
		if wa != wb {
			return wa < wb
		}
		return ra < rb
	})
	return candidates[0]
}

// FindBestMaterialPiece picks the available piece that produces the least
// scrap for a single cut of requiredLength. It returns false on a shortage.
func FindBestMaterialPiece(pieces []model.MaterialPiece, requiredLength, minimumUsableLength float64) (model.MaterialPiece, bool) {
	i := bestPieceIndex(pieces, requiredLength, minimumUsableLength)
	if i < 0 {
		return model.MaterialPiece{}, false
	}
	return pieces[i], true
}

// CalculateOptimalCuttingPlan assigns every unit cut of the requirements to a
// piece using a best-fit-decreasing heuristic: cuts are taken longest first
// and pieces are tried shortest first. Working lengths live in a scratch copy,
// so the caller's pieces are untouched; the remaining lengths are reported in
// the plan entries. Cuts no piece can hold are listed in Unplaced.
func CalculateOptimalCuttingPlan(pieces []model.MaterialPiece, reqs []model.CuttingRequirement, minimumUsableLength float64) CuttingPlan {
	// Expand requirements by quantity into individual cut requests
	var cuts []model.CutRequest
	for _, r := range reqs {
		cuts = append(cuts, r.Expand()...)
	}

	// Longest cuts first reduces fragmentation
	sort.SliceStable(cuts, func(i, j int) bool {
		return cuts[i].Length > cuts[j].Length
	})

	// Scratch pool, shortest pieces first so long stock is kept for long cuts.
	// source maps a pool position back to the caller's slice.
	source := make([]int, len(pieces))
	for i := range source {
		source[i] = i
	}
	sort.SliceStable(source, func(i, j int) bool {
		return pieces[source[i]].CurrentLength < pieces[source[j]].CurrentLength
	})
	pool := make([]model.MaterialPiece, len(pieces))
	for k, i := range source {
		pool[k] = pieces[i]
	}

	plan := CuttingPlan{
		Entries:             []PlanEntry{},
		MinimumUsableLength: minimumUsableLength,
	}
	entryOf := make(map[int]int) // pool index -> plan entry index

	for _, cut := range cuts {
		i := bestPieceIndex(pool, cut.Length, minimumUsableLength)
		if i < 0 {
			plan.Unplaced = append(plan.Unplaced, cut)
			continue
		}

		e, ok := entryOf[i]
		if !ok {
			e = len(plan.Entries)
			entryOf[i] = e
			plan.Entries = append(plan.Entries, PlanEntry{Piece: pool[i].Clone(), PieceIndex: source[i]})
		}
		plan.Entries[e].Cuts = append(plan.Entries[e].Cuts, cut)
		pool[i].CurrentLength -= cut.Length
		plan.Entries[e].RemainingLength = pool[i].CurrentLength
		plan.TotalConsumed += cut.Length
	}

	for e := range plan.Entries {
		remaining := plan.Entries[e].RemainingLength
		if remaining > 0 && remaining < minimumUsableLength {
			plan.Entries[e].IsWastage = true
			plan.TotalWastage += remaining
		}
	}

	if used := plan.TotalConsumed + plan.TotalWastage; used > 0 {
		plan.Efficiency = plan.TotalConsumed / used * 100
	}
	return plan
}

// ApplyPlan returns a new slice of pieces with the plan's cuts committed:
// lengths are reduced, one usage record is appended per cut, and statuses and
// wastage flags follow the final remnant. Entries are joined to pieces by
// PieceIndex, so pieces must be the slice the plan was calculated from; an
// entry whose index is out of range or whose piece ID differs is skipped.
// Remnants are judged against the plan's threshold, which is recorded in the
// usage history; the pieces' own thresholds are kept. The input slice is not
// modified.
func ApplyPlan(pieces []model.MaterialPiece, plan CuttingPlan, at time.Time, usedBy string) []model.MaterialPiece {
	out := make([]model.MaterialPiece, len(pieces))
	copy(out, pieces)

	applied := make(map[int]bool, len(plan.Entries))
	for _, e := range plan.Entries {
		i := e.PieceIndex
		if i < 0 || i >= len(pieces) || applied[i] || pieces[i].ID != e.Piece.ID {
			continue
		}
		applied[i] = true

		cp := pieces[i].Clone()
		first := len(cp.UsageHistory)
		for _, c := range e.Cuts {
			cp = cp.CutLengthWithMinimum(c.Length, plan.MinimumUsableLength, c.OrderID, usedBy, at)
		}
		// Only the final remnant is scrap; intermediate remnants were cut further.
		for k := first; k < len(cp.UsageHistory)-1; k++ {
			cp.UsageHistory[k].WastageGenerated = 0
		}
		out[i] = cp
	}
	return out
}
