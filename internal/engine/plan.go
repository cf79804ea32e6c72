package engine

import "github.com/piwi3910/ShopFloor/internal/model"

// PlanEntry is the set of cuts assigned to one stock piece.
type PlanEntry struct {
	Piece           model.MaterialPiece `json:"piece"`       // the piece as it was before planning
	PieceIndex      int                 `json:"piece_index"` // position of the piece in the planned slice
	Cuts            []model.CutRequest  `json:"cuts"`
	RemainingLength float64             `json:"remaining_length"`
	IsWastage       bool                `json:"is_wastage"`
}

// StartLength returns the piece length at the start of planning.
func (e PlanEntry) StartLength() float64 {
	return e.Piece.CurrentLength
}

// CutLength returns the total length assigned to the piece.
func (e PlanEntry) CutLength() float64 {
	var total float64
	for _, c := range e.Cuts {
		total += c.Length
	}
	return total
}

// WastageLength returns the scrapped end of the piece, or 0 when the remnant
// is empty or still usable.
func (e PlanEntry) WastageLength() float64 {
	if e.IsWastage {
		return e.RemainingLength
	}
	return 0
}

// CuttingPlan is the result of assigning cut requests to stock pieces.
// Entries are ordered by the first cut placed on each piece.
type CuttingPlan struct {
	Entries             []PlanEntry        `json:"entries"`
	Unplaced            []model.CutRequest `json:"unplaced,omitempty"` // shortage: no piece was long enough
	MinimumUsableLength float64            `json:"minimum_usable_length"`
	TotalConsumed       float64            `json:"total_consumed"`
	TotalWastage        float64            `json:"total_wastage"`
	Efficiency          float64            `json:"efficiency"` // percent of drawn material ending up in cuts
}

// PlacedCuts returns the number of cuts assigned to pieces.
func (p CuttingPlan) PlacedCuts() int {
	n := 0
	for _, e := range p.Entries {
		n += len(e.Cuts)
	}
	return n
}

// RequestedCuts returns the number of cuts the plan was asked for.
func (p CuttingPlan) RequestedCuts() int {
	return p.PlacedCuts() + len(p.Unplaced)
}

// Complete reports whether every requested cut was placed. An incomplete plan
// signals a stock shortage.
func (p CuttingPlan) Complete() bool {
	return len(p.Unplaced) == 0
}

// WastageEntries returns the entries whose remnant is scrap.
func (p CuttingPlan) WastageEntries() []PlanEntry {
	var out []PlanEntry
	for _, e := range p.Entries {
		if e.IsWastage {
			out = append(out, e)
		}
	}
	return out
}

// ShortageByOrder sums unplaced cut length per order.
func (p CuttingPlan) ShortageByOrder() map[string]float64 {
	out := make(map[string]float64)
	for _, c := range p.Unplaced {
		out[c.OrderID] += c.Length
	}
	return out
}
