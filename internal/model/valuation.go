package model

import "math"

// InventoryValue splits the remaining value of stock into usable and wasted parts.
type InventoryValue struct {
	AvailableValue float64 `json:"available_value"` // Available pieces that are not wastage
	WastageValue   float64 `json:"wastage_value"`   // Pieces flagged as wastage
	TotalValue     float64 `json:"total_value"`
}

// CalculateWastagePercentage returns the share of a piece already drawn off,
// rounded to a whole percent. A zero original length yields 0.
func CalculateWastagePercentage(originalLength, currentLength float64) float64 {
	if originalLength == 0 {
		return 0
	}
	return math.Round((originalLength - currentLength) / originalLength * 100)
}

// remainingValue prices the remaining quantity of a piece at its purchase
// unit cost. Pieces without cost or a tracked dimension contribute nothing.
func remainingValue(p MaterialPiece) (float64, bool) {
	if p.PurchaseCost <= 0 {
		return 0, false
	}
	switch {
	case p.TracksLength():
		return p.PurchaseCost / p.OriginalLength * p.CurrentLength, true
	case p.TracksWeight():
		return p.PurchaseCost / p.OriginalWeight * p.CurrentWeight, true
	default:
		return 0, false
	}
}

// CalculateWastageValue sums the remaining value of the given pieces at unit
// purchase cost. Callers pass the wastage pieces they want priced.
func CalculateWastageValue(pieces []MaterialPiece) float64 {
	var total float64
	for _, p := range pieces {
		if v, ok := remainingValue(p); ok {
			total += v
		}
	}
	return total
}

// CalculateInventoryValue partitions stock value into available and wastage
// value, each rounded to the nearest whole currency unit.
func CalculateInventoryValue(pieces []MaterialPiece) InventoryValue {
	var available, wastage float64
	for _, p := range pieces {
		v, ok := remainingValue(p)
		if !ok {
			continue
		}
		switch {
		case p.IsWastage:
			wastage += v
		case p.Status == PieceAvailable:
			available += v
		}
	}
	available = math.Round(available)
	wastage = math.Round(wastage)
	return InventoryValue{
		AvailableValue: available,
		WastageValue:   wastage,
		TotalValue:     available + wastage,
	}
}
