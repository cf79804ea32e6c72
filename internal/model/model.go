package model

import "github.com/google/uuid"

// NewID returns a short random identifier for a new record.
func NewID() string {
	return uuid.New().String()[:8]
}

// CuttingRequirement is a demand line for Quantity cuts of RequiredLength.
type CuttingRequirement struct {
	RequiredLength float64 `json:"required_length"` // mm
	Quantity       int     `json:"quantity"`
	OrderID        string  `json:"order_id"`
}

// CutRequest is a single unit cut expanded from a requirement.
type CutRequest struct {
	Length  float64 `json:"length"`
	OrderID string  `json:"order_id"`
}

// Valid reports whether the requirement asks for at least one cut of positive length.
func (r CuttingRequirement) Valid() bool {
	return r.Quantity > 0 && r.RequiredLength > 0
}

// Expand returns one CutRequest per unit of quantity. Requirements without a
// positive length or quantity expand to nothing.
func (r CuttingRequirement) Expand() []CutRequest {
	if !r.Valid() {
		return nil
	}
	cuts := make([]CutRequest, r.Quantity)
	for i := range cuts {
		cuts[i] = CutRequest{Length: r.RequiredLength, OrderID: r.OrderID}
	}
	return cuts
}

// TotalCuts returns the number of unit cuts across all requirements.
func TotalCuts(reqs []CuttingRequirement) int {
	n := 0
	for _, r := range reqs {
		if r.Valid() {
			n += r.Quantity
		}
	}
	return n
}

// CutSettings holds optimizer configuration.
type CutSettings struct {
	MinimumUsableLength float64 `json:"minimum_usable_length"` // mm; remnants below this are wastage
	MinimumUsableWeight float64 `json:"minimum_usable_weight"` // kg
	Operator            string  `json:"operator"`              // stamped into usage records when a plan is applied
}

func DefaultSettings() CutSettings {
	return CutSettings{
		MinimumUsableLength: DefaultMinimumUsableLength,
		MinimumUsableWeight: DefaultMinimumUsableWeight,
		Operator:            SystemUser,
	}
}
