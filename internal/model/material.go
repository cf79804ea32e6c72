package model

import "time"

// PieceStatus is the stock state of a material piece.
type PieceStatus string

const (
	PieceAvailable PieceStatus = "Available"
	PieceInUse     PieceStatus = "InUse"
	PieceReserved  PieceStatus = "Reserved"
	PieceScrap     PieceStatus = "Scrap"
	PieceConsumed  PieceStatus = "Consumed"
)

// Shape is the cross-section of a raw material piece.
type Shape string

const (
	ShapeRod   Shape = "Rod"
	ShapePipe  Shape = "Pipe"
	ShapeBar   Shape = "Bar"
	ShapeSheet Shape = "Sheet"
	ShapeBlock Shape = "Block"
)

// Remnants below these thresholds are wastage rather than reusable stock.
const (
	DefaultMinimumUsableLength = 300.0 // mm
	DefaultMinimumUsableWeight = 0.5   // kg
)

// UsageRecord captures one cut taken from a piece.
type UsageRecord struct {
	OrderID          string    `json:"order_id,omitempty"`
	JobCardID        string    `json:"job_card_id,omitempty"`
	LengthUsed       float64   `json:"length_used,omitempty"`
	WeightUsed       float64   `json:"weight_used,omitempty"`
	RemainingLength  float64   `json:"remaining_length"`
	RemainingWeight  float64   `json:"remaining_weight,omitempty"`
	WastageGenerated float64   `json:"wastage_generated"`
	MinimumUsable    float64   `json:"minimum_usable,omitempty"` // threshold the remnant was judged against
	UsedAt           time.Time `json:"used_at"`
	UsedBy           string    `json:"used_by,omitempty"`
}

// MaterialPiece is a physical piece of raw material stock.
// A dimension is tracked when its original value is positive: rods, pipes and
// bars track length, sheets and blocks usually track weight.
type MaterialPiece struct {
	ID                  string        `json:"id"`
	RawMaterialID       string        `json:"raw_material_id"`
	Grade               string        `json:"grade"`
	Shape               Shape         `json:"shape"`
	Location            string        `json:"location,omitempty"`
	CurrentLength       float64       `json:"current_length,omitempty"`  // mm
	CurrentWeight       float64       `json:"current_weight,omitempty"`  // kg
	OriginalLength      float64       `json:"original_length,omitempty"` // mm
	OriginalWeight      float64       `json:"original_weight,omitempty"` // kg
	PurchaseCost        float64       `json:"purchase_cost,omitempty"`
	Status              PieceStatus   `json:"status"`
	MinimumUsableLength float64       `json:"minimum_usable_length"`
	MinimumUsableWeight float64       `json:"minimum_usable_weight"`
	IsWastage           bool          `json:"is_wastage"`
	IsReusable          bool          `json:"is_reusable"`
	UsageHistory        []UsageRecord `json:"usage_history,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// NewMaterialPiece creates an available length-tracked piece.
func NewMaterialPiece(rawMaterialID, grade string, shape Shape, length float64) MaterialPiece {
	return MaterialPiece{
		ID:                  NewID(),
		RawMaterialID:       rawMaterialID,
		Grade:               grade,
		Shape:               shape,
		CurrentLength:       length,
		OriginalLength:      length,
		Status:              PieceAvailable,
		MinimumUsableLength: DefaultMinimumUsableLength,
		MinimumUsableWeight: DefaultMinimumUsableWeight,
		IsReusable:          true,
	}
}

// NewWeighedPiece creates an available weight-tracked piece.
func NewWeighedPiece(rawMaterialID, grade string, shape Shape, weight float64) MaterialPiece {
	p := NewMaterialPiece(rawMaterialID, grade, shape, 0)
	p.CurrentWeight = weight
	p.OriginalWeight = weight
	return p
}

// TracksLength reports whether the piece is measured by length.
func (p MaterialPiece) TracksLength() bool {
	return p.OriginalLength > 0
}

// TracksWeight reports whether the piece is measured by weight.
func (p MaterialPiece) TracksWeight() bool {
	return p.OriginalWeight > 0
}

// MinLength returns the piece's minimum usable length, or the default when unset.
func (p MaterialPiece) MinLength() float64 {
	if p.MinimumUsableLength > 0 {
		return p.MinimumUsableLength
	}
	return DefaultMinimumUsableLength
}

// MinWeight returns the piece's minimum usable weight, or the default when unset.
func (p MaterialPiece) MinWeight() float64 {
	if p.MinimumUsableWeight > 0 {
		return p.MinimumUsableWeight
	}
	return DefaultMinimumUsableWeight
}

// BelowMinimum reports whether a non-empty remnant of the tracked dimension
// has dropped under its minimum usable threshold. Length takes precedence
// over weight.
func (p MaterialPiece) BelowMinimum() bool {
	switch {
	case p.TracksLength():
		return p.CurrentLength > 0 && p.CurrentLength < p.MinLength()
	case p.TracksWeight():
		return p.CurrentWeight > 0 && p.CurrentWeight < p.MinWeight()
	default:
		return false
	}
}

// Classify returns a copy with IsWastage and IsReusable derived from the
// current dimension. Wastage is never reusable.
func (p MaterialPiece) Classify() MaterialPiece {
	p.IsWastage = p.BelowMinimum()
	p.IsReusable = !p.IsWastage && p.Status != PieceScrap && p.Status != PieceConsumed
	return p
}

// Clone returns a copy whose usage history does not alias the receiver's.
func (p MaterialPiece) Clone() MaterialPiece {
	cp := p
	if p.UsageHistory != nil {
		cp.UsageHistory = append([]UsageRecord(nil), p.UsageHistory...)
	}
	return cp
}

// CutLength returns a copy with length consumed and a usage record appended.
// The piece status follows the remnant: Consumed at zero, Scrap when the
// remnant is wastage, Available otherwise. Non-positive lengths are ignored.
func (p MaterialPiece) CutLength(length float64, orderID, usedBy string, at time.Time) MaterialPiece {
	return p.CutLengthWithMinimum(length, p.MinLength(), orderID, usedBy, at)
}

// CutLengthWithMinimum is CutLength with the remnant judged against minimum
// instead of the piece's own threshold. The threshold used is stored in the
// usage record; the piece's MinimumUsableLength is left as it is.
func (p MaterialPiece) CutLengthWithMinimum(length, minimum float64, orderID, usedBy string, at time.Time) MaterialPiece {
	cp := p.Clone()
	if length <= 0 {
		return cp
	}
	if minimum <= 0 {
		minimum = p.MinLength()
	}
	cp.CurrentLength -= length
	if cp.CurrentLength < 0 {
		cp.CurrentLength = 0
	}

	var wastage float64
	if cp.CurrentLength > 0 && cp.CurrentLength < minimum {
		wastage = cp.CurrentLength
	}

	cp.UsageHistory = append(cp.UsageHistory, UsageRecord{
		OrderID:          orderID,
		LengthUsed:       length,
		RemainingLength:  cp.CurrentLength,
		WastageGenerated: wastage,
		MinimumUsable:    minimum,
		UsedAt:           at,
		UsedBy:           usedBy,
	})

	switch {
	case cp.CurrentLength == 0:
		cp.Status = PieceConsumed
	case wastage > 0:
		cp.Status = PieceScrap
	default:
		cp.Status = PieceAvailable
	}
	cp.UpdatedAt = at
	return cp.Classify()
}
