package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateWastagePercentage(t *testing.T) {
	tests := []struct {
		original, current, want float64
	}{
		{1000, 250, 75},
		{1000, 1000, 0},
		{1000, 0, 100},
		{3, 1, 67},
		{0, 0, 0},
		{0, 50, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateWastagePercentage(tt.original, tt.current), "%v -> %v", tt.original, tt.current)
	}
}

func TestCalculateWastageValue(t *testing.T) {
	pieces := []MaterialPiece{
		{OriginalLength: 1000, CurrentLength: 250, PurchaseCost: 400, IsWastage: true},
		{OriginalWeight: 10, CurrentWeight: 0.4, PurchaseCost: 500, IsWastage: true},
		{OriginalLength: 1000, CurrentLength: 100, IsWastage: true},
		{CurrentLength: 100, PurchaseCost: 10, IsWastage: true},
	}
	assert.InDelta(t, 120.0, CalculateWastageValue(pieces), 1e-9)
	assert.Equal(t, 0.0, CalculateWastageValue(nil))
}

func TestCalculateInventoryValue(t *testing.T) {
	pieces := []MaterialPiece{
		{OriginalLength: 1000, CurrentLength: 600, PurchaseCost: 1000, Status: PieceAvailable},
		{OriginalLength: 1000, CurrentLength: 250, PurchaseCost: 1000, Status: PieceScrap, IsWastage: true},
		{OriginalLength: 1000, CurrentLength: 1000, PurchaseCost: 1000, Status: PieceReserved},
		{OriginalWeight: 4, CurrentWeight: 1, PurchaseCost: 99, Status: PieceAvailable},
	}
	v := CalculateInventoryValue(pieces)

	assert.Equal(t, 625.0, v.AvailableValue)
	assert.Equal(t, 250.0, v.WastageValue)
	assert.Equal(t, 875.0, v.TotalValue)
}

func TestCalculateInventoryValueEmpty(t *testing.T) {
	assert.Equal(t, InventoryValue{}, CalculateInventoryValue(nil))
}
