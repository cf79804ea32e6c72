package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCuttingRequirementExpand(t *testing.T) {
	r := CuttingRequirement{RequiredLength: 450, Quantity: 3, OrderID: "SO-1"}
	cuts := r.Expand()

	assert.Len(t, cuts, 3)
	for _, c := range cuts {
		assert.Equal(t, CutRequest{Length: 450, OrderID: "SO-1"}, c)
	}
}

func TestCuttingRequirementExpandNonPositiveQuantity(t *testing.T) {
	assert.Nil(t, CuttingRequirement{RequiredLength: 450}.Expand())
	assert.Nil(t, CuttingRequirement{RequiredLength: 450, Quantity: -2}.Expand())
}

func TestCuttingRequirementExpandNonPositiveLength(t *testing.T) {
	assert.Nil(t, CuttingRequirement{Quantity: 2}.Expand())
	assert.Nil(t, CuttingRequirement{RequiredLength: -50, Quantity: 2}.Expand())
	assert.False(t, CuttingRequirement{RequiredLength: -50, Quantity: 2}.Valid())
	assert.True(t, CuttingRequirement{RequiredLength: 50, Quantity: 2}.Valid())
}

func TestTotalCuts(t *testing.T) {
	reqs := []CuttingRequirement{
		{RequiredLength: 100, Quantity: 2},
		{RequiredLength: 200, Quantity: 0},
		{RequiredLength: 300, Quantity: -1},
		{RequiredLength: 400, Quantity: 5},
		{RequiredLength: 0, Quantity: 4},
	}
	assert.Equal(t, 7, TotalCuts(reqs))
	assert.Equal(t, 0, TotalCuts(nil))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 300.0, s.MinimumUsableLength)
	assert.Equal(t, 0.5, s.MinimumUsableWeight)
	assert.Equal(t, SystemUser, s.Operator)
}
