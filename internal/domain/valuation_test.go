package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepreciatedValueZeroYears(t *testing.T) {
	assert.Equal(t, DepreciationBaseValue, DepreciatedValue(20, 0))
	assert.Equal(t, DepreciationBaseValue, DepreciatedValue(0, 0))
}

func TestDepreciatedValueStrictlyDecreases(t *testing.T) {
	prev := DepreciatedValue(15, 0)
	for years := uint64(1); years <= 10; years++ {
		current := DepreciatedValue(15, years)
		assert.Less(t, current, prev, "value should shrink at year %d", years)
		prev = current
	}
}

func TestDepreciatedValueCompounds(t *testing.T) {
	// 10% over two years: 1000 * 0.9 * 0.9
	assert.InDelta(t, 810, DepreciatedValue(10, 2), 1e-9)
}

func TestDepreciatedValueUnboundedRates(t *testing.T) {
	// Rates outside [0, 100] are deliberately not rejected.
	assert.Greater(t, DepreciatedValue(-10, 1), DepreciationBaseValue)
	assert.Negative(t, DepreciatedValue(200, 1))
}
