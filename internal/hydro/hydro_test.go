package hydro

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReynolds(t *testing.T) {
	re, err := Reynolds(2, 0.1, 1e-6)
	require.NoError(t, err)
	assert.InDelta(t, 2e5, re, 1e-6)

	_, err = Reynolds(2, 0.1, 0)
	assert.True(t, IsDomainError(err))
}

func TestAreaAndFlowRate(t *testing.T) {
	assert.InDelta(t, 0.00785398, Area(0.1), 1e-8)
	assert.InDelta(t, 2*0.00785398, FlowRate(2, 0.1), 1e-8)
}

func TestChecks(t *testing.T) {
	assert.NoError(t, CheckPositive("op", "x", 1))
	assert.Error(t, CheckPositive("op", "x", 0))
	assert.Error(t, CheckPositive("op", "x", math.Inf(1)))
	assert.NoError(t, CheckNonNegative("op", "x", 0))
	assert.Error(t, CheckNonNegative("op", "x", -1e-12))
	assert.Error(t, CheckNonNegative("op", "x", math.NaN()))

	_, err := Finite("op", math.Inf(-1))
	assert.Error(t, err)
}

func TestDomainErrorWrapping(t *testing.T) {
	err := fmt.Errorf("solving: %w", CheckPositive("pressure drop", "pipe diameter", 0))
	assert.True(t, IsDomainError(err))
	assert.Contains(t, err.Error(), "pipe diameter = 0 must be greater than zero")
	assert.False(t, IsDomainError(fmt.Errorf("plain")))
}

func TestOptionsNormalize(t *testing.T) {
	assert.Equal(t, DefaultOptions(), Options{}.Normalize())

	o := Options{Gravity: 9.8, Tolerance: 1e-9, MaxIterations: 10}.Normalize()
	assert.Equal(t, 9.8, o.Gravity)
	assert.Equal(t, 1e-9, o.Tolerance)
	assert.Equal(t, 10, o.MaxIterations)
}
