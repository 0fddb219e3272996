package flow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopipe/internal/colebrook"
	"github.com/alexiusacademia/gopipe/internal/darcy"
	"github.com/alexiusacademia/gopipe/internal/hydro"
)

var standard = Input{Length: 100, Diameter: 0.1, HeadLoss: 5, RelRoughness: 0.001, Viscosity: 1e-6}

func TestVelocityScenario(t *testing.T) {
	v, q, err := Velocity(100, 0.1, 5, 0.001, 1e-6)
	require.NoError(t, err)
	assert.InDelta(t, 2.1645, v, 1e-3)
	assert.InDelta(t, 0.0170, q, 1e-4)
	assert.InDelta(t, v*math.Pi/4*0.01, q, 1e-12)

	// Same inputs, same bits
	v2, q2, err := Velocity(100, 0.1, 5, 0.001, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, v, v2)
	assert.Equal(t, q, q2)
}

func TestSolveIsSelfConsistent(t *testing.T) {
	res, err := NewSolver(hydro.DefaultOptions()).Solve(standard)
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.Len(t, res.History, res.Iterations)
	assert.GreaterOrEqual(t, res.InnerIterations, res.Iterations)

	// The friction factor matches Colebrook at the final Reynolds number
	re, err := hydro.Reynolds(res.Velocity, standard.Diameter, standard.Viscosity)
	require.NoError(t, err)
	f, err := colebrook.FrictionFactor(re, standard.RelRoughness)
	require.NoError(t, err)
	assert.InDelta(t, f, res.FrictionFactor, 1e-5)

	// And the velocity reproduces the head loss through Darcy–Weisbach
	hf, err := darcy.PressureDrop(standard.Length, standard.Diameter, res.Velocity, res.FrictionFactor)
	require.NoError(t, err)
	assert.InDelta(t, standard.HeadLoss, hf, 1e-4)
}

func TestObserverSeesEveryStep(t *testing.T) {
	var steps []Step
	s := NewSolver(hydro.DefaultOptions())
	s.Observer = func(st Step) { steps = append(steps, st) }

	res, err := s.Solve(standard)
	require.NoError(t, err)
	require.Len(t, steps, res.Iterations)
	for i, st := range steps {
		assert.Equal(t, i+1, st.Iteration)
	}
	assert.Equal(t, res.Velocity, steps[len(steps)-1].Velocity)
}

func TestNonConvergenceIsReported(t *testing.T) {
	opts := hydro.DefaultOptions()
	opts.MaxIterations = 3

	res, err := NewSolver(opts).Solve(standard)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, res.History[2].Velocity, res.Velocity)
}

func TestZeroHeadLoss(t *testing.T) {
	in := standard
	in.HeadLoss = 0
	res, err := NewSolver(hydro.DefaultOptions()).Solve(in)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Zero(t, res.Velocity)
	assert.Zero(t, res.FlowRate)
	assert.Zero(t, res.Iterations)
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero viscosity", func(in *Input) { in.Viscosity = 0 }},
		{"zero diameter", func(in *Input) { in.Diameter = 0 }},
		{"zero length", func(in *Input) { in.Length = 0 }},
		{"negative head loss", func(in *Input) { in.HeadLoss = -1 }},
		{"negative roughness", func(in *Input) { in.RelRoughness = -0.001 }},
		{"NaN viscosity", func(in *Input) { in.Viscosity = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := standard
			tt.mutate(&in)
			_, _, err := Velocity(in.Length, in.Diameter, in.HeadLoss, in.RelRoughness, in.Viscosity)
			require.Error(t, err)
			assert.True(t, hydro.IsDomainError(err))
		})
	}
}

func TestGravityIsInjected(t *testing.T) {
	low := hydro.DefaultOptions()
	low.Gravity = 1.62

	moon, err := NewSolver(low).Solve(standard)
	require.NoError(t, err)
	earth, err := NewSolver(hydro.DefaultOptions()).Solve(standard)
	require.NoError(t, err)
	assert.Less(t, moon.Velocity, earth.Velocity)
}
