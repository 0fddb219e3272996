package hydro

import "math"

// Pipe-flow constants

const (
	// Gravitational acceleration (m/s²)
	G = 9.81

	// Iteration control shared by the Colebrook and coupled velocity solvers
	Tolerance     = 1e-6
	MaxIterations = 1000

	// Starting guesses
	InitialFrictionFactor = 0.02 // typical turbulent-flow value
	InitialVelocity       = 1.0  // m/s
)

// Options carries the values a solver call needs besides its physical inputs.
// Zero fields fall back to the package defaults.
type Options struct {
	Gravity       float64 // m/s²
	Tolerance     float64
	MaxIterations int
}

// DefaultOptions returns the standard solver settings
func DefaultOptions() Options {
	return Options{
		Gravity:       G,
		Tolerance:     Tolerance,
		MaxIterations: MaxIterations,
	}
}

// Normalize fills zero or negative fields with defaults
func (o Options) Normalize() Options {
	if o.Gravity <= 0 {
		o.Gravity = G
	}
	if o.Tolerance <= 0 {
		o.Tolerance = Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = MaxIterations
	}
	return o
}

// Reynolds calculates the Reynolds number Re = V·D/ν
func Reynolds(v, d, nu float64) (float64, error) {
	if err := CheckPositive("reynolds", "kinematic viscosity", nu); err != nil {
		return 0, err
	}
	return Finite("reynolds", v*d/nu)
}

// Area calculates the cross-sectional area of a circular pipe, A = (π/4)·D²
func Area(d float64) float64 {
	return math.Pi / 4 * d * d
}

// FlowRate calculates the volumetric flow rate Q = V·A (m³/s)
func FlowRate(v, d float64) float64 {
	return v * Area(d)
}
