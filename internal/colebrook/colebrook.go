package colebrook

import (
	"math"

	"github.com/alexiusacademia/gopipe/internal/hydro"
)

const op = "colebrook"

// Result holds the outcome of a Colebrook solve
type Result struct {
	F          float64   `json:"friction_factor"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	History    []float64 `json:"history,omitempty"` // successive estimates f₁, f₂, …
}

// FrictionFactor solves 1/√f = -2·log10(ε/D/3.7 + 2.51/(Re·√f)) for f with
// the default tolerance and iteration cap. If the cap is reached the last
// estimate is returned; use Solve to tell the two outcomes apart.
func FrictionFactor(re, relRoughness float64) (float64, error) {
	result, err := Solve(re, relRoughness, hydro.DefaultOptions())
	if err != nil {
		return 0, err
	}
	return result.F, nil
}

// Solve runs the fixed-point iteration starting from f₀ = 0.02
func Solve(re, relRoughness float64, opts hydro.Options) (*Result, error) {
	return SolveFrom(re, relRoughness, hydro.InitialFrictionFactor, opts)
}

// SolveFrom runs the fixed-point iteration from an arbitrary positive guess
func SolveFrom(re, relRoughness, f0 float64, opts hydro.Options) (*Result, error) {
	if err := hydro.CheckPositive(op, "reynolds number", re); err != nil {
		return nil, err
	}
	if err := hydro.CheckNonNegative(op, "relative roughness", relRoughness); err != nil {
		return nil, err
	}
	if err := hydro.CheckPositive(op, "initial friction factor", f0); err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	result := &Result{History: make([]float64, 0, 8)}
	f := f0
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		next, err := step(re, relRoughness, f)
		if err != nil {
			return nil, err
		}
		result.History = append(result.History, next)
		result.Iterations = iter

		if math.Abs(next-f) < opts.Tolerance {
			result.F = next
			result.Converged = true
			return result, nil
		}
		f = next
	}

	// Cap reached: report the last estimate
	result.F = f
	return result, nil
}

// step applies one Colebrook update fₖ₊₁ = [-2·log10(ε/D/3.7 + 2.51/(Re·√fₖ))]⁻²
func step(re, relRoughness, f float64) (float64, error) {
	x := -2 * math.Log10(relRoughness/3.7+2.51/(re*math.Sqrt(f)))
	next := 1 / (x * x)
	if math.IsNaN(next) || math.IsInf(next, 0) || next <= 0 {
		return 0, &hydro.DomainError{
			Op:       op,
			Quantity: "friction factor update",
			Value:    next,
			Reason:   "is singular for the given Reynolds number and roughness",
		}
	}
	return next, nil
}
