package flow

import (
	"math"

	"github.com/alexiusacademia/gopipe/internal/colebrook"
	"github.com/alexiusacademia/gopipe/internal/hydro"
)

const op = "coupled velocity"

// Input holds the known quantities of a pipe with unknown flow
type Input struct {
	Length       float64 `json:"length"`        // L (m)
	Diameter     float64 `json:"diameter"`      // D (m)
	HeadLoss     float64 `json:"head_loss"`     // h_f (m)
	RelRoughness float64 `json:"rel_roughness"` // ε/D
	Viscosity    float64 `json:"viscosity"`     // ν (m²/s)
}

// Validate checks the domain of every input
func (in Input) Validate() error {
	if err := hydro.CheckPositive(op, "pipe length", in.Length); err != nil {
		return err
	}
	if err := hydro.CheckPositive(op, "pipe diameter", in.Diameter); err != nil {
		return err
	}
	if err := hydro.CheckNonNegative(op, "head loss", in.HeadLoss); err != nil {
		return err
	}
	if err := hydro.CheckNonNegative(op, "relative roughness", in.RelRoughness); err != nil {
		return err
	}
	return hydro.CheckPositive(op, "kinematic viscosity", in.Viscosity)
}

// Step records one outer iteration
type Step struct {
	Iteration      int     `json:"iteration"`
	Velocity       float64 `json:"velocity"`        // Vₖ₊₁ (m/s)
	Reynolds       float64 `json:"reynolds"`        // Reₖ from Vₖ
	FrictionFactor float64 `json:"friction_factor"` // fₖ
	InnerConverged bool    `json:"inner_converged"`
}

// Result holds the self-consistent velocity and friction factor
type Result struct {
	Velocity        float64 `json:"velocity"`        // V (m/s)
	FlowRate        float64 `json:"flow_rate"`       // Q (m³/s)
	FrictionFactor  float64 `json:"friction_factor"` // f at the last outer step
	Reynolds        float64 `json:"reynolds"`        // Re at the last outer step
	Area            float64 `json:"area"`            // A (m²)
	Iterations      int     `json:"iterations"`
	InnerIterations int     `json:"inner_iterations"` // total Colebrook steps
	Converged       bool    `json:"converged"`
	History         []Step  `json:"history,omitempty"`
}

// Solver couples the Colebrook and Darcy–Weisbach equations
type Solver struct {
	Options hydro.Options

	// Observer, when set, is called after every outer iteration
	Observer func(Step)
}

// NewSolver creates a solver with the given options
func NewSolver(opts hydro.Options) *Solver {
	return &Solver{Options: opts.Normalize()}
}

// Velocity finds the flow velocity V (m/s) and flow rate Q (m³/s) of a pipe
// with the default solver settings
func Velocity(l, d, hf, relRoughness, nu float64) (float64, float64, error) {
	result, err := NewSolver(hydro.DefaultOptions()).Solve(Input{
		Length:       l,
		Diameter:     d,
		HeadLoss:     hf,
		RelRoughness: relRoughness,
		Viscosity:    nu,
	})
	if err != nil {
		return 0, 0, err
	}
	return result.Velocity, result.FlowRate, nil
}

// Solve iterates V₀ = 1 m/s → Re → f (Colebrook) → V until the velocity
// settles or the iteration cap is reached
func (s *Solver) Solve(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	opts := s.Options.Normalize()

	result := &Result{Area: hydro.Area(in.Diameter)}

	// No driving head, no flow
	if in.HeadLoss == 0 {
		result.Converged = true
		return result, nil
	}

	v := hydro.InitialVelocity
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		re, err := hydro.Reynolds(v, in.Diameter, in.Viscosity)
		if err != nil {
			return nil, err
		}

		inner, err := colebrook.Solve(re, in.RelRoughness, opts)
		if err != nil {
			return nil, err
		}
		result.InnerIterations += inner.Iterations

		next := math.Sqrt(2 * opts.Gravity * in.HeadLoss * in.Diameter / (inner.F * in.Length))
		if next, err = hydro.Finite(op, next); err != nil {
			return nil, err
		}

		st := Step{
			Iteration:      iter,
			Velocity:       next,
			Reynolds:       re,
			FrictionFactor: inner.F,
			InnerConverged: inner.Converged,
		}
		result.History = append(result.History, st)
		if s.Observer != nil {
			s.Observer(st)
		}

		result.Iterations = iter
		result.Reynolds = re
		result.FrictionFactor = inner.F

		if math.Abs(next-v) < opts.Tolerance {
			result.Converged = true
			v = next
			break
		}
		v = next
	}

	result.Velocity = v
	result.FlowRate = v * result.Area
	return result, nil
}
