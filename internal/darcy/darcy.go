package darcy

import (
	"math"

	"github.com/alexiusacademia/gopipe/internal/hydro"
)

// Solver evaluates the Darcy–Weisbach equation h_f = f·(L/D)·(V²/2g)
// for one unknown at a time.
type Solver struct {
	Gravity float64 // m/s²
}

// NewSolver creates a solver with the given gravitational acceleration.
// A non-positive value falls back to hydro.G.
func NewSolver(gravity float64) *Solver {
	if gravity <= 0 {
		gravity = hydro.G
	}
	return &Solver{Gravity: gravity}
}

var std = NewSolver(hydro.G)

// PressureDrop calculates the head loss h_f (m) using g = 9.81 m/s²
func PressureDrop(l, d, v, f float64) (float64, error) {
	return std.PressureDrop(l, d, v, f)
}

// FlowVelocity calculates the mean flow velocity V (m/s) using g = 9.81 m/s²
func FlowVelocity(l, d, hf, f float64) (float64, error) {
	return std.FlowVelocity(l, d, hf, f)
}

// PipeDiameter calculates the pipe diameter D (m) using g = 9.81 m/s²
func PipeDiameter(l, v, hf, f float64) (float64, error) {
	return std.PipeDiameter(l, v, hf, f)
}

// PressureDrop calculates h_f = f·(L/D)·(V²/(2g))
func (s *Solver) PressureDrop(l, d, v, f float64) (float64, error) {
	const op = "pressure drop"
	if err := hydro.CheckPositive(op, "pipe diameter", d); err != nil {
		return 0, err
	}
	if err := checkInputs(op, map[string]float64{"pipe length": l, "flow velocity": v, "friction factor": f}); err != nil {
		return 0, err
	}

	hf := f * (l / d) * (v * v / (2 * s.Gravity))
	return hydro.Finite(op, hf)
}

// FlowVelocity calculates V = √(2g·h_f·D / (f·L))
func (s *Solver) FlowVelocity(l, d, hf, f float64) (float64, error) {
	const op = "flow velocity"
	if err := hydro.CheckPositive(op, "friction factor", f); err != nil {
		return 0, err
	}
	if err := hydro.CheckPositive(op, "pipe length", l); err != nil {
		return 0, err
	}
	if err := checkInputs(op, map[string]float64{"pipe diameter": d, "head loss": hf}); err != nil {
		return 0, err
	}

	v := math.Sqrt(2 * s.Gravity * hf * d / (f * l))
	return hydro.Finite(op, v)
}

// PipeDiameter calculates D = f·L·V² / (2g·h_f)
func (s *Solver) PipeDiameter(l, v, hf, f float64) (float64, error) {
	const op = "pipe diameter"
	if err := hydro.CheckPositive(op, "head loss", hf); err != nil {
		return 0, err
	}
	if err := checkInputs(op, map[string]float64{"pipe length": l, "flow velocity": v, "friction factor": f}); err != nil {
		return 0, err
	}

	d := f * l * v * v / (2 * s.Gravity * hf)
	return hydro.Finite(op, d)
}

// checkInputs rejects negative or non-finite values for the quantities
// that only need to be non-negative. Keys are checked in a fixed order so
// the reported quantity is deterministic.
func checkInputs(op string, values map[string]float64) error {
	for _, name := range []string{"pipe length", "pipe diameter", "flow velocity", "head loss", "friction factor"} {
		value, ok := values[name]
		if !ok {
			continue
		}
		if err := hydro.CheckNonNegative(op, name, value); err != nil {
			return err
		}
	}
	return nil
}
