package darcy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unknown selects which Darcy–Weisbach quantity is solved for
type Unknown int

// Quantities that can be solved for
const (
	HeadLoss Unknown = iota + 1
	Velocity
	Diameter
)

func (u Unknown) String() string {
	switch u {
	case HeadLoss:
		return "headloss"
	case Velocity:
		return "velocity"
	case Diameter:
		return "diameter"
	}
	return fmt.Sprintf("unknown(%d)", int(u))
}

// ParseUnknown accepts the names used by the CLI and the HTTP API
func ParseUnknown(s string) (Unknown, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "headloss", "head-loss", "head_loss", "pressure-drop", "pressure_drop", "hf":
		return HeadLoss, nil
	case "velocity", "flow-velocity", "flow_velocity", "v":
		return Velocity, nil
	case "diameter", "pipe-diameter", "pipe_diameter", "d":
		return Diameter, nil
	}
	return 0, fmt.Errorf("unknown quantity %q: expected headloss, velocity or diameter", s)
}

// MarshalJSON encodes u by its name, e.g. "headloss"
func (u Unknown) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON accepts any name ParseUnknown does
func (u *Unknown) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUnknown(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Problem holds the four Darcy–Weisbach quantities. The field named by
// Unknown is ignored on input.
type Problem struct {
	Unknown        Unknown `json:"unknown"`
	Length         float64 `json:"length"`          // L (m)
	Diameter       float64 `json:"diameter"`        // D (m)
	Velocity       float64 `json:"velocity"`        // V (m/s)
	HeadLoss       float64 `json:"head_loss"`       // h_f (m)
	FrictionFactor float64 `json:"friction_factor"` // f
}

// Result holds the solved value and the completed set of quantities
type Result struct {
	Unknown        Unknown `json:"unknown"`
	Value          float64 `json:"value"`
	Length         float64 `json:"length"`
	Diameter       float64 `json:"diameter"`
	Velocity       float64 `json:"velocity"`
	HeadLoss       float64 `json:"head_loss"`
	FrictionFactor float64 `json:"friction_factor"`
}

// Unit returns the SI unit of the solved quantity
func (r *Result) Unit() string {
	if r.Unknown == Velocity {
		return "m/s"
	}
	return "m"
}

// Solve computes the unknown quantity of p
func (s *Solver) Solve(p Problem) (*Result, error) {
	result := &Result{
		Unknown:        p.Unknown,
		Length:         p.Length,
		Diameter:       p.Diameter,
		Velocity:       p.Velocity,
		HeadLoss:       p.HeadLoss,
		FrictionFactor: p.FrictionFactor,
	}

	var err error
	switch p.Unknown {
	case HeadLoss:
		result.HeadLoss, err = s.PressureDrop(p.Length, p.Diameter, p.Velocity, p.FrictionFactor)
		result.Value = result.HeadLoss
	case Velocity:
		result.Velocity, err = s.FlowVelocity(p.Length, p.Diameter, p.HeadLoss, p.FrictionFactor)
		result.Value = result.Velocity
	case Diameter:
		result.Diameter, err = s.PipeDiameter(p.Length, p.Velocity, p.HeadLoss, p.FrictionFactor)
		result.Value = result.Diameter
	default:
		return nil, fmt.Errorf("no unknown selected: %v", p.Unknown)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Solve computes the unknown quantity of p using g = 9.81 m/s²
func Solve(p Problem) (*Result, error) {
	return std.Solve(p)
}
