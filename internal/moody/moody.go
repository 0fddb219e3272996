package moody

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gopipe/internal/colebrook"
	"github.com/alexiusacademia/gopipe/internal/hydro"
)

// DefaultRoughnesses are the relative roughness curves of a standard Moody chart
var DefaultRoughnesses = []float64{0, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 1e-2, 2e-2, 5e-2}

// Turbulent range covered by the Colebrook correlation
const (
	DefaultReMin  = 4e3
	DefaultReMax  = 1e8
	DefaultPoints = 60
)

// Point is one sample of a Moody curve
type Point struct {
	Reynolds       float64
	FrictionFactor float64
}

// Curve is the friction factor over Reynolds number for one relative roughness
type Curve struct {
	RelRoughness float64
	Points       []Point
}

// Label returns the legend text for the curve
func (c Curve) Label() string {
	if c.RelRoughness == 0 {
		return "smooth"
	}
	return fmt.Sprintf("ε/D=%g", c.RelRoughness)
}

// Config controls the chart grid
type Config struct {
	ReMin       float64
	ReMax       float64
	Points      int
	Roughnesses []float64
	Options     hydro.Options
}

// DefaultConfig returns the standard chart settings
func DefaultConfig() Config {
	return Config{
		ReMin:       DefaultReMin,
		ReMax:       DefaultReMax,
		Points:      DefaultPoints,
		Roughnesses: DefaultRoughnesses,
		Options:     hydro.DefaultOptions(),
	}
}

// Generate evaluates the Colebrook friction factor on a log-spaced Reynolds grid
func Generate(cfg Config) ([]Curve, error) {
	if err := hydro.CheckPositive("moody", "minimum reynolds number", cfg.ReMin); err != nil {
		return nil, err
	}
	if cfg.ReMax <= cfg.ReMin {
		return nil, fmt.Errorf("moody: maximum reynolds number %g must exceed minimum %g", cfg.ReMax, cfg.ReMin)
	}
	if cfg.Points < 2 {
		return nil, fmt.Errorf("moody: need at least 2 points per curve, got %d", cfg.Points)
	}
	roughnesses := cfg.Roughnesses
	if len(roughnesses) == 0 {
		roughnesses = DefaultRoughnesses
	}

	grid := floats.LogSpan(make([]float64, cfg.Points), cfg.ReMin, cfg.ReMax)

	curves := make([]Curve, 0, len(roughnesses))
	for _, rr := range roughnesses {
		curve := Curve{RelRoughness: rr, Points: make([]Point, 0, len(grid))}
		for _, re := range grid {
			res, err := colebrook.Solve(re, rr, cfg.Options)
			if err != nil {
				return nil, fmt.Errorf("moody: ε/D=%g Re=%g: %w", rr, re, err)
			}
			curve.Points = append(curve.Points, Point{Reynolds: re, FrictionFactor: res.F})
		}
		curves = append(curves, curve)
	}
	return curves, nil
}

// Laminar samples the laminar friction line f = 64/Re between reMin and reMax
func Laminar(reMin, reMax float64, points int) []Point {
	if reMin <= 0 || reMax <= reMin || points < 2 {
		return nil
	}
	grid := floats.LogSpan(make([]float64, points), reMin, reMax)
	out := make([]Point, len(grid))
	for i, re := range grid {
		out[i] = Point{Reynolds: re, FrictionFactor: 64 / re}
	}
	return out
}

// Range returns the smallest and largest friction factor across all curves
func Range(curves []Curve) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range curves {
		for _, p := range c.Points {
			lo = math.Min(lo, p.FrictionFactor)
			hi = math.Max(hi, p.FrictionFactor)
		}
	}
	return lo, hi
}
