package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexiusacademia/gopipe/internal/colebrook"
	"github.com/alexiusacademia/gopipe/internal/darcy"
	"github.com/alexiusacademia/gopipe/internal/flow"
)

// Entry is one labelled quantity in a report
type Entry struct {
	Name  string
	Value float64
	Unit  string
}

// Report is a printable record of one calculation
type Report struct {
	Title     string
	Generated time.Time
	Inputs    []Entry
	Outputs   []Entry
	Notes     []string

	// Iteration history, empty for direct calculations
	FrictionHistory []float64
	Steps           []flow.Step
}

// FromDarcy builds a report for a direct Darcy–Weisbach calculation
func FromDarcy(r *darcy.Result) *Report {
	all := map[darcy.Unknown]Entry{
		darcy.HeadLoss: {"Head loss", r.HeadLoss, "m"},
		darcy.Velocity: {"Flow velocity", r.Velocity, "m/s"},
		darcy.Diameter: {"Pipe diameter", r.Diameter, "m"},
	}

	rep := &Report{
		Title:     "Darcy–Weisbach Calculation",
		Generated: time.Now(),
		Inputs:    []Entry{{"Pipe length", r.Length, "m"}},
	}
	for _, u := range []darcy.Unknown{darcy.Diameter, darcy.Velocity, darcy.HeadLoss} {
		if u != r.Unknown {
			rep.Inputs = append(rep.Inputs, all[u])
		}
	}
	rep.Inputs = append(rep.Inputs, Entry{"Friction factor", r.FrictionFactor, ""})
	rep.Outputs = []Entry{all[r.Unknown]}
	return rep
}

// FromColebrook builds a report for a friction factor solve
func FromColebrook(re, relRoughness float64, r *colebrook.Result) *Report {
	rep := &Report{
		Title:     "Colebrook Friction Factor",
		Generated: time.Now(),
		Inputs: []Entry{
			{"Reynolds number", re, ""},
			{"Relative roughness", relRoughness, ""},
		},
		Outputs: []Entry{
			{"Friction factor", r.F, ""},
			{"Iterations", float64(r.Iterations), ""},
		},
		FrictionHistory: r.History,
	}
	rep.Notes = convergenceNote(r.Converged, r.Iterations)
	return rep
}

// FromFlow builds a report for a coupled velocity solve
func FromFlow(in flow.Input, r *flow.Result) *Report {
	rep := &Report{
		Title:     "Pipe Flow (Colebrook / Darcy–Weisbach)",
		Generated: time.Now(),
		Inputs: []Entry{
			{"Pipe length", in.Length, "m"},
			{"Pipe diameter", in.Diameter, "m"},
			{"Head loss", in.HeadLoss, "m"},
			{"Relative roughness", in.RelRoughness, ""},
			{"Kinematic viscosity", in.Viscosity, "m²/s"},
		},
		Outputs: []Entry{
			{"Flow velocity", r.Velocity, "m/s"},
			{"Flow rate", r.FlowRate, "m³/s"},
			{"Friction factor", r.FrictionFactor, ""},
			{"Reynolds number", r.Reynolds, ""},
			{"Cross-sectional area", r.Area, "m²"},
			{"Outer iterations", float64(r.Iterations), ""},
			{"Colebrook iterations", float64(r.InnerIterations), ""},
		},
		Steps: r.History,
	}
	if r.Iterations == 0 {
		// Drop f and Re, which are undefined for a fluid at rest
		rep.Outputs = append(rep.Outputs[:2], rep.Outputs[4:]...)
		rep.Notes = []string{"No driving head: the fluid is at rest, f and Re are undefined."}
		return rep
	}
	rep.Notes = convergenceNote(r.Converged, r.Iterations)
	return rep
}

func convergenceNote(converged bool, iterations int) []string {
	if converged {
		return []string{fmt.Sprintf("Converged after %d iterations.", iterations)}
	}
	return []string{fmt.Sprintf("WARNING: iteration cap of %d reached without convergence; the last estimate is reported.", iterations)}
}

// Save writes the report to path, choosing the format from its extension
func Save(r *Report, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return SaveXLSX(r, path)
	case ".pdf":
		return SavePDF(r, path)
	}
	return fmt.Errorf("unsupported report format %q (use .xlsx or .pdf)", filepath.Ext(path))
}
