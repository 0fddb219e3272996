package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopipe/internal/diagram"
	"github.com/alexiusacademia/gopipe/internal/flow"
	"github.com/alexiusacademia/gopipe/internal/report"
)

var (
	flowLength    float64
	flowDiameter  float64
	flowHeadLoss  float64
	flowRoughness float64
	flowViscosity float64

	// Options
	flowShowDiagram bool
	flowShowSketch  bool
	flowExportFile  string
	flowReportFile  string
	flowStrict      bool
)

const noDrivingHead = "n/a (no driving head)"

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Flow velocity and flow rate for a given head loss (Colebrook iteration)",
	Long: `Find the flow velocity V and flow rate Q in a pipe with a known head loss.

The friction factor depends on the Reynolds number, which depends on the
unknown velocity, so both are found together:

  1. Start from V = 1 m/s
  2. Re = V·D/ν
  3. f from the Colebrook equation at Re
  4. V = √(2g·h_f·D / (f·L))
  5. Repeat until V changes by less than the tolerance

Then A = (π/4)·D² and Q = V·A.

Examples:
  gopipe flow --length 100 --diameter 0.1 --headloss 5 --roughness 0.001 --viscosity 1e-6
  gopipe flow -L 100 -D 0.1 --headloss 5 --diagram
  gopipe flow --report flow.xlsx -o convergence.png`,
	RunE: runFlow,
}

func init() {
	rootCmd.AddCommand(flowCmd)

	// Defaults: 100 m of 100 mm pipe carrying water at 20 °C
	flowCmd.Flags().Float64VarP(&flowLength, "length", "L", 100, "Pipe length L (m)")
	flowCmd.Flags().Float64VarP(&flowDiameter, "diameter", "D", 0.1, "Pipe diameter D (m)")
	flowCmd.Flags().Float64Var(&flowHeadLoss, "headloss", 5.0, "Head loss h_f (m)")
	flowCmd.Flags().Float64VarP(&flowRoughness, "roughness", "e", 0.001, "Relative roughness ε/D")
	flowCmd.Flags().Float64Var(&flowViscosity, "viscosity", 1e-6, "Kinematic viscosity ν (m²/s)")

	flowCmd.Flags().BoolVar(&flowShowDiagram, "diagram", false, "Show ASCII convergence plot")
	flowCmd.Flags().BoolVar(&flowShowSketch, "sketch", false, "Show ASCII pipe sketch")
	flowCmd.Flags().StringVarP(&flowExportFile, "output", "o", "", "Export convergence plot to file (png, svg, pdf)")
	flowCmd.Flags().StringVarP(&flowReportFile, "report", "r", "", "Export report to file (xlsx, pdf)")
	flowCmd.Flags().BoolVar(&flowStrict, "strict", false, "Fail if the iteration does not converge")
}

func runFlow(cmd *cobra.Command, args []string) error {
	in := flow.Input{
		Length:       flowLength,
		Diameter:     flowDiameter,
		HeadLoss:     flowHeadLoss,
		RelRoughness: flowRoughness,
		Viscosity:    flowViscosity,
	}

	solver := flow.NewSolver(cfg.Options())
	solver.Observer = func(st flow.Step) {
		log.WithFields(log.Fields{
			"iteration": st.Iteration,
			"reynolds":  st.Reynolds,
			"f":         st.FrictionFactor,
			"velocity":  st.Velocity,
		}).Debug("outer step")
	}
	result, err := solver.Solve(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "PIPE FLOW - COLEBROOK / DARCY–WEISBACH")

	printSection(out, "INPUT DATA:",
		fmt.Sprintf("Pipe Length (L):\t%.3f m", in.Length),
		fmt.Sprintf("Pipe Diameter (D):\t%.4f m", in.Diameter),
		fmt.Sprintf("Head Loss (h_f):\t%.4f m", in.HeadLoss),
		fmt.Sprintf("Relative Roughness (ε/D):\t%g", in.RelRoughness),
		fmt.Sprintf("Kinematic Viscosity (ν):\t%g m²/s", in.Viscosity),
	)

	status := "Converged ✓"
	if !result.Converged {
		status = fmt.Sprintf("NOT converged ⚠ (cap of %d iterations reached)", cfg.Solver.MaxIterations)
	}
	reynolds := fmt.Sprintf("%.1f", result.Reynolds)
	friction := fmt.Sprintf("%.6f", result.FrictionFactor)
	if result.Iterations == 0 {
		// h_f = 0: the fluid is at rest and neither quantity is defined
		reynolds, friction = noDrivingHead, noDrivingHead
	}
	printSection(out, "FLOW PROPERTIES:",
		fmt.Sprintf("Reynolds Number (Re):\t%s", reynolds),
		fmt.Sprintf("Friction Factor (f):\t%s", friction),
		fmt.Sprintf("Cross-sectional Area (A):\t%.6f m²", result.Area),
		fmt.Sprintf("Outer Iterations:\t%d", result.Iterations),
		fmt.Sprintf("Colebrook Iterations:\t%d", result.InnerIterations),
		fmt.Sprintf("Status:\t%s", status),
	)

	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Flow Velocity (V): %.4f m/s", result.Velocity),
		fmt.Sprintf("Flow Rate (Q):     %.6f m³/s", result.FlowRate),
	}))
	fmt.Fprintln(out)

	velocities := make([]float64, len(result.History))
	frictions := make([]float64, len(result.History))
	for i, st := range result.History {
		velocities[i] = st.Velocity
		frictions[i] = st.FrictionFactor
	}

	if flowShowDiagram {
		fmt.Fprintln(out, diagram.DrawConvergence("Velocity (m/s)", velocities))
		fmt.Fprintln(out, diagram.DrawConvergence("Friction factor", frictions))
	}

	if flowShowSketch {
		fmt.Fprintln(out, diagram.DrawPipeSketch(diagram.PipeSketchData{
			Length:   in.Length,
			Diameter: in.Diameter,
			Velocity: result.Velocity,
			HeadLoss: in.HeadLoss,
			FlowRate: result.FlowRate,
		}))
	}

	if flowExportFile != "" {
		err := diagram.ExportConvergence("Velocity / Friction Factor Iteration", []diagram.Series{
			{Name: "V (m/s)", Values: velocities},
			{Name: "f x 100", Values: scale(frictions, 100)},
		}, flowExportFile)
		if err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "  Diagram exported to: %s\n\n", flowExportFile)
	}

	if flowReportFile != "" {
		if err := report.Save(report.FromFlow(in, result), flowReportFile); err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		fmt.Fprintf(out, "  Report exported to: %s\n\n", flowReportFile)
	}

	if flowStrict && !result.Converged {
		return fmt.Errorf("velocity iteration did not converge within %d iterations", result.Iterations)
	}
	return nil
}

// scale brings f (≈0.02) onto the same axis as V (≈1 m/s)
func scale(values []float64, k float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * k
	}
	return out
}
