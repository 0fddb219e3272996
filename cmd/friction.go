package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopipe/internal/colebrook"
	"github.com/alexiusacademia/gopipe/internal/diagram"
	"github.com/alexiusacademia/gopipe/internal/hydro"
	"github.com/alexiusacademia/gopipe/internal/report"
)

var (
	frictionReynolds  float64
	frictionRoughness float64

	// Options
	frictionShowDiagram bool
	frictionExportFile  string
	frictionReportFile  string
	frictionStrict      bool
)

var frictionCmd = &cobra.Command{
	Use:   "friction",
	Short: "Darcy friction factor from the Colebrook equation",
	Long: `Solve the Colebrook equation

    1/√f = -2·log10( (ε/D)/3.7 + 2.51/(Re·√f) )

for the Darcy friction factor f by fixed-point iteration, starting
from f = 0.02.

Examples:
  gopipe friction --reynolds 100000 --roughness 0.001
  gopipe friction --reynolds 2.5e5 --roughness 0 --diagram
  gopipe friction --reynolds 1e5 --roughness 0.001 -o colebrook.png`,
	RunE: runFriction,
}

func init() {
	rootCmd.AddCommand(frictionCmd)

	frictionCmd.Flags().Float64Var(&frictionReynolds, "reynolds", 0, "Reynolds number Re [required]")
	frictionCmd.Flags().Float64VarP(&frictionRoughness, "roughness", "e", 0.001, "Relative roughness ε/D")

	frictionCmd.Flags().BoolVar(&frictionShowDiagram, "diagram", false, "Show ASCII convergence plot")
	frictionCmd.Flags().StringVarP(&frictionExportFile, "output", "o", "", "Export convergence plot to file (png, svg, pdf)")
	frictionCmd.Flags().StringVarP(&frictionReportFile, "report", "r", "", "Export report to file (xlsx, pdf)")
	frictionCmd.Flags().BoolVar(&frictionStrict, "strict", false, "Fail if the iteration does not converge")

	frictionCmd.MarkFlagRequired("reynolds")
}

func runFriction(cmd *cobra.Command, args []string) error {
	result, err := colebrook.Solve(frictionReynolds, frictionRoughness, cfg.Options())
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"reynolds":   frictionReynolds,
		"roughness":  frictionRoughness,
		"iterations": result.Iterations,
		"converged":  result.Converged,
	}).Debug("colebrook solved")

	out := cmd.OutOrStdout()
	printHeader(out, "COLEBROOK FRICTION FACTOR")

	printSection(out, "INPUT DATA:",
		fmt.Sprintf("Reynolds Number (Re):\t%.1f", frictionReynolds),
		fmt.Sprintf("Relative Roughness (ε/D):\t%g", frictionRoughness),
		fmt.Sprintf("Initial Guess (f₀):\t%.2f", hydro.InitialFrictionFactor),
		fmt.Sprintf("Tolerance:\t%g", cfg.Solver.Tolerance),
	)

	status := "Converged ✓"
	if !result.Converged {
		status = fmt.Sprintf("NOT converged ⚠ (cap of %d iterations reached)", cfg.Solver.MaxIterations)
	}
	printSection(out, "ITERATION:",
		fmt.Sprintf("Iterations:\t%d", result.Iterations),
		fmt.Sprintf("Status:\t%s", status),
	)

	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Friction Factor f = %.6f", result.F),
	}))
	fmt.Fprintln(out)

	if frictionShowDiagram {
		fmt.Fprintln(out, diagram.DrawConvergence("Friction factor", result.History))
	}

	if frictionExportFile != "" {
		err := diagram.ExportConvergence("Colebrook Iteration", []diagram.Series{
			{Name: "f", Values: result.History},
		}, frictionExportFile)
		if err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "  Diagram exported to: %s\n\n", frictionExportFile)
	}

	if frictionReportFile != "" {
		if err := report.Save(report.FromColebrook(frictionReynolds, frictionRoughness, result), frictionReportFile); err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		fmt.Fprintf(out, "  Report exported to: %s\n\n", frictionReportFile)
	}

	if frictionStrict && !result.Converged {
		return fmt.Errorf("colebrook iteration did not converge within %d iterations", result.Iterations)
	}
	return nil
}
