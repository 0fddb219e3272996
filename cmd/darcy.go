package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopipe/internal/darcy"
	"github.com/alexiusacademia/gopipe/internal/diagram"
	"github.com/alexiusacademia/gopipe/internal/hydro"
	"github.com/alexiusacademia/gopipe/internal/report"
)

var (
	// Darcy–Weisbach inputs
	darcyLength   float64
	darcyDiameter float64
	darcyVelocity float64
	darcyHeadLoss float64
	darcyFriction float64

	// Options
	darcyShowSketch bool
	darcyReportFile string
)

var darcyCmd = &cobra.Command{
	Use:   "darcy",
	Short: "Darcy–Weisbach head loss, velocity or diameter with a known friction factor",
	Long: `Solve the Darcy–Weisbach equation

    h_f = f · (L/D) · V² / (2g)

for one unknown given the other three quantities and a constant
friction factor f.

Subcommands:
  headloss  - Head loss h_f from L, D, V, f
  velocity  - Flow velocity V from L, D, h_f, f
  diameter  - Pipe diameter D from L, V, h_f, f`,
}

var darcyHeadLossCmd = &cobra.Command{
	Use:   "headloss",
	Short: "Calculate the head loss (pressure drop) in a pipe",
	Long: `Calculate the head loss h_f = f·(L/D)·V²/(2g).

Examples:
  gopipe darcy headloss --length 100 --diameter 0.1 --velocity 2 --friction 0.02
  gopipe darcy headloss -L 100 -D 0.1 -V 2 -f 0.02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDarcy(cmd, darcy.HeadLoss)
	},
}

var darcyVelocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Calculate the flow velocity in a pipe",
	Long: `Calculate the flow velocity V = √(2g·h_f·D / (f·L)).

Examples:
  gopipe darcy velocity --length 100 --diameter 0.1 --headloss 5 --friction 0.02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDarcy(cmd, darcy.Velocity)
	},
}

var darcyDiameterCmd = &cobra.Command{
	Use:   "diameter",
	Short: "Calculate the pipe diameter",
	Long: `Calculate the pipe diameter D = f·L·V² / (2g·h_f).

Examples:
  gopipe darcy diameter --length 100 --velocity 2 --headloss 5 --friction 0.02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDarcy(cmd, darcy.Diameter)
	},
}

func init() {
	rootCmd.AddCommand(darcyCmd)

	// Defaults: 100 m of 100 mm pipe, f = 0.02
	for _, c := range []*cobra.Command{darcyHeadLossCmd, darcyVelocityCmd, darcyDiameterCmd} {
		darcyCmd.AddCommand(c)

		c.Flags().Float64VarP(&darcyLength, "length", "L", 100, "Pipe length L (m)")
		c.Flags().Float64VarP(&darcyFriction, "friction", "f", 0.02, "Darcy friction factor f")
		c.Flags().BoolVar(&darcyShowSketch, "sketch", false, "Show ASCII pipe sketch")
		c.Flags().StringVarP(&darcyReportFile, "report", "r", "", "Export report to file (xlsx, pdf)")
	}

	darcyHeadLossCmd.Flags().Float64VarP(&darcyDiameter, "diameter", "D", 0.1, "Pipe diameter D (m)")
	darcyHeadLossCmd.Flags().Float64VarP(&darcyVelocity, "velocity", "V", 2.0, "Flow velocity V (m/s)")

	darcyVelocityCmd.Flags().Float64VarP(&darcyDiameter, "diameter", "D", 0.1, "Pipe diameter D (m)")
	darcyVelocityCmd.Flags().Float64Var(&darcyHeadLoss, "headloss", 5.0, "Head loss h_f (m)")

	darcyDiameterCmd.Flags().Float64VarP(&darcyVelocity, "velocity", "V", 2.0, "Flow velocity V (m/s)")
	darcyDiameterCmd.Flags().Float64Var(&darcyHeadLoss, "headloss", 5.0, "Head loss h_f (m)")
}

func runDarcy(cmd *cobra.Command, unknown darcy.Unknown) error {
	solver := darcy.NewSolver(cfg.Solver.Gravity)
	result, err := solver.Solve(darcy.Problem{
		Unknown:        unknown,
		Length:         darcyLength,
		Diameter:       darcyDiameter,
		Velocity:       darcyVelocity,
		HeadLoss:       darcyHeadLoss,
		FrictionFactor: darcyFriction,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "DARCY–WEISBACH PIPE FLOW")

	inputs := []string{fmt.Sprintf("Pipe Length (L):\t%.3f m", result.Length)}
	if unknown != darcy.Diameter {
		inputs = append(inputs, fmt.Sprintf("Pipe Diameter (D):\t%.4f m", result.Diameter))
	}
	if unknown != darcy.Velocity {
		inputs = append(inputs, fmt.Sprintf("Flow Velocity (V):\t%.4f m/s", result.Velocity))
	}
	if unknown != darcy.HeadLoss {
		inputs = append(inputs, fmt.Sprintf("Head Loss (h_f):\t%.4f m", result.HeadLoss))
	}
	inputs = append(inputs,
		fmt.Sprintf("Friction Factor (f):\t%.4f", result.FrictionFactor),
		fmt.Sprintf("Gravity (g):\t%.4g m/s²", solver.Gravity),
	)
	printSection(out, "INPUT DATA:", inputs...)

	var label string
	switch unknown {
	case darcy.HeadLoss:
		label = "Pressure Drop (Head Loss)"
	case darcy.Velocity:
		label = "Flow Velocity"
	case darcy.Diameter:
		label = "Pipe Diameter"
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("%s: %.4f %s", label, result.Value, result.Unit()),
	}))
	fmt.Fprintln(out)

	if darcyShowSketch {
		fmt.Fprintln(out, diagram.DrawPipeSketch(diagram.PipeSketchData{
			Length:   result.Length,
			Diameter: result.Diameter,
			Velocity: result.Velocity,
			HeadLoss: result.HeadLoss,
			FlowRate: hydro.FlowRate(result.Velocity, result.Diameter),
		}))
	}

	if darcyReportFile != "" {
		if err := report.Save(report.FromDarcy(result), darcyReportFile); err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		fmt.Fprintf(out, "  Report exported to: %s\n\n", darcyReportFile)
	}
	return nil
}
