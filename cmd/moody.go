package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopipe/internal/diagram"
	"github.com/alexiusacademia/gopipe/internal/moody"
)

var (
	moodyExportFile  string
	moodyReMin       float64
	moodyReMax       float64
	moodyPoints      int
	moodyRoughnesses []float64
	moodyLaminar     bool
)

var moodyCmd = &cobra.Command{
	Use:   "moody",
	Short: "Export a Moody diagram computed from the Colebrook equation",
	Long: `Compute Colebrook friction factor curves over a log-spaced range of
Reynolds numbers, one curve per relative roughness, and export them as
a log-log Moody diagram.

Examples:
  gopipe moody -o moody.png
  gopipe moody -o moody.svg --re-min 1e4 --re-max 1e7 --roughness 0,0.0001,0.001,0.01`,
	RunE: runMoody,
}

func init() {
	rootCmd.AddCommand(moodyCmd)

	moodyCmd.Flags().StringVarP(&moodyExportFile, "output", "o", "moody.png", "Output file (png, svg, pdf)")
	moodyCmd.Flags().Float64Var(&moodyReMin, "re-min", moody.DefaultReMin, "Smallest Reynolds number")
	moodyCmd.Flags().Float64Var(&moodyReMax, "re-max", moody.DefaultReMax, "Largest Reynolds number")
	moodyCmd.Flags().IntVar(&moodyPoints, "points", moody.DefaultPoints, "Points per curve")
	moodyCmd.Flags().Float64SliceVar(&moodyRoughnesses, "roughness", moody.DefaultRoughnesses, "Relative roughness values ε/D")
	moodyCmd.Flags().BoolVar(&moodyLaminar, "laminar", true, "Include the laminar line f = 64/Re")
}

func runMoody(cmd *cobra.Command, args []string) error {
	curves, err := moody.Generate(moody.Config{
		ReMin:       moodyReMin,
		ReMax:       moodyReMax,
		Points:      moodyPoints,
		Roughnesses: moodyRoughnesses,
		Options:     cfg.Options(),
	})
	if err != nil {
		return err
	}

	var laminar []moody.Point
	if moodyLaminar {
		laminar = moody.Laminar(600, 2300, 20)
	}
	if err := diagram.ExportMoodyDiagram(curves, laminar, moodyExportFile); err != nil {
		return fmt.Errorf("exporting diagram: %w", err)
	}

	out := cmd.OutOrStdout()
	lo, hi := moody.Range(curves)
	printHeader(out, "MOODY DIAGRAM")
	printSection(out, "CHART:",
		fmt.Sprintf("Reynolds Range:\t%.3g – %.3g", moodyReMin, moodyReMax),
		fmt.Sprintf("Curves:\t%d", len(curves)),
		fmt.Sprintf("Points per Curve:\t%d", moodyPoints),
		fmt.Sprintf("Friction Factor Range:\t%.4f – %.4f", lo, hi),
	)
	fmt.Fprintf(out, "  Diagram exported to: %s\n\n", moodyExportFile)
	return nil
}
