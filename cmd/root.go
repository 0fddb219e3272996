package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopipe/internal/config"
	"github.com/alexiusacademia/gopipe/internal/version"
)

var (
	configFile string
	logLevel   string

	// cfg is loaded before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gopipe",
	Short: "Pipe-flow head loss and friction factor calculator",
	Long: `gopipe - Go Pipe Flow Calculator

A CLI tool for quick hydraulic calculations on full circular pipes.

This tool helps students and engineers:
  - Solve the Darcy–Weisbach equation for head loss, velocity or diameter
  - Find the Darcy friction factor from the Colebrook equation
  - Find the flow velocity and flow rate for a given head loss
  - Plot Moody diagrams and export calculation reports

All calculations use SI units with g = 9.81 m/s² unless configured otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		if err := loaded.ApplyLogLevel(); err != nil {
			return err
		}
		cfg = loaded
		log.WithFields(log.Fields{
			"gravity":        cfg.Solver.Gravity,
			"tolerance":      cfg.Solver.Tolerance,
			"max_iterations": cfg.Solver.MaxIterations,
		}).Debug("configuration loaded")
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gopipe v%-48s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Pipe Flow Calculator                                 ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Darcy–Weisbach head loss, velocity and diameter")
		fmt.Fprintln(out, "    • Colebrook friction factor by fixed-point iteration")
		fmt.Fprintln(out, "    • Coupled velocity / friction factor solution with flow rate")
		fmt.Fprintln(out, "    • Moody diagram export (png, svg, pdf)")
		fmt.Fprintln(out, "    • Excel and PDF calculation reports")
		fmt.Fprintln(out, "    • HTTP / websocket API for form front-ends")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gopipe --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to ini config file (default ./gopipe.ini if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
