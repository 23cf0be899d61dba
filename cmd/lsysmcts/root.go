// Package main is the lsysmcts CLI: a thin cobra wrapper around
// pkg/lsysmcts.Solve, the driver's one real user-facing entry point
// (the teacher ships no CLI of its own; this mirrors _examples/rand-recurse
// and _examples/nihei9-vartan's cobra root-command-plus-subcommands shape).
//
//go:generate go run ../../scripts/generate_examples_manifest -pkg ../.. -out ../../examples_manifest.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "lsysmcts",
	Short: "Search for a parametric L-system derivation matching a target image",
	Long: `lsysmcts runs a Monte Carlo tree search over parametric L-system
derivations, scoring each candidate against a target raster image, and
reports the best derivation found.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a lsysmcts.yaml config file (defaults layered under LSYSMCTS_ env vars)")
	rootCmd.AddCommand(solveCmd, grammarsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
