// mms is a micromouse toolkit: a maze-solving mouse that speaks the mms
// simulator protocol on its standard streams, a standalone simulator that
// runs a mouse subprocess, and a run history viewer.
//
// Usage:
//
//	mms solve                - Run the mouse (invoked by the simulator)
//	mms sim <mouse> [args]   - Simulate a maze against a mouse command
//	mms runs <maze>          - Show recorded runs for a maze
//
// Global flags:
//
//	--db <path>          - Path to the run database (default: ~/.mms/runs.db)
//	--log-level <level>  - Log verbosity: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mms",
	Short: "Micromouse toolkit for the mms simulator protocol",
	Long: `mms solves and simulates micromouse mazes using the mms simulator
line protocol.

Available commands:
  solve  - Run the left wall following mouse on stdin/stdout
  sim    - Run a maze simulation against a mouse subprocess
  runs   - View recorded runs

Examples:
  mms sim ./my-mouse
  mms sim --maze ./mazes/spiral.yaml -- mms solve
  mms runs default`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mms/runs.db", "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log verbosity: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger creates a stderr logger at the configured level. Stdout stays
// reserved for the protocol wire.
func newLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", flagLogLevel)
		os.Exit(1)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: prefix})
	logger.SetLevel(level)
	return logger
}
