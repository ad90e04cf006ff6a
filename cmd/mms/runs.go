package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hardliner66/mms-go/internal/storage"
)

var (
	flagAll   bool
	flagLimit int
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <maze>",
	Short: "Show recorded runs for a maze",
	Long: `Display the best recorded runs for the given maze, shortest
distance first.

Examples:
  mms runs default
  mms runs spiral --all
  mms runs default --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagAll, "all", false, "Show every run, newest first")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of best runs to show")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs for the maze")
}

func runRuns(cmd *cobra.Command, args []string) {
	mazeID := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(mazeID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs for %q.\n", mazeID)
		return
	}

	var records []storage.RunRecord
	if flagAll {
		records, err = store.AllRuns(mazeID)
	} else {
		records, err = store.BestRuns(mazeID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Runs - %s\n", mazeID)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'mms sim --save -- mms solve' to record the first one.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-10s  %-9s  %s\n",
		"Rank", "Outcome", "Distance", "Turns", "Effective", "Duration", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-10s  %-9s  %s\n",
		"----", "-------", "--------", "-----", "---------", "--------", "----")

	// Print runs
	for i, r := range records {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-9d  %-6d  %-10.1f  %-9s  %s\n",
			i+1, r.Outcome, r.Distance, r.Turns, r.EffectiveDistance, r.Duration.Round(time.Millisecond), dateStr)
	}

	// Show shortest distance
	fmt.Println()
	shortest, err := store.ShortestDistance(mazeID)
	if err == nil && shortest > 0 {
		fmt.Printf("Best: %d cells\n", shortest)
	}
}
