package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hardliner66/mms-go/internal/bot"
	"github.com/hardliner66/mms-go/internal/storage"
	"github.com/hardliner66/mms-go/mms"
)

var (
	flagGoalX     int
	flagGoalY     int
	flagMaxSteps  int
	flagMarkTrail bool
	flagRecord    bool
	flagMazeID    string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run the left wall following mouse",
	Long: `Run the mouse on stdin/stdout, the way the mms simulator invokes
a mouse subprocess. Commands go to stdout, replies come from stdin, and
all logging goes to stderr.

Point the simulator at this binary, or test it against the built-in
simulator:

  mms sim -- mms solve --mark-trail`,
	Args: cobra.NoArgs,
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagGoalX, "goal-x", -1, "Goal cell x (-1 = maze center)")
	solveCmd.Flags().IntVar(&flagGoalY, "goal-y", -1, "Goal cell y (-1 = maze center)")
	solveCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Abort after this many moves (0 = unlimited)")
	solveCmd.Flags().BoolVar(&flagMarkTrail, "mark-trail", false, "Color visited cells in the simulator")
	solveCmd.Flags().BoolVar(&flagRecord, "record", false, "Record run statistics to the database")
	solveCmd.Flags().StringVar(&flagMazeID, "maze-id", "default", "Maze name for recorded runs")
}

func runSolve(cmd *cobra.Command, args []string) {
	logger := newLogger("solve")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt := bot.Options{
		MaxSteps:  flagMaxSteps,
		MarkTrail: flagMarkTrail,
		Logger:    logger,
	}
	if flagGoalX >= 0 && flagGoalY >= 0 {
		opt.Goal = &bot.Cell{X: flagGoalX, Y: flagGoalY}
	}

	client := mms.NewStdio()
	start := time.Now()
	res, err := bot.Run(ctx, client, opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("run finished", "steps", res.Steps, "resets", res.Resets)

	if flagRecord {
		if err := recordRun(client, time.Since(start), res); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
			os.Exit(1)
		}
	}
}

// recordRun queries the simulator's run statistics and stores them.
func recordRun(client *mms.Client, elapsed time.Duration, res bot.Result) error {
	distance, err := client.GetStat(mms.StatBestRunDistance)
	if err != nil {
		return err
	}
	turns, err := client.GetStat(mms.StatBestRunTurns)
	if err != nil {
		return err
	}
	effective, err := client.GetStat(mms.StatBestRunEffectiveDistance)
	if err != nil {
		return err
	}
	score, err := client.GetStat(mms.StatScore)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	outcome := storage.OutcomeFinished
	switch {
	case !res.Reached:
		outcome = storage.OutcomeAborted
	case res.Resets > 0:
		outcome = storage.OutcomeCrashed
	}
	_, err = store.SaveRun(storage.RunRecord{
		MazeID:            flagMazeID,
		Outcome:           outcome,
		Distance:          int(distance.Int),
		Turns:             int(turns.Int),
		EffectiveDistance: float64(effective.Float),
		Score:             float64(score.Float),
		Duration:          elapsed,
	})
	return err
}
