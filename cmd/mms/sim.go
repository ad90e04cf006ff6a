package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hardliner66/mms-go/internal/config"
	"github.com/hardliner66/mms-go/internal/sim"
	"github.com/hardliner66/mms-go/internal/storage"
)

var (
	flagMaze    string
	flagTimeout time.Duration
	flagSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim [flags] -- <mouse> [args...]",
	Short: "Run a maze simulation against a mouse subprocess",
	Long: `Launch the given mouse command as a subprocess and speak the
simulator protocol over its standard streams. The mouse's commands are
read from its stdout and replies are written to its stdin; its stderr
passes through.

Without --maze the built-in default maze is used.

Examples:
  mms sim -- ./my-mouse
  mms sim --maze ./mazes/spiral.yaml -- mms solve --mark-trail
  mms sim --timeout 30s --save -- mms solve`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagMaze, "maze", "", "Path to a maze YAML file")
	simCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Abort the run after this long (0 = no limit)")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run to the database")
}

func runSim(cmd *cobra.Command, args []string) {
	logger := newLogger("sim")

	cfg, err := config.LoadMaze(flagMaze)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading maze: %v\n", err)
		os.Exit(1)
	}
	engine, err := sim.FromConfig(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building maze: %v\n", err)
		os.Exit(1)
	}
	logger.Info("maze loaded", "name", cfg.Name, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

	ctx := context.Background()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	start := time.Now()
	outcome, err := runMouse(ctx, engine, args, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	stats := engine.Stats()
	fmt.Printf("Run %s in %s\n", outcome, elapsed.Round(time.Millisecond))
	fmt.Printf("  distance:           %d\n", stats.TotalDistance)
	fmt.Printf("  turns:              %d\n", stats.TotalTurns)
	fmt.Printf("  effective distance: %.1f\n", stats.TotalEffectiveDistance)
	if stats.BestRunDistance >= 0 {
		fmt.Printf("  best run:           %d cells, %d turns\n", stats.BestRunDistance, stats.BestRunTurns)
	}

	if flagSave {
		if err := saveSimRun(cfg, outcome, stats, elapsed); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
			os.Exit(1)
		}
	}
}

// runMouse launches the mouse command and serves the protocol until the
// mouse exits or the context expires.
func runMouse(ctx context.Context, engine *sim.Engine, args []string, logger *log.Logger) (string, error) {
	mouse := exec.CommandContext(ctx, args[0], args[1:]...)
	mouse.Stderr = os.Stderr

	cmdOut, err := mouse.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("mouse stdout: %w", err)
	}
	replyIn, err := mouse.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("mouse stdin: %w", err)
	}

	if err := mouse.Start(); err != nil {
		return "", fmt.Errorf("start mouse: %w", err)
	}
	logger.Info("mouse started", "command", args[0])

	serveErr := engine.Serve(ctx, cmdOut, replyIn)
	replyIn.Close()
	waitErr := mouse.Wait()

	switch {
	case ctx.Err() != nil:
		// The timeout killed the mouse; the run just ran out of time.
		return storage.OutcomeAborted, nil
	case waitErr != nil:
		return "", fmt.Errorf("mouse exited: %w", waitErr)
	case serveErr != nil:
		return "", serveErr
	}

	if engine.Pos() == engine.Goal() {
		return storage.OutcomeFinished, nil
	}
	if engine.Crashed() {
		return storage.OutcomeCrashed, nil
	}
	return storage.OutcomeAborted, nil
}

func saveSimRun(cfg config.Maze, outcome string, stats sim.Stats, elapsed time.Duration) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	mazeID := cfg.Name
	if mazeID == "" {
		mazeID = "default"
	}
	_, err = store.SaveRun(storage.RunRecord{
		MazeID:            mazeID,
		Outcome:           outcome,
		Distance:          int(stats.TotalDistance),
		Turns:             int(stats.TotalTurns),
		EffectiveDistance: float64(stats.TotalEffectiveDistance),
		Score:             -1,
		Duration:          elapsed,
	})
	return err
}
