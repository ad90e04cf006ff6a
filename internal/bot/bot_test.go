package bot_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hardliner66/mms-go/internal/bot"
	"github.com/hardliner66/mms-go/internal/config"
	"github.com/hardliner66/mms-go/internal/sim"
	"github.com/hardliner66/mms-go/mms"
)

// startEngine wires a client to an in-process engine over pipes, the same
// stream topology the real simulator uses for a mouse subprocess.
func startEngine(t *testing.T, e *sim.Engine) *mms.Client {
	t.Helper()

	cmdR, cmdW := io.Pipe()
	replyR, replyW := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = e.Serve(ctx, cmdR, replyW)
		replyW.Close()
	}()
	t.Cleanup(func() {
		cancel()
		cmdW.Close()
		cmdR.Close()
		replyR.Close()
	})

	return mms.New(replyR, cmdW)
}

func quietEngine(m *sim.Maze, opt sim.Options) *sim.Engine {
	opt.Logger = log.NewWithOptions(io.Discard, log.Options{})
	return sim.New(m, opt)
}

func quietOptions(opt bot.Options) bot.Options {
	opt.Logger = log.NewWithOptions(io.Discard, log.Options{})
	return opt
}

func runContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestFollowsPerimeterToCorner(t *testing.T) {
	// An open 4x4 maze: the follower hugs the west border north, then the
	// north border east, reaching the far corner in six moves.
	e := quietEngine(sim.NewMaze(4, 4), sim.Options{Goal: &sim.Cell{X: 3, Y: 3}})
	c := startEngine(t, e)

	res, err := bot.Run(runContext(t), c, quietOptions(bot.Options{
		Goal: &bot.Cell{X: 3, Y: 3},
	}))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Steps != 6 {
		t.Errorf("Steps = %d, want 6", res.Steps)
	}
	if res.Resets != 0 {
		t.Errorf("Resets = %d, want 0", res.Resets)
	}
	if !res.Reached {
		t.Error("Reached = false, want true")
	}
	if got := e.Pos(); got != (sim.Cell{X: 3, Y: 3}) {
		t.Errorf("engine position = %+v, want (3,3)", got)
	}
}

func TestSolvesDefaultMaze(t *testing.T) {
	cfg := config.DefaultMaze()
	e, err := sim.FromConfig(cfg, log.NewWithOptions(io.Discard, log.Options{}))
	if err != nil {
		t.Fatalf("FromConfig() failed: %v", err)
	}
	c := startEngine(t, e)

	// No goal override: the bot targets the maze center, which is where
	// the default maze puts its goal.
	res, err := bot.Run(runContext(t), c, quietOptions(bot.Options{}))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	goal := e.Goal()
	if res.Goal != (bot.Cell{X: goal.X, Y: goal.Y}) {
		t.Errorf("bot goal = %+v, engine goal = %+v", res.Goal, goal)
	}
	if got := e.Pos(); got != goal {
		t.Errorf("engine position = %+v, want goal %+v", got, goal)
	}
	if res.Steps == 0 {
		t.Error("Steps = 0, want at least one move")
	}
}

func TestAcknowledgesPendingReset(t *testing.T) {
	e := quietEngine(sim.NewMaze(3, 3), sim.Options{Goal: &sim.Cell{X: 2, Y: 2}})
	e.Reset() // button pressed before the run starts
	c := startEngine(t, e)

	res, err := bot.Run(runContext(t), c, quietOptions(bot.Options{
		Goal: &bot.Cell{X: 2, Y: 2},
	}))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Resets != 1 {
		t.Errorf("Resets = %d, want 1", res.Resets)
	}
	if got := e.Pos(); got != (sim.Cell{X: 2, Y: 2}) {
		t.Errorf("engine position = %+v, want (2,2)", got)
	}
}

func TestBoxedIn(t *testing.T) {
	// A 1x1 maze is all border wall. An unreachable goal forces the bot
	// to look for an exit.
	e := quietEngine(sim.NewMaze(1, 1), sim.Options{})
	c := startEngine(t, e)

	_, err := bot.Run(runContext(t), c, quietOptions(bot.Options{
		Goal: &bot.Cell{X: 0, Y: 1},
	}))
	if !errors.Is(err, bot.ErrBoxedIn) {
		t.Errorf("Run() error = %v, want ErrBoxedIn", err)
	}
}

func TestStepCap(t *testing.T) {
	// In an open maze the follower orbits the boundary forever, so an
	// interior goal is never reached.
	e := quietEngine(sim.NewMaze(4, 4), sim.Options{Goal: &sim.Cell{X: 1, Y: 1}})
	c := startEngine(t, e)

	res, err := bot.Run(runContext(t), c, quietOptions(bot.Options{
		Goal:     &bot.Cell{X: 1, Y: 1},
		MaxSteps: 10,
	}))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Steps != 10 {
		t.Errorf("Steps = %d, want 10", res.Steps)
	}
	if res.Reached {
		t.Error("Reached = true, want false")
	}
}

func TestMarksTrail(t *testing.T) {
	e := quietEngine(sim.NewMaze(3, 3), sim.Options{Goal: &sim.Cell{X: 2, Y: 2}})
	c := startEngine(t, e)

	_, err := bot.Run(runContext(t), c, quietOptions(bot.Options{
		Goal:      &bot.Cell{X: 2, Y: 2},
		MarkTrail: true,
	}))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	// Display commands are fire and forget; a query forces the round trip.
	if _, err := c.MazeWidth(); err != nil {
		t.Fatalf("MazeWidth() failed: %v", err)
	}

	if col, ok := e.ColorAt(0, 0); !ok || col != mms.ColorGreen {
		t.Errorf("start color = %v (%v), want green", col, ok)
	}
	if col, ok := e.ColorAt(0, 1); !ok || col != mms.ColorBlue {
		t.Errorf("trail color = %v (%v), want blue", col, ok)
	}
	if col, ok := e.ColorAt(2, 2); !ok || col != mms.ColorGreen {
		t.Errorf("goal color = %v (%v), want green", col, ok)
	}
	if txt, ok := e.TextAt(2, 2); !ok || txt != "goal" {
		t.Errorf("goal text = %q (%v), want %q", txt, ok, "goal")
	}
}
