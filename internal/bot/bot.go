// Package bot implements a left wall follower on top of the mms client.
// It keeps its left hand on the wall, which solves any simply connected
// maze, and survives simulator resets by acknowledging them and starting
// over from the start cell.
package bot

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hardliner66/mms-go/mms"
)

// ErrBoxedIn is returned when the mouse sees walls on all four sides.
var ErrBoxedIn = errors.New("bot: walled in on all four sides")

// Cell is a maze cell coordinate.
type Cell struct {
	X, Y int
}

// Options configures a run.
type Options struct {
	// Goal overrides the target cell. Nil means the maze center.
	Goal *Cell
	// MaxSteps caps the number of forward moves. Zero means no cap.
	MaxSteps int
	// MarkTrail colors visited cells in the simulator display. The trail
	// is dead reckoned from the default start, bottom-left facing north.
	MarkTrail bool
	// Logger receives progress at debug level. Nil gets a default stderr
	// logger.
	Logger *log.Logger
}

// Result summarizes a finished run.
type Result struct {
	// Steps is the number of forward moves, counting moves repeated
	// after a reset.
	Steps int
	// Resets is the number of acknowledged simulator resets.
	Resets int
	// Goal is the cell the run targeted.
	Goal Cell
	// Reached reports whether the run ended on the goal cell rather
	// than at the step cap.
	Reached bool
}

// Run drives the mouse until it reaches the goal cell, the step cap is
// hit, or the context is cancelled. The client must be freshly connected
// to the simulator.
func Run(ctx context.Context, c *mms.Client, opt Options) (Result, error) {
	logger := opt.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "bot"})
	}

	width, err := c.MazeWidth()
	if err != nil {
		return Result{}, err
	}
	height, err := c.MazeHeight()
	if err != nil {
		return Result{}, err
	}

	goal := Cell{X: (int(width) - 1) / 2, Y: (int(height) - 1) / 2}
	if opt.Goal != nil {
		goal = *opt.Goal
	}
	logger.Debug("starting run", "width", width, "height", height, "goal", fmt.Sprintf("(%d,%d)", goal.X, goal.Y))

	if opt.MarkTrail {
		c.SetColor(0, 0, mms.ColorGreen)
		c.SetText(0, 0, "start")
	}

	pos := Cell{}
	head := mms.North
	res := Result{Goal: goal}

	for pos != goal {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if opt.MaxSteps > 0 && res.Steps >= opt.MaxSteps {
			logger.Warn("step cap reached", "steps", res.Steps)
			return res, nil
		}

		// The simulator may have teleported us back to the start.
		wasReset, err := c.WasReset()
		if err != nil {
			return res, err
		}
		if wasReset {
			if err := c.AckReset(); err != nil {
				return res, err
			}
			pos, head = Cell{}, mms.North
			res.Resets++
			logger.Info("reset acknowledged", "resets", res.Resets)
			continue
		}

		// Hug the left wall: turn left when the left is open, otherwise
		// turn right until the front is open.
		left, err := c.WallLeft()
		if err != nil {
			return res, err
		}
		if !left {
			if err := c.TurnLeft(); err != nil {
				return res, err
			}
			head = head.Left()
		}
		turns := 0
		for {
			front, err := c.WallFront()
			if err != nil {
				return res, err
			}
			if !front {
				break
			}
			if turns++; turns >= 4 {
				return res, ErrBoxedIn
			}
			if err := c.TurnRight(); err != nil {
				return res, err
			}
			head = head.Right()
		}

		if err := c.MoveForward(0); err != nil {
			if errors.Is(err, mms.ErrCrashed) {
				// A crash raises the reset flag; the next iteration
				// acknowledges it.
				logger.Warn("crashed", "pos", fmt.Sprintf("(%d,%d)", pos.X, pos.Y))
				continue
			}
			return res, err
		}
		dx, dy := head.Delta()
		pos.X += dx
		pos.Y += dy
		res.Steps++
		if opt.MarkTrail && pos != goal {
			c.SetColor(uint32(pos.X), uint32(pos.Y), mms.ColorBlue)
		}
	}

	res.Reached = true
	if opt.MarkTrail {
		c.SetColor(uint32(goal.X), uint32(goal.Y), mms.ColorGreen)
		c.SetText(uint32(goal.X), uint32(goal.Y), "goal")
	}
	logger.Info("goal reached", "steps", res.Steps, "resets", res.Resets)
	return res, nil
}
