package sim

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/hardliner66/mms-go/internal/protocol"
	"github.com/hardliner66/mms-go/mms"
)

// maxCellText is the longest label the simulator displays per cell.
const maxCellText = 10

// Cell is a maze cell coordinate.
type Cell struct {
	X, Y int
}

// Pose is a robot position and heading.
type Pose struct {
	X, Y    int
	Heading mms.Direction
}

// Options configures an engine.
type Options struct {
	// Start is the robot's starting pose. The zero value (bottom-left,
	// facing north) matches the simulator default.
	Start Pose
	// Goal is the cell that completes a run. Nil means the maze center.
	Goal *Cell
	// Logger receives wire traffic at debug level. Nil gets a default
	// stderr logger.
	Logger *log.Logger
}

// Engine is the simulator side of the protocol: the physical maze, the
// robot, the display overlays, the reset flag and the run statistics.
//
// All methods are safe for concurrent use. The reset flag of the protocol
// is plain state behind the engine mutex; the engine is its single writer
// (Reset and crashes set it, ackReset clears it) and wasReset only
// observes it.
type Engine struct {
	mu     sync.Mutex
	maze   *Maze
	start  Pose
	goal   Cell
	pos    Cell
	head   mms.Direction
	crash  bool
	reset  bool
	marks  map[edge]bool
	colors map[Cell]mms.CellColor
	texts  map[Cell]string
	stats  runStats
	logger *log.Logger
}

type edge struct {
	x, y int
	d    mms.Direction
}

// New creates an engine over the given maze.
func New(m *Maze, opt Options) *Engine {
	logger := opt.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	}
	goal := Cell{X: (m.Width() - 1) / 2, Y: (m.Height() - 1) / 2}
	if opt.Goal != nil {
		goal = *opt.Goal
	}
	return &Engine{
		maze:   m,
		start:  opt.Start,
		goal:   goal,
		pos:    Cell{X: opt.Start.X, Y: opt.Start.Y},
		head:   opt.Start.Heading,
		marks:  make(map[edge]bool),
		colors: make(map[Cell]mms.CellColor),
		texts:  make(map[Cell]string),
		stats:  newRunStats(),
		logger: logger,
	}
}

// Pos returns the robot's current cell.
func (e *Engine) Pos() Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// Heading returns the robot's current heading.
func (e *Engine) Heading() mms.Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.head
}

// Goal returns the cell that completes a run.
func (e *Engine) Goal() Cell {
	return e.goal
}

// Crashed reports whether the robot has hit a wall and not yet been
// reset.
func (e *Engine) Crashed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.crash
}

// Stats returns a snapshot of the run statistics.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.snapshot()
}

// Reset presses the reset button: the flag stays up until the mouse
// acknowledges it.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset = true
}

// wallRelative answers a sensor query relative to the robot's heading.
func (e *Engine) wallRelative(turn func(mms.Direction) mms.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maze.HasWall(e.pos.X, e.pos.Y, turn(e.head))
}

// WallFront reports a wall directly ahead of the robot.
func (e *Engine) WallFront() bool {
	return e.wallRelative(func(d mms.Direction) mms.Direction { return d })
}

// WallRight reports a wall to the robot's right.
func (e *Engine) WallRight() bool {
	return e.wallRelative(mms.Direction.Right)
}

// WallLeft reports a wall to the robot's left.
func (e *Engine) WallLeft() bool {
	return e.wallRelative(mms.Direction.Left)
}

// MoveForward advances the robot distance cells (0 means 1). It reports
// whether the robot is crashed afterwards: driving into a wall stops the
// move, raises the reset flag and refuses further motion until AckReset.
func (e *Engine) MoveForward(distance uint32) (crashed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.crash {
		return true
	}
	if distance == 0 {
		distance = 1
	}
	for i := uint32(0); i < distance; i++ {
		if e.maze.HasWall(e.pos.X, e.pos.Y, e.head) {
			e.crash = true
			e.reset = true
			return true
		}
		dx, dy := e.head.Delta()
		e.pos.X += dx
		e.pos.Y += dy
		e.stats.step(i == 0)
		if e.pos == e.goal {
			e.stats.completeRun()
		}
	}
	return false
}

// TurnRight rotates the robot ninety degrees right. Reports whether the
// robot is crashed (turning is refused while crashed).
func (e *Engine) TurnRight() (crashed bool) {
	return e.turn(mms.Direction.Right)
}

// TurnLeft rotates the robot ninety degrees left.
func (e *Engine) TurnLeft() (crashed bool) {
	return e.turn(mms.Direction.Left)
}

func (e *Engine) turn(rotate func(mms.Direction) mms.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.crash {
		return true
	}
	e.head = rotate(e.head)
	e.stats.turn()
	return false
}

// WasReset reports whether the reset flag is raised.
func (e *Engine) WasReset() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reset
}

// AckReset lowers the reset flag, moves the robot back to its starting
// pose and begins a fresh run. Totals survive; current-run counters do
// not.
func (e *Engine) AckReset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset = false
	e.crash = false
	e.pos = Cell{X: e.start.X, Y: e.start.Y}
	e.head = e.start.Heading
	e.stats.restartRun()
}

// SetWallMark displays a wall annotation at the given cell edge. Marks
// are display state only and never affect the physical maze.
func (e *Engine) SetWallMark(x, y int, d mms.Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.maze.InBounds(x, y) {
		e.marks[edge{x, y, d}] = true
	}
}

// ClearWallMark removes a wall annotation.
func (e *Engine) ClearWallMark(x, y int, d mms.Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.marks, edge{x, y, d})
}

// HasWallMark reports whether a wall annotation is displayed at the edge.
func (e *Engine) HasWallMark(x, y int, d mms.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.marks[edge{x, y, d}]
}

// SetColor colors a cell.
func (e *Engine) SetColor(x, y int, c mms.CellColor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.maze.InBounds(x, y) {
		e.colors[Cell{x, y}] = c
	}
}

// ClearColor removes a cell's color.
func (e *Engine) ClearColor(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.colors, Cell{x, y})
}

// ClearAllColor removes every cell color.
func (e *Engine) ClearAllColor() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.colors)
}

// ColorAt returns the displayed color of a cell, if any.
func (e *Engine) ColorAt(x, y int) (mms.CellColor, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.colors[Cell{x, y}]
	return c, ok
}

// SetText labels a cell. Labels longer than ten characters are truncated
// the way the simulator truncates them.
func (e *Engine) SetText(x, y int, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.maze.InBounds(x, y) {
		return
	}
	if r := []rune(text); len(r) > maxCellText {
		text = string(r[:maxCellText])
	}
	e.texts[Cell{x, y}] = text
}

// ClearText removes a cell's label.
func (e *Engine) ClearText(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.texts, Cell{x, y})
}

// ClearAllText removes every cell label.
func (e *Engine) ClearAllText() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.texts)
}

// TextAt returns the displayed label of a cell, if any.
func (e *Engine) TextAt(x, y int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.texts[Cell{x, y}]
	return t, ok
}

// StatValue answers one stat query in wire form.
func (e *Engine) StatValue(q mms.StatQuery) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.value(q)
}

// Handle executes one protocol command and returns the reply line, or an
// empty reply for fire-and-forget commands. Unknown verbs and malformed
// arguments are errors; commands that expect a reply never return both an
// empty reply and a nil error.
func (e *Engine) Handle(cmd protocol.Command) (string, error) {
	switch cmd.Verb {
	case protocol.CmdMazeWidth:
		return strconv.Itoa(e.maze.Width()), nil
	case protocol.CmdMazeHeight:
		return strconv.Itoa(e.maze.Height()), nil
	case protocol.CmdWallFront:
		return protocol.FormatBool(e.WallFront()), nil
	case protocol.CmdWallRight:
		return protocol.FormatBool(e.WallRight()), nil
	case protocol.CmdWallLeft:
		return protocol.FormatBool(e.WallLeft()), nil

	case protocol.CmdMoveForward:
		distance := uint64(0)
		if rest := strings.TrimSpace(cmd.Rest); rest != "" {
			var err error
			distance, err = strconv.ParseUint(rest, 10, 32)
			if err != nil {
				return "", fmt.Errorf("sim: moveForward distance %q: %w", rest, err)
			}
		}
		if e.MoveForward(uint32(distance)) {
			return protocol.ReplyCrash, nil
		}
		return protocol.ReplyAck, nil
	case protocol.CmdTurnRight:
		return ackOrCrash(e.TurnRight()), nil
	case protocol.CmdTurnLeft:
		return ackOrCrash(e.TurnLeft()), nil

	case protocol.CmdSetWall, protocol.CmdClearWall:
		x, y, rest, err := cmd.Coords()
		if err != nil {
			return "", err
		}
		d, err := mms.ParseDirection(strings.TrimSpace(rest))
		if err != nil {
			return "", err
		}
		if cmd.Verb == protocol.CmdSetWall {
			e.SetWallMark(int(x), int(y), d)
		} else {
			e.ClearWallMark(int(x), int(y), d)
		}
		return "", nil

	case protocol.CmdSetColor:
		x, y, rest, err := cmd.Coords()
		if err != nil {
			return "", err
		}
		c, err := mms.ParseColor(strings.TrimSpace(rest))
		if err != nil {
			return "", err
		}
		e.SetColor(int(x), int(y), c)
		return "", nil
	case protocol.CmdClearColor:
		x, y, _, err := cmd.Coords()
		if err != nil {
			return "", err
		}
		e.ClearColor(int(x), int(y))
		return "", nil
	case protocol.CmdClearAllColor:
		e.ClearAllColor()
		return "", nil

	case protocol.CmdSetText:
		x, y, rest, err := cmd.Coords()
		if err != nil {
			return "", err
		}
		e.SetText(int(x), int(y), rest)
		return "", nil
	case protocol.CmdClearText:
		x, y, _, err := cmd.Coords()
		if err != nil {
			return "", err
		}
		e.ClearText(int(x), int(y))
		return "", nil
	case protocol.CmdClearAllText:
		e.ClearAllText()
		return "", nil

	case protocol.CmdWasReset:
		return protocol.FormatBool(e.WasReset()), nil
	case protocol.CmdAckReset:
		e.AckReset()
		return protocol.ReplyAck, nil
	}

	q, err := mms.ParseStatQuery(cmd.Verb)
	if err != nil {
		return "", fmt.Errorf("sim: unknown command %q", cmd.Verb)
	}
	return e.StatValue(q), nil
}

func ackOrCrash(crashed bool) string {
	if crashed {
		return protocol.ReplyCrash
	}
	return protocol.ReplyAck
}
