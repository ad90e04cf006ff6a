// Package protocol defines the wire vocabulary of the mms line protocol.
// Commands are single newline-terminated ASCII lines: a verb, optionally
// followed by space-separated arguments. Replies are single lines too.
// Stat queries are bare kebab-case verbs.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Command verbs sent by the mouse.
const (
	CmdMazeWidth     = "mazeWidth"
	CmdMazeHeight    = "mazeHeight"
	CmdWallFront     = "wallFront"
	CmdWallRight     = "wallRight"
	CmdWallLeft      = "wallLeft"
	CmdMoveForward   = "moveForward"
	CmdTurnRight     = "turnRight"
	CmdTurnLeft      = "turnLeft"
	CmdSetWall       = "setWall"
	CmdClearWall     = "clearWall"
	CmdSetColor      = "setColor"
	CmdClearColor    = "clearColor"
	CmdClearAllColor = "clearAllColor"
	CmdSetText       = "setText"
	CmdClearText     = "clearText"
	CmdClearAllText  = "clearAllText"
	CmdWasReset      = "wasReset"
	CmdAckReset      = "ackReset"
)

// Reply tokens sent by the simulator.
const (
	ReplyAck   = "ack"
	ReplyCrash = "crash"
	ReplyTrue  = "true"
	ReplyFalse = "false"
)

// Command is one parsed request line.
type Command struct {
	Verb string
	// Rest is the raw argument text after the verb, with the single
	// separating space removed. Inner spacing is preserved so free-form
	// text arguments survive intact.
	Rest string
}

// Parse splits a request line into verb and raw arguments. Leading and
// trailing line whitespace is trimmed; an empty line yields an empty verb.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(line, " ")
	return Command{Verb: verb, Rest: rest}
}

// Fields returns the arguments split on whitespace.
func (c Command) Fields() []string {
	return strings.Fields(c.Rest)
}

// Coords parses the first two arguments as non-negative cell coordinates
// and returns the raw remainder after them (for verbs carrying a trailing
// text argument).
func (c Command) Coords() (x, y uint32, rest string, err error) {
	xs, tail, _ := strings.Cut(c.Rest, " ")
	ys, tail, _ := strings.Cut(tail, " ")
	xv, err := strconv.ParseUint(xs, 10, 32)
	if err != nil {
		return 0, 0, "", fmt.Errorf("protocol: bad x coordinate %q: %w", xs, err)
	}
	yv, err := strconv.ParseUint(ys, 10, 32)
	if err != nil {
		return 0, 0, "", fmt.Errorf("protocol: bad y coordinate %q: %w", ys, err)
	}
	return uint32(xv), uint32(yv), tail, nil
}

// FormatBool renders a boolean reply line.
func FormatBool(v bool) string {
	if v {
		return ReplyTrue
	}
	return ReplyFalse
}
