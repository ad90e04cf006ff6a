// Package mms is a Go client for the mms micromouse simulator. The
// simulator launches the mouse as a subprocess and speaks a line protocol
// over the mouse's standard streams: the mouse writes one command per line
// and, for querying commands, reads a one-line reply.
//
// A Client owns one side of that boundary. It is not safe for concurrent
// use; the protocol is strictly request/reply and interleaving commands
// from multiple goroutines would corrupt the stream.
package mms

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hardliner66/mms-go/bytebuf"
	"github.com/hardliner66/mms-go/internal/protocol"
)

// Client speaks the mouse side of the simulator protocol.
type Client struct {
	r *bufio.Reader
	w *bufio.Writer
}

// New creates a client reading replies from r and writing commands to w.
func New(r io.Reader, w io.Writer) *Client {
	return &Client{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

// NewStdio creates a client on the process standard streams, the way the
// simulator invokes a mouse.
func NewStdio() *Client {
	return New(os.Stdin, os.Stdout)
}

// send writes one command line and flushes. The peer blocks on complete
// lines, so every command flushes immediately.
func (c *Client) send(line string) error {
	if _, err := c.w.WriteString(line); err != nil {
		return fmt.Errorf("mms: write: %w", err)
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("mms: write: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("mms: flush: %w", err)
	}
	return nil
}

// request sends a command and reads the one-line reply.
func (c *Client) request(line string) (string, error) {
	if err := c.send(line); err != nil {
		return "", err
	}
	reply, err := c.r.ReadString('\n')
	if err != nil && (reply == "" || err != io.EOF) {
		return "", fmt.Errorf("mms: read reply to %q: %w", line, err)
	}
	return strings.TrimSpace(reply), nil
}

// acked sends a command and expects an "ack" reply. A "crash" reply maps
// to ErrCrashed; anything else is ErrInvalidAck.
func (c *Client) acked(line string) error {
	reply, err := c.request(line)
	if err != nil {
		return err
	}
	switch reply {
	case protocol.ReplyAck:
		return nil
	case protocol.ReplyCrash:
		return ErrCrashed
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAck, reply)
	}
}

func (c *Client) requestInt(line string) (int32, error) {
	reply, err := c.request(line)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(reply, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("mms: reply to %q: %w", line, err)
	}
	return int32(v), nil
}

func (c *Client) requestBool(line string) (bool, error) {
	reply, err := c.request(line)
	if err != nil {
		return false, err
	}
	return reply == protocol.ReplyTrue, nil
}

// MazeWidth returns the width of the maze in cells.
func (c *Client) MazeWidth() (int32, error) {
	return c.requestInt(protocol.CmdMazeWidth)
}

// MazeHeight returns the height of the maze in cells.
func (c *Client) MazeHeight() (int32, error) {
	return c.requestInt(protocol.CmdMazeHeight)
}

// WallFront reports whether there is a wall directly ahead of the mouse.
func (c *Client) WallFront() (bool, error) {
	return c.requestBool(protocol.CmdWallFront)
}

// WallRight reports whether there is a wall to the right of the mouse.
func (c *Client) WallRight() (bool, error) {
	return c.requestBool(protocol.CmdWallRight)
}

// WallLeft reports whether there is a wall to the left of the mouse.
func (c *Client) WallLeft() (bool, error) {
	return c.requestBool(protocol.CmdWallLeft)
}

// MoveForward moves the mouse forward. A distance of 0 means the default
// of one cell. Returns ErrCrashed if the move hits a wall.
func (c *Client) MoveForward(distance uint32) error {
	if distance == 0 {
		return c.acked(protocol.CmdMoveForward)
	}
	return c.acked(fmt.Sprintf("%s %d", protocol.CmdMoveForward, distance))
}

// TurnRight turns the mouse ninety degrees to the right.
func (c *Client) TurnRight() error {
	return c.acked(protocol.CmdTurnRight)
}

// TurnLeft turns the mouse ninety degrees to the left.
func (c *Client) TurnLeft() error {
	return c.acked(protocol.CmdTurnLeft)
}

// SetWall displays a wall at the given cell edge.
func (c *Client) SetWall(x, y uint32, d Direction) error {
	return c.send(fmt.Sprintf("%s %d %d %s", protocol.CmdSetWall, x, y, d.Letter()))
}

// ClearWall removes a displayed wall at the given cell edge.
func (c *Client) ClearWall(x, y uint32, d Direction) error {
	return c.send(fmt.Sprintf("%s %d %d %s", protocol.CmdClearWall, x, y, d.Letter()))
}

// SetColor colors the given cell.
func (c *Client) SetColor(x, y uint32, color CellColor) error {
	return c.send(fmt.Sprintf("%s %d %d %s", protocol.CmdSetColor, x, y, color.Letter()))
}

// ClearColor removes the color of the given cell.
func (c *Client) ClearColor(x, y uint32) error {
	return c.send(fmt.Sprintf("%s %d %d", protocol.CmdClearColor, x, y))
}

// ClearAllColor removes the color of every cell.
func (c *Client) ClearAllColor() error {
	return c.send(protocol.CmdClearAllColor)
}

// SetText labels the given cell. The simulator displays at most ten
// characters.
func (c *Client) SetText(x, y uint32, text string) error {
	return c.send(fmt.Sprintf("%s %d %d %s", protocol.CmdSetText, x, y, text))
}

// ClearText removes the label of the given cell.
func (c *Client) ClearText(x, y uint32) error {
	return c.send(fmt.Sprintf("%s %d %d", protocol.CmdClearText, x, y))
}

// ClearAllText removes the label of every cell.
func (c *Client) ClearAllText() error {
	return c.send(protocol.CmdClearAllText)
}

// WasReset reports whether the reset button was pressed since the last
// AckReset.
func (c *Client) WasReset() (bool, error) {
	return c.requestBool(protocol.CmdWasReset)
}

// AckReset acknowledges a reset and allows the simulator to move the
// mouse back to the start of the maze.
func (c *Client) AckReset() error {
	return c.acked(protocol.CmdAckReset)
}

// GetStat queries one run statistic. The value is -1 if no value exists
// yet.
func (c *Client) GetStat(q StatQuery) (Stat, error) {
	reply, err := c.request(q.String())
	if err != nil {
		return Stat{}, err
	}
	s := Stat{Query: q}
	if q.IsFloat() {
		v, err := strconv.ParseFloat(reply, 32)
		if err != nil {
			return Stat{}, fmt.Errorf("mms: stat %s reply %q: %w", q, reply, err)
		}
		s.Float = float32(v)
	} else {
		v, err := strconv.ParseInt(reply, 10, 32)
		if err != nil {
			return Stat{}, fmt.Errorf("mms: stat %s reply %q: %w", q, reply, err)
		}
		s.Int = int32(v)
	}
	return s, nil
}

// GetStatRaw queries a statistic by its raw wire name and hands the reply
// bytes back as a buffer allocated from pool. The caller owns the buffer
// and must release it through the same pool. An empty query produces the
// no-data buffer without touching the wire; an unknown query name is
// rejected before anything is sent.
func (c *Client) GetStatRaw(pool *bytebuf.Pool, query []byte) (*bytebuf.Buffer, error) {
	name, err := bytebuf.DecodeText(query, int32(len(query)))
	if err != nil {
		return nil, err
	}
	if len(name) == 0 {
		return pool.NoData(), nil
	}
	if _, err := ParseStatQuery(name); err != nil {
		return nil, err
	}
	reply, err := c.request(name)
	if err != nil {
		return nil, err
	}
	return pool.FromString(reply), nil
}
