package sim

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hardliner66/mms-go/mms"
)

// serveScript feeds raw command lines to a corridor engine and returns the
// reply lines in order.
func serveScript(t *testing.T, e *Engine, lines ...string) []string {
	t.Helper()

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	done := make(chan error, 1)
	pr, pw := io.Pipe()

	go func() {
		done <- e.Serve(context.Background(), in, pw)
		pw.Close()
	}()

	var replies []string
	scanner := bufio.NewScanner(pr)
	for scanner.Scan() {
		replies = append(replies, scanner.Text())
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return")
	}
	return replies
}

func TestServeQueryReplySequence(t *testing.T) {
	e := corridorEngine()

	replies := serveScript(t, e,
		"mazeWidth",
		"mazeHeight",
		"wallFront",
		"wallLeft",
		"moveForward",
		"moveForward 2",
		"total-distance",
		"wasReset",
	)

	want := []string{"4", "1", "false", "true", "ack", "ack", "3", "false"}
	if len(replies) != len(want) {
		t.Fatalf("got %d replies %v, want %d", len(replies), replies, len(want))
	}
	for i := range want {
		if replies[i] != want[i] {
			t.Errorf("reply %d = %q, want %q", i, replies[i], want[i])
		}
	}
}

func TestServeSilentCommandsAndCrash(t *testing.T) {
	e := corridorEngine()

	replies := serveScript(t, e,
		"setColor 0 0 G",
		"setText 0 0 start",
		"setWall 1 0 n",
		"moveForward 9", // crashes into the east border after 3 cells
		"wasReset",
		"ackReset",
		"clearAllColor",
		"wallFront",
	)

	want := []string{"crash", "true", "ack", "false"}
	if len(replies) != len(want) {
		t.Fatalf("got replies %v, want %v", replies, want)
	}
	for i := range want {
		if replies[i] != want[i] {
			t.Errorf("reply %d = %q, want %q", i, replies[i], want[i])
		}
	}

	if _, ok := e.ColorAt(0, 0); ok {
		t.Error("clearAllColor did not clear the start cell")
	}
	if txt, ok := e.TextAt(0, 0); !ok || txt != "start" {
		t.Errorf("setText via wire = %q/%v, want start", txt, ok)
	}
	if !e.HasWallMark(1, 0, mms.North) {
		t.Error("setWall via wire did not record the mark")
	}
}

func TestServeSkipsMalformedLines(t *testing.T) {
	e := corridorEngine()

	replies := serveScript(t, e,
		"",
		"bogusCommand 1 2",
		"setColor 1 0 notacolor",
		"mazeWidth",
	)

	if len(replies) != 1 || replies[0] != "4" {
		t.Errorf("replies = %v, want just the mazeWidth answer", replies)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	e := corridorEngine()
	ctx, cancel := context.WithCancel(context.Background())

	cmdR, cmdW := io.Pipe()
	replyR, replyW := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- e.Serve(ctx, cmdR, replyW)
	}()

	// One round trip to prove the loop is running.
	if _, err := fmt.Fprintln(cmdW, "mazeWidth"); err != nil {
		t.Fatal(err)
	}
	line, err := bufio.NewReader(replyR).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "4" {
		t.Fatalf("round trip = %q, %v", line, err)
	}

	cancel()
	if _, err := fmt.Fprintln(cmdW, "mazeHeight"); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() ignored cancellation")
	}
}
