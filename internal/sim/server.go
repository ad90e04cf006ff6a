package sim

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/hardliner66/mms-go/internal/protocol"
)

// Serve speaks the simulator side of the protocol: it reads command lines
// from r (the mouse's stdout) and writes replies to w (the mouse's stdin)
// until r is exhausted or ctx is done. Malformed commands are logged and
// skipped.
//
// Cancellation is observed between commands; a reader blocked on a quiet
// mouse is released by closing r.
func (e *Engine) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd := protocol.Parse(scanner.Text())
		if cmd.Verb == "" {
			continue
		}

		reply, err := e.Handle(cmd)
		if err != nil {
			e.logger.Warn("dropping command", "verb", cmd.Verb, "err", err)
			continue
		}
		e.logger.Debug("command", "verb", cmd.Verb, "args", cmd.Rest, "reply", reply)
		if reply == "" {
			continue
		}

		if _, err := fmt.Fprintln(out, reply); err != nil {
			return fmt.Errorf("sim: write reply: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("sim: flush reply: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("sim: read commands: %w", err)
	}
	return nil
}
