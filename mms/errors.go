package mms

import "errors"

var (
	// ErrInvalidAck is returned when a command that expects an "ack" reply
	// receives something else.
	ErrInvalidAck = errors.New("mms: invalid ack")

	// ErrCrashed is returned when a motion command drives the mouse into a
	// wall. Further motion is refused until AckReset.
	ErrCrashed = errors.New("mms: mouse crashed")

	// ErrInvalidDirection is returned for an unknown direction letter.
	ErrInvalidDirection = errors.New("mms: invalid direction")

	// ErrInvalidColor is returned for an unknown color letter.
	ErrInvalidColor = errors.New("mms: invalid color")

	// ErrInvalidStatQuery is returned for an unknown stat query name.
	ErrInvalidStatQuery = errors.New("mms: invalid stat query")
)
