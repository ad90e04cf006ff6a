package mms

import "fmt"

// Direction is a cardinal wall direction. The maze origin is the
// bottom-left cell; north increases y, east increases x.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// ParseDirection parses the single-letter wire form ("n", "e", "s", "w").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "n":
		return North, nil
	case "e":
		return East, nil
	case "s":
		return South, nil
	case "w":
		return West, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Letter returns the single-letter wire form.
func (d Direction) Letter() string {
	switch d {
	case North:
		return "n"
	case East:
		return "e"
	case South:
		return "s"
	case West:
		return "w"
	default:
		return "?"
	}
}

// String returns a human-readable name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Left returns the direction after a ninety degree left turn.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction after a ninety degree right turn.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the cell offset of one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
