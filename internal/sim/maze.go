// Package sim hosts an in-process micromouse maze engine that speaks the
// same line protocol as the mms simulator. It exists so mice built on the
// client package can run (and be tested) without the graphical simulator.
package sim

import "github.com/hardliner66/mms-go/mms"

type wallMask uint8

const (
	wallNorth wallMask = 1 << iota
	wallEast
	wallSouth
	wallWest
)

func maskFor(d mms.Direction) wallMask {
	switch d {
	case mms.North:
		return wallNorth
	case mms.East:
		return wallEast
	case mms.South:
		return wallSouth
	case mms.West:
		return wallWest
	default:
		return 0
	}
}

// Maze is the physical wall layout. Cell (0, 0) is the bottom-left corner;
// north increases y. Walls are shared edges: setting a wall on a cell sets
// the matching wall on its neighbor, and the outer border is always
// walled.
type Maze struct {
	width  int
	height int
	walls  []wallMask
}

// NewMaze creates a maze of the given extents with border walls only.
func NewMaze(width, height int) *Maze {
	m := &Maze{
		width:  width,
		height: height,
		walls:  make([]wallMask, width*height),
	}
	for x := 0; x < width; x++ {
		m.walls[m.idx(x, 0)] |= wallSouth
		m.walls[m.idx(x, height-1)] |= wallNorth
	}
	for y := 0; y < height; y++ {
		m.walls[m.idx(0, y)] |= wallWest
		m.walls[m.idx(width-1, y)] |= wallEast
	}
	return m
}

// Width returns the maze width in cells.
func (m *Maze) Width() int { return m.width }

// Height returns the maze height in cells.
func (m *Maze) Height() int { return m.height }

// InBounds reports whether (x, y) is a cell of the maze.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *Maze) idx(x, y int) int {
	return y*m.width + x
}

// SetWall places a wall on the given cell edge and on the neighbor's
// matching edge.
func (m *Maze) SetWall(x, y int, d mms.Direction) {
	if !m.InBounds(x, y) {
		return
	}
	m.walls[m.idx(x, y)] |= maskFor(d)
	dx, dy := d.Delta()
	if nx, ny := x+dx, y+dy; m.InBounds(nx, ny) {
		m.walls[m.idx(nx, ny)] |= maskFor(d.Opposite())
	}
}

// ClearWall removes a wall from the given cell edge and the neighbor's
// matching edge. Border walls cannot be removed.
func (m *Maze) ClearWall(x, y int, d mms.Direction) {
	if !m.InBounds(x, y) {
		return
	}
	dx, dy := d.Delta()
	nx, ny := x+dx, y+dy
	if !m.InBounds(nx, ny) {
		return
	}
	m.walls[m.idx(x, y)] &^= maskFor(d)
	m.walls[m.idx(nx, ny)] &^= maskFor(d.Opposite())
}

// HasWall reports whether the given cell edge is walled. Everything
// outside the maze counts as walled.
func (m *Maze) HasWall(x, y int, d mms.Direction) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.walls[m.idx(x, y)]&maskFor(d) != 0
}
