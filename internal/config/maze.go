// Package config provides YAML-based maze definitions for the in-process
// simulator.
package config

import (
	"fmt"

	"github.com/hardliner66/mms-go/mms"
)

// Maze describes a maze layout. Coordinates follow the protocol
// convention: (0, 0) is the bottom-left cell, north increases y.
type Maze struct {
	Name   string     `yaml:"name"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Start  Pose       `yaml:"start"`
	Goal   *Cell      `yaml:"goal,omitempty"`
	Walls  []WallSpec `yaml:"walls"`
}

// Pose is a starting position and heading.
type Pose struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Heading string `yaml:"heading"` // single letter, "n" if empty
}

// Cell is a cell coordinate.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// WallSpec places one interior wall.
type WallSpec struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// Validate checks extents, coordinates and direction letters.
func (m *Maze) Validate() error {
	if m.Width < 1 || m.Height < 1 {
		return fmt.Errorf("config: maze extents %dx%d, need at least 1x1", m.Width, m.Height)
	}
	if !m.inBounds(m.Start.X, m.Start.Y) {
		return fmt.Errorf("config: start (%d, %d) outside %dx%d maze", m.Start.X, m.Start.Y, m.Width, m.Height)
	}
	if m.Start.Heading != "" {
		if _, err := mms.ParseDirection(m.Start.Heading); err != nil {
			return fmt.Errorf("config: start heading: %w", err)
		}
	}
	if m.Goal != nil && !m.inBounds(m.Goal.X, m.Goal.Y) {
		return fmt.Errorf("config: goal (%d, %d) outside %dx%d maze", m.Goal.X, m.Goal.Y, m.Width, m.Height)
	}
	for i, w := range m.Walls {
		if !m.inBounds(w.X, w.Y) {
			return fmt.Errorf("config: wall %d at (%d, %d) outside %dx%d maze", i, w.X, w.Y, m.Width, m.Height)
		}
		if _, err := mms.ParseDirection(w.Dir); err != nil {
			return fmt.Errorf("config: wall %d: %w", i, err)
		}
	}
	return nil
}

// StartHeading returns the parsed starting heading, defaulting to north.
func (m *Maze) StartHeading() mms.Direction {
	if m.Start.Heading == "" {
		return mms.North
	}
	d, err := mms.ParseDirection(m.Start.Heading)
	if err != nil {
		return mms.North
	}
	return d
}

func (m *Maze) inBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}
