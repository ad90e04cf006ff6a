package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMaze(t *testing.T) {
	m := DefaultMaze()

	if m.Width != 6 || m.Height != 6 {
		t.Errorf("default maze is %dx%d, want 6x6", m.Width, m.Height)
	}
	if m.Goal == nil {
		t.Fatal("default maze has no goal")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("default maze does not validate: %v", err)
	}
}

func TestLoadMazeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	data := `
name: tiny
width: 3
height: 2
start: {x: 0, y: 0, heading: e}
walls:
  - {x: 1, y: 0, dir: e}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMaze(path)
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}
	if m.Name != "tiny" || m.Width != 3 || m.Height != 2 {
		t.Errorf("loaded maze = %q %dx%d", m.Name, m.Width, m.Height)
	}
	if len(m.Walls) != 1 {
		t.Errorf("loaded %d walls, want 1", len(m.Walls))
	}
}

func TestLoadMazeMissingFile(t *testing.T) {
	if _, err := LoadMaze(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadMaze() with missing explicit path succeeded")
	}
}

func TestLoadMazeFallsBackToDefault(t *testing.T) {
	m, err := LoadMaze("")
	if err != nil {
		t.Fatalf("LoadMaze(\"\") failed: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("fallback maze does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() Maze {
		return Maze{
			Width:  4,
			Height: 4,
			Start:  Pose{X: 0, Y: 0, Heading: "n"},
			Walls:  []WallSpec{{X: 1, Y: 1, Dir: "e"}},
		}
	}

	valid := base()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid maze rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Maze)
	}{
		{"zero width", func(m *Maze) { m.Width = 0 }},
		{"negative height", func(m *Maze) { m.Height = -1 }},
		{"start out of bounds", func(m *Maze) { m.Start.X = 9 }},
		{"bad heading", func(m *Maze) { m.Start.Heading = "up" }},
		{"goal out of bounds", func(m *Maze) { m.Goal = &Cell{X: 4, Y: 0} }},
		{"wall out of bounds", func(m *Maze) { m.Walls[0].Y = -2 }},
		{"bad wall dir", func(m *Maze) { m.Walls[0].Dir = "q" }},
	}
	for _, tt := range tests {
		m := base()
		tt.mutate(&m)
		if err := m.Validate(); err == nil {
			t.Errorf("%s: Validate() succeeded, want error", tt.name)
		}
	}
}

func TestStartHeadingDefaultsNorth(t *testing.T) {
	m := Maze{Width: 2, Height: 2}
	if got := m.StartHeading(); got.Letter() != "n" {
		t.Errorf("StartHeading() = %v, want north", got)
	}
	m.Start.Heading = "w"
	if got := m.StartHeading(); got.Letter() != "w" {
		t.Errorf("StartHeading() = %v, want west", got)
	}
}
