package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// LoadMaze loads a maze definition.
// Search order: customPath -> ./mazes/default.yaml -> embedded default
func LoadMaze(customPath string) (Maze, error) {
	var m Maze

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return m, fmt.Errorf("failed to read maze %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("failed to parse maze %s: %w", customPath, err)
		}
		if err := m.Validate(); err != nil {
			return m, err
		}
		return m, nil
	}

	// Try local mazes directory
	if data, err := os.ReadFile("mazes/default.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &m); err == nil && m.Validate() == nil {
			return m, nil
		}
	}

	return DefaultMaze(), nil
}

// DefaultMaze returns the embedded 6x6 default maze.
func DefaultMaze() Maze {
	var m Maze
	if err := yaml.Unmarshal(defaultMazeYAML, &m); err != nil {
		// The embedded maze is part of the build; an unparsable one is a
		// packaging bug.
		panic(fmt.Sprintf("config: embedded default maze: %v", err))
	}
	return m
}
