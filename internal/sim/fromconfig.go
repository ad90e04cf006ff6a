package sim

import (
	"github.com/charmbracelet/log"

	"github.com/hardliner66/mms-go/internal/config"
	"github.com/hardliner66/mms-go/mms"
)

// FromConfig builds an engine from a maze definition.
func FromConfig(cfg config.Maze, logger *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := NewMaze(cfg.Width, cfg.Height)
	for _, w := range cfg.Walls {
		d, err := mms.ParseDirection(w.Dir)
		if err != nil {
			return nil, err
		}
		m.SetWall(w.X, w.Y, d)
	}

	opt := Options{
		Start: Pose{
			X:       cfg.Start.X,
			Y:       cfg.Start.Y,
			Heading: cfg.StartHeading(),
		},
		Logger: logger,
	}
	if cfg.Goal != nil {
		opt.Goal = &Cell{X: cfg.Goal.X, Y: cfg.Goal.Y}
	}
	return New(m, opt), nil
}
