package sim

import (
	"strconv"

	"github.com/hardliner66/mms-go/mms"
)

// Stats is a snapshot of the engine's run statistics. Best-run values and
// the score are -1 until a value exists.
type Stats struct {
	TotalDistance               int32
	TotalTurns                  int32
	BestRunDistance             int32
	BestRunTurns                int32
	CurrentRunDistance          int32
	CurrentRunTurns             int32
	TotalEffectiveDistance      float32
	BestRunEffectiveDistance    float32
	CurrentRunEffectiveDistance float32
	Score                       float32
}

type runStats struct {
	totalDistance    int32
	totalTurns       int32
	currentDistance  int32
	currentTurns     int32
	bestDistance     int32
	bestTurns        int32
	totalEffective   float64
	currentEffective float64
	bestEffective    float64
	score            float64
}

func newRunStats() runStats {
	return runStats{
		bestDistance:  -1,
		bestTurns:     -1,
		bestEffective: -1,
		score:         -1,
	}
}

// step records one traversed cell. first marks the first cell of a
// moveForward command; cells after the first within the same command count
// half toward effective distance (the mouse keeps its speed on straights).
func (s *runStats) step(first bool) {
	s.totalDistance++
	s.currentDistance++
	cost := 0.5
	if first {
		cost = 1.0
	}
	s.totalEffective += cost
	s.currentEffective += cost
}

func (s *runStats) turn() {
	s.totalTurns++
	s.currentTurns++
}

// completeRun folds the current run into the best-run values if it beats
// them: fewer cells traveled wins, fewer turns breaks ties.
func (s *runStats) completeRun() {
	better := s.bestDistance < 0 ||
		s.currentDistance < s.bestDistance ||
		(s.currentDistance == s.bestDistance && s.currentTurns < s.bestTurns)
	if better {
		s.bestDistance = s.currentDistance
		s.bestTurns = s.currentTurns
		s.bestEffective = s.currentEffective
	}
}

// restartRun clears the current-run counters. Totals survive resets.
func (s *runStats) restartRun() {
	s.currentDistance = 0
	s.currentTurns = 0
	s.currentEffective = 0
}

func (s *runStats) snapshot() Stats {
	return Stats{
		TotalDistance:               s.totalDistance,
		TotalTurns:                  s.totalTurns,
		BestRunDistance:             s.bestDistance,
		BestRunTurns:                s.bestTurns,
		CurrentRunDistance:          s.currentDistance,
		CurrentRunTurns:             s.currentTurns,
		TotalEffectiveDistance:      float32(s.totalEffective),
		BestRunEffectiveDistance:    float32(s.bestEffective),
		CurrentRunEffectiveDistance: float32(s.currentEffective),
		Score:                       float32(s.score),
	}
}

// value formats one stat the way the wire expects: integers bare, floats
// in shortest decimal form.
func (s *runStats) value(q mms.StatQuery) string {
	switch q {
	case mms.StatTotalDistance:
		return strconv.FormatInt(int64(s.totalDistance), 10)
	case mms.StatTotalTurns:
		return strconv.FormatInt(int64(s.totalTurns), 10)
	case mms.StatBestRunDistance:
		return strconv.FormatInt(int64(s.bestDistance), 10)
	case mms.StatBestRunTurns:
		return strconv.FormatInt(int64(s.bestTurns), 10)
	case mms.StatCurrentRunDistance:
		return strconv.FormatInt(int64(s.currentDistance), 10)
	case mms.StatCurrentRunTurns:
		return strconv.FormatInt(int64(s.currentTurns), 10)
	case mms.StatTotalEffectiveDistance:
		return formatFloat(s.totalEffective)
	case mms.StatBestRunEffectiveDistance:
		return formatFloat(s.bestEffective)
	case mms.StatCurrentRunEffectiveDistance:
		return formatFloat(s.currentEffective)
	case mms.StatScore:
		return formatFloat(s.score)
	default:
		return "-1"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 32)
}
