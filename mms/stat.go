package mms

import "fmt"

// StatQuery identifies one of the simulator's run statistics. The wire
// form is the kebab-case name sent as a bare command line.
type StatQuery int

const (
	StatTotalDistance StatQuery = iota
	StatTotalTurns
	StatBestRunDistance
	StatBestRunTurns
	StatCurrentRunDistance
	StatCurrentRunTurns
	StatTotalEffectiveDistance
	StatBestRunEffectiveDistance
	StatCurrentRunEffectiveDistance
	StatScore
)

var statQueryNames = map[StatQuery]string{
	StatTotalDistance:               "total-distance",
	StatTotalTurns:                  "total-turns",
	StatBestRunDistance:             "best-run-distance",
	StatBestRunTurns:                "best-run-turns",
	StatCurrentRunDistance:          "current-run-distance",
	StatCurrentRunTurns:             "current-run-turns",
	StatTotalEffectiveDistance:      "total-effective-distance",
	StatBestRunEffectiveDistance:    "best-run-effective-distance",
	StatCurrentRunEffectiveDistance: "current-run-effective-distance",
	StatScore:                       "score",
}

// ParseStatQuery parses the kebab-case wire form.
func ParseStatQuery(s string) (StatQuery, error) {
	for q, name := range statQueryNames {
		if s == name {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatQuery, s)
}

// String returns the kebab-case wire form.
func (q StatQuery) String() string {
	if n, ok := statQueryNames[q]; ok {
		return n
	}
	return "unknown"
}

// IsFloat reports whether the stat carries a fractional value. Distance
// and turn counters are integers; effective distances and the score are
// floats.
func (q StatQuery) IsFloat() bool {
	switch q {
	case StatTotalEffectiveDistance, StatBestRunEffectiveDistance,
		StatCurrentRunEffectiveDistance, StatScore:
		return true
	default:
		return false
	}
}

// Stat is one answered statistics query. Exactly one of Int and Float is
// meaningful, selected by Query.IsFloat. A value of -1 means the stat has
// no value yet (for example best-run-distance before any completed run).
type Stat struct {
	Query StatQuery
	Int   int32
	Float float32
}

// Value returns the stat as a float64 regardless of kind.
func (s Stat) Value() float64 {
	if s.Query.IsFloat() {
		return float64(s.Float)
	}
	return float64(s.Int)
}
