package mms

import (
	"errors"
	"testing"
)

func TestDirectionRoundTrip(t *testing.T) {
	for _, d := range []Direction{North, East, South, West} {
		got, err := ParseDirection(d.Letter())
		if err != nil {
			t.Errorf("ParseDirection(%q): %v", d.Letter(), err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.Letter(), got, d)
		}
	}

	for _, s := range []string{"", "N", "x", "north"} {
		if _, err := ParseDirection(s); !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("ParseDirection(%q) = %v, want ErrInvalidDirection", s, err)
		}
	}
}

func TestDirectionTurns(t *testing.T) {
	tests := []struct {
		d           Direction
		left, right Direction
	}{
		{North, West, East},
		{East, North, South},
		{South, East, West},
		{West, South, North},
	}
	for _, tt := range tests {
		if got := tt.d.Left(); got != tt.left {
			t.Errorf("%v.Left() = %v, want %v", tt.d, got, tt.left)
		}
		if got := tt.d.Right(); got != tt.right {
			t.Errorf("%v.Right() = %v, want %v", tt.d, got, tt.right)
		}
		if got := tt.d.Opposite(); got != tt.left.Left() {
			t.Errorf("%v.Opposite() = %v, want %v", tt.d, got, tt.left.Left())
		}
	}
}

func TestDirectionDelta(t *testing.T) {
	// North is +y (origin at the bottom-left).
	if dx, dy := North.Delta(); dx != 0 || dy != 1 {
		t.Errorf("North.Delta() = (%d, %d), want (0, 1)", dx, dy)
	}
	if dx, dy := South.Delta(); dx != 0 || dy != -1 {
		t.Errorf("South.Delta() = (%d, %d), want (0, -1)", dx, dy)
	}
	if dx, dy := East.Delta(); dx != 1 || dy != 0 {
		t.Errorf("East.Delta() = (%d, %d), want (1, 0)", dx, dy)
	}
	if dx, dy := West.Delta(); dx != -1 || dy != 0 {
		t.Errorf("West.Delta() = (%d, %d), want (-1, 0)", dx, dy)
	}
}

func TestColorRoundTrip(t *testing.T) {
	colors := []CellColor{
		ColorBlack, ColorBlue, ColorGray, ColorCyan, ColorGreen,
		ColorOrange, ColorRed, ColorWhite, ColorYellow, ColorDarkBlue,
		ColorDarkCyan, ColorDarkGray, ColorDarkGreen, ColorDarkRed,
		ColorDarkYellow,
	}
	seen := make(map[string]CellColor)
	for _, c := range colors {
		letter := c.Letter()
		if letter == "?" {
			t.Errorf("%v has no wire letter", c)
			continue
		}
		if prev, dup := seen[letter]; dup {
			t.Errorf("letter %q shared by %v and %v", letter, prev, c)
		}
		seen[letter] = c

		got, err := ParseColor(letter)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", letter, err)
		}
		if got != c {
			t.Errorf("ParseColor(%q) = %v, want %v", letter, got, c)
		}
	}

	// Dark variants are uppercase, gray dodges green's letter.
	if ColorDarkGreen.Letter() != "G" || ColorGray.Letter() != "a" {
		t.Error("color letter encoding drifted from the wire format")
	}

	for _, s := range []string{"", "z", "kk", "green"} {
		if _, err := ParseColor(s); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) = %v, want ErrInvalidColor", s, err)
		}
	}
}

func TestStatQueryRoundTrip(t *testing.T) {
	queries := []StatQuery{
		StatTotalDistance, StatTotalTurns, StatBestRunDistance,
		StatBestRunTurns, StatCurrentRunDistance, StatCurrentRunTurns,
		StatTotalEffectiveDistance, StatBestRunEffectiveDistance,
		StatCurrentRunEffectiveDistance, StatScore,
	}
	for _, q := range queries {
		got, err := ParseStatQuery(q.String())
		if err != nil {
			t.Errorf("ParseStatQuery(%q): %v", q, err)
		}
		if got != q {
			t.Errorf("ParseStatQuery(%q) = %v, want %v", q, got, q)
		}
	}

	if _, err := ParseStatQuery("total_distance"); !errors.Is(err, ErrInvalidStatQuery) {
		t.Errorf("underscore form accepted: %v", err)
	}
}

func TestStatKinds(t *testing.T) {
	floats := map[StatQuery]bool{
		StatTotalEffectiveDistance:      true,
		StatBestRunEffectiveDistance:    true,
		StatCurrentRunEffectiveDistance: true,
		StatScore:                       true,
	}
	for q := StatTotalDistance; q <= StatScore; q++ {
		if q.IsFloat() != floats[q] {
			t.Errorf("%v.IsFloat() = %v, want %v", q, q.IsFloat(), floats[q])
		}
	}

	s := Stat{Query: StatTotalDistance, Int: 42}
	if s.Value() != 42 {
		t.Errorf("int Stat.Value() = %v, want 42", s.Value())
	}
	s = Stat{Query: StatScore, Float: 1.5}
	if s.Value() != 1.5 {
		t.Errorf("float Stat.Value() = %v, want 1.5", s.Value())
	}
}
