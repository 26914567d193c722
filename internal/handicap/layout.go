package handicap

import (
	"errors"
	"fmt"
)

// HoleCount is the fixed number of holes in a round.
const HoleCount = 18

// ErrInvalidLayout is returned when course geometry is not a well-formed 18-hole layout.
var ErrInvalidLayout = errors.New("invalid course layout")

// Layout is the read-only geometry of an 18-hole course.
// Pars[i] and StrokeIndexes[i] describe hole i+1. Stroke index 1 is the hardest hole.
type Layout struct {
	Pars          []int `json:"pars"`
	StrokeIndexes []int `json:"stroke_indexes"`
}

// Validate checks that the layout has 18 sensible pars and that the stroke
// indexes are a permutation of 1..18.
func (l Layout) Validate() error {
	if len(l.Pars) != HoleCount {
		return fmt.Errorf("%w: %d pars, want %d", ErrInvalidLayout, len(l.Pars), HoleCount)
	}
	if len(l.StrokeIndexes) != HoleCount {
		return fmt.Errorf("%w: %d stroke indexes, want %d", ErrInvalidLayout, len(l.StrokeIndexes), HoleCount)
	}
	seen := make([]bool, HoleCount+1)
	for i := 0; i < HoleCount; i++ {
		if p := l.Pars[i]; p < 3 || p > 6 {
			return fmt.Errorf("%w: hole %d has par %d", ErrInvalidLayout, i+1, p)
		}
		si := l.StrokeIndexes[i]
		if si < 1 || si > HoleCount {
			return fmt.Errorf("%w: hole %d has stroke index %d", ErrInvalidLayout, i+1, si)
		}
		if seen[si] {
			return fmt.Errorf("%w: stroke index %d used twice", ErrInvalidLayout, si)
		}
		seen[si] = true
	}
	return nil
}

// Par returns the sum of the hole pars.
func (l Layout) Par() int {
	total := 0
	for _, p := range l.Pars {
		total += p
	}
	return total
}

// StrokesPerHole spreads a playing handicap over the holes by stroke index.
//
// A hole with stroke index si receives one stroke once the handicap reaches si, a
// second once it reaches 18+si, and so on for every further full round of 18.
// Plus (negative) and zero handicaps receive nothing; strokes are never given back.
// The sum over all holes always equals a non-negative playing handicap.
func (l Layout) StrokesPerHole(playingHandicap int) []int {
	strokes := make([]int, len(l.StrokeIndexes))
	if playingHandicap <= 0 {
		return strokes
	}
	fullRounds := playingHandicap / HoleCount
	extra := playingHandicap % HoleCount
	for i, si := range l.StrokeIndexes {
		strokes[i] = fullRounds
		if extra >= si {
			strokes[i]++
		}
	}
	return strokes
}

// DefaultLayout is the home course used when a fixture day does not name one.
func DefaultLayout() Layout {
	return Layout{
		Pars:          []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 4, 3, 5, 4, 4, 3, 4, 5},
		StrokeIndexes: []int{7, 1, 15, 11, 3, 9, 17, 5, 13, 8, 2, 16, 12, 4, 10, 18, 6, 14},
	}
}
