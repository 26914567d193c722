// Package scoring turns per-hole gross scores into net scores, Stableford points,
// hole-by-hole match status and match results.
//
// Everything in this package is a pure function of its arguments. Callers recompute
// from the full score sheet after every mutation; nothing is patched in place.
package scoring

import (
	"fmt"

	"github.com/trentd187/golf-cup/internal/handicap"
)

// NetScore returns gross minus strokes. ok is false when gross is 0, which means the
// hole has not been played yet; callers must treat that as absent, not as a score.
func NetScore(gross, strokes int) (net int, ok bool) {
	if gross <= 0 {
		return 0, false
	}
	return gross - strokes, true
}

// StablefordPoints scores one hole against par after strokes:
// net -3 or better 5, -2 4, -1 3, level 2, +1 1, +2 or worse 0.
// An unplayed hole (gross 0) scores 0.
func StablefordPoints(gross, par, strokes int) int {
	net, ok := NetScore(gross, strokes)
	if !ok {
		return 0
	}
	points := 2 - (net - par)
	switch {
	case points > 5:
		return 5
	case points < 0:
		return 0
	default:
		return points
	}
}

// Segment selects which holes a total covers.
type Segment int

const (
	SegmentAll   Segment = iota // holes 1-18
	SegmentFront                // holes 1-9
	SegmentBack                 // holes 10-18
)

// bounds returns the half-open hole index range for the segment.
func (s Segment) bounds() (int, int) {
	switch s {
	case SegmentFront:
		return 0, 9
	case SegmentBack:
		return 9, handicap.HoleCount
	default:
		return 0, handicap.HoleCount
	}
}

// Card is one player's 18-hole sheet: gross strokes (0 = not entered), allocated
// handicap strokes and the hole pars.
type Card struct {
	Gross   []int
	Strokes []int
	Pars    []int
}

func (c Card) check() error {
	if len(c.Gross) != handicap.HoleCount || len(c.Strokes) != handicap.HoleCount || len(c.Pars) != handicap.HoleCount {
		return fmt.Errorf("%w: card has %d gross, %d strokes, %d pars; want %d each",
			ErrDataIntegrity, len(c.Gross), len(c.Strokes), len(c.Pars), handicap.HoleCount)
	}
	return nil
}

// Totals are summed over the holes a player actually played.
type Totals struct {
	Gross  int `json:"gross"`
	Net    int `json:"net"`
	Points int `json:"points"`
	Holes  int `json:"holes"`
}

// SumCard totals a card over a segment. With a non-nil validated slice only holes
// flagged validated are summed; the others are left out entirely rather than counted as zero.
// Holes without a gross score never count.
func SumCard(card Card, seg Segment, validated []bool) (Totals, error) {
	if err := card.check(); err != nil {
		return Totals{}, err
	}
	if validated != nil && len(validated) != handicap.HoleCount {
		return Totals{}, fmt.Errorf("%w: %d validation flags, want %d", ErrDataIntegrity, len(validated), handicap.HoleCount)
	}

	var t Totals
	from, to := seg.bounds()
	for i := from; i < to; i++ {
		if validated != nil && !validated[i] {
			continue
		}
		net, ok := NetScore(card.Gross[i], card.Strokes[i])
		if !ok {
			continue
		}
		t.Gross += card.Gross[i]
		t.Net += net
		t.Points += StablefordPoints(card.Gross[i], card.Pars[i], card.Strokes[i])
		t.Holes++
	}
	return t, nil
}
