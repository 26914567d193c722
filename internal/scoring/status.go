package scoring

import (
	"fmt"
	"math"

	"github.com/trentd187/golf-cup/internal/handicap"
)

// HoleStatus is the running state of a match after one hole.
// Unvalidated holes keep their slot so Hole numbering stays 1:1 with the course,
// but they contribute nothing and carry the previous cumulative totals forward.
type HoleStatus struct {
	Hole        int     `json:"hole"`
	Validated   bool    `json:"validated"`
	TeamAPoints float64 `json:"team_a_points"`
	TeamBPoints float64 `json:"team_b_points"`
	CumulativeA float64 `json:"cumulative_a"`
	CumulativeB float64 `json:"cumulative_b"`
	Leader      Side    `json:"leader"`
	Lead        float64 `json:"lead"`
}

// GameWonStatus reports whether a match is mathematically decided.
// Margin and HolesRemaining are taken at DecisionHole, the hole on which the outcome
// became certain, so a match won 3&2 keeps reading 3&2 if later holes are still played.
type GameWonStatus struct {
	IsWon          bool    `json:"is_won"`
	WinningTeam    Side    `json:"winning_team"`
	DecisionHole   int     `json:"decision_hole"`
	Margin         float64 `json:"margin"`
	HolesRemaining int     `json:"holes_remaining"`
	Display        string  `json:"display"`
	CurrentDiff    float64 `json:"current_diff"`
	ValidatedHoles int     `json:"validated_holes"`
}

func checkShape(name string, n int) error {
	if n != handicap.HoleCount {
		return fmt.Errorf("%w: %d %s, want %d", ErrDataIntegrity, n, name, handicap.HoleCount)
	}
	return nil
}

// HoleByHoleStatus accumulates hole points over validated holes only.
// A validated hole without points for both sides is a data-integrity error.
func HoleByHoleStatus(points []HolePoints, validated []bool) ([]HoleStatus, error) {
	if err := checkShape("hole points", len(points)); err != nil {
		return nil, err
	}
	if err := checkShape("validation flags", len(validated)); err != nil {
		return nil, err
	}

	statuses := make([]HoleStatus, handicap.HoleCount)
	var cumA, cumB float64
	for i := range statuses {
		st := HoleStatus{Hole: i + 1, Validated: validated[i]}
		if validated[i] {
			if !points[i].Played {
				return nil, fmt.Errorf("%w: hole %d is validated but not scored by both sides", ErrDataIntegrity, i+1)
			}
			st.TeamAPoints = points[i].TeamA
			st.TeamBPoints = points[i].TeamB
			cumA += points[i].TeamA
			cumB += points[i].TeamB
		}
		st.CumulativeA = cumA
		st.CumulativeB = cumB
		st.Leader = sideOf(cumA - cumB)
		st.Lead = math.Abs(cumA - cumB)
		statuses[i] = st
	}
	return statuses, nil
}

// CheckGameWon decides whether the trailing side can still catch up.
//
// With v holes validated, 18-v remain and at most (18-v)*pointsPerHole points are
// still available. The match is won once the differential at the last validated hole
// is strictly greater than that. The decision hole is the first hole of the final
// unbroken run of clinched validated holes.
func CheckGameWon(statuses []HoleStatus, validated []bool, pointsPerHole float64) (GameWonStatus, error) {
	if err := checkShape("hole statuses", len(statuses)); err != nil {
		return GameWonStatus{}, err
	}
	if err := checkShape("validation flags", len(validated)); err != nil {
		return GameWonStatus{}, err
	}
	if pointsPerHole <= 0 {
		return GameWonStatus{}, fmt.Errorf("%w: points per hole must be positive, got %v", ErrDataIntegrity, pointsPerHole)
	}

	// countAt[i] is the number of validated holes up to and including hole i.
	countAt := make([]int, handicap.HoleCount)
	count, last := 0, -1
	for i, v := range validated {
		if statuses[i].Validated != v {
			return GameWonStatus{}, fmt.Errorf("%w: hole %d status disagrees with its validation flag", ErrDataIntegrity, i+1)
		}
		if v {
			count++
			last = i
		}
		countAt[i] = count
	}

	out := GameWonStatus{ValidatedHoles: count}
	if count == 0 {
		return out, nil
	}

	diffAt := func(i int) float64 { return statuses[i].CumulativeA - statuses[i].CumulativeB }
	clinchedAt := func(i int) bool {
		remaining := float64(handicap.HoleCount-countAt[i]) * pointsPerHole
		return math.Abs(diffAt(i)) > remaining
	}

	out.CurrentDiff = diffAt(last)
	if !clinchedAt(last) {
		return out, nil
	}

	decision := last
	for i := last - 1; i >= 0; i-- {
		if !validated[i] {
			continue
		}
		if !clinchedAt(i) {
			break
		}
		decision = i
	}

	out.IsWon = true
	out.WinningTeam = sideOf(out.CurrentDiff)
	out.DecisionHole = decision + 1
	out.Margin = math.Abs(diffAt(decision))
	out.HolesRemaining = handicap.HoleCount - countAt[decision]
	if out.HolesRemaining == 0 {
		out.Display = fmt.Sprintf("%s UP", formatPoints(out.Margin))
	} else {
		out.Display = fmt.Sprintf("%s&%d", formatPoints(out.Margin), out.HolesRemaining)
	}
	return out, nil
}
