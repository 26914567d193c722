package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/trentd187/golf-cup/internal/handicap"
)

// Format is the competition format a match is played under.
type Format string

const (
	// FormatHighLow compares each side's best and worst ball on every hole:
	// 2 points for the better best ball, 1 for the better worst ball.
	FormatHighLow Format = "high-low"
	// FormatFourball is a best-ball pairs match decided on the summed totals.
	FormatFourball Format = "fourball"
	// FormatTexasScramble has one team ball per side per hole, decided on totals.
	FormatTexasScramble Format = "texas-scramble"
	// FormatSingles is a one-on-one match decided on totals.
	FormatSingles Format = "singles"
)

// ParseFormat converts a tag into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Valid reports whether the engine has a rule for the format.
func (f Format) Valid() bool {
	switch f {
	case FormatHighLow, FormatFourball, FormatTexasScramble, FormatSingles:
		return true
	}
	return false
}

// Basis is what a side's hole value is measured in.
type Basis string

const (
	BasisStableford Basis = "stableford" // points, higher is better
	BasisStrokes    Basis = "strokes"    // net strokes, lower is better
)

// ParseBasis converts a tag into a Basis.
func ParseBasis(s string) (Basis, error) {
	b := Basis(s)
	if !b.Valid() {
		return "", fmt.Errorf("%w: scoring basis %q", ErrUnknownFormat, s)
	}
	return b, nil
}

// Valid reports whether b is a known basis.
func (b Basis) Valid() bool {
	return b == BasisStableford || b == BasisStrokes
}

// better reports whether x beats y under the basis.
func (b Basis) better(x, y float64) bool {
	if b == BasisStableford {
		return x > y
	}
	return x < y
}

// Side identifies one of the two teams, a tie, or no decision yet.
type Side string

const (
	SideNone  Side = ""
	SideTeamA Side = "team-a"
	SideTeamB Side = "team-b"
	SideTie   Side = "tie"
)

// sideOf maps a point differential (team A minus team B) to the side it favours.
func sideOf(diff float64) Side {
	switch {
	case diff > 0:
		return SideTeamA
	case diff < 0:
		return SideTeamB
	default:
		return SideTie
	}
}

// PointsConfig sets the competition points a decided match awards.
type PointsConfig struct {
	PointsPerMatch float64 `json:"points_per_match"`
	TiePoints      float64 `json:"tie_points"`
}

// DefaultPoints awards one point for a win and half a point to each side for a tie.
func DefaultPoints() PointsConfig {
	return PointsConfig{PointsPerMatch: 1, TiePoints: 0.5}
}

// HolePoints is what one hole contributes to each side. Played is false until
// both sides have a score on the hole.
type HolePoints struct {
	TeamA  float64 `json:"team_a"`
	TeamB  float64 `json:"team_b"`
	Played bool    `json:"played"`
}

// Rule is the per-format behaviour of the engine. Adding a format means adding a Rule.
type Rule interface {
	Format() Format
	// PointsPerHole is the most a side can win on a single hole.
	PointsPerHole() float64
	// EveryPlayerScores reports whether each player must post a score for a hole to
	// count, rather than one ball per side.
	EveryPlayerScores() bool
	// HolePoints compares the two sides' hole values (net strokes or Stableford points).
	HolePoints(basis Basis, teamA, teamB []float64) HolePoints
	// GameWon turns the hole-point clinch check into the status reported for the
	// match. It must name the same winner Resolve does, so formats settled on totals
	// override the hole-point view with their own.
	GameWon(holes GameWonStatus, basis Basis, teamA, teamB float64) GameWonStatus
	// Resolve decides the match from the side totals and the hole-by-hole status.
	Resolve(in ResolveInput) MatchResult
}

// RuleFor returns the rule for a format.
func RuleFor(f Format) (Rule, error) {
	switch f {
	case FormatHighLow:
		return highLowRule{}, nil
	case FormatFourball, FormatSingles:
		return aggregateRule{format: f}, nil
	case FormatTexasScramble:
		return aggregateRule{format: f, oneBall: true}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// bestWorst returns the best and worst of a side's values under the basis.
func bestWorst(basis Basis, values []float64) (best, worst float64) {
	best, worst = values[0], values[0]
	for _, v := range values[1:] {
		if basis.better(v, best) {
			best = v
		}
		if basis.better(worst, v) {
			worst = v
		}
	}
	return best, worst
}

// split awards pts to the better of a and b, or half each on a tie.
func split(basis Basis, a, b, pts float64) (float64, float64) {
	switch {
	case basis.better(a, b):
		return pts, 0
	case basis.better(b, a):
		return 0, pts
	default:
		return pts / 2, pts / 2
	}
}

type highLowRule struct{}

func (highLowRule) Format() Format          { return FormatHighLow }
func (highLowRule) PointsPerHole() float64  { return 3 }
func (highLowRule) EveryPlayerScores() bool { return true }

func (highLowRule) HolePoints(basis Basis, teamA, teamB []float64) HolePoints {
	if len(teamA) == 0 || len(teamB) == 0 {
		return HolePoints{}
	}
	bestA, worstA := bestWorst(basis, teamA)
	bestB, worstB := bestWorst(basis, teamB)
	hiA, hiB := split(basis, bestA, bestB, 2)
	loA, loB := split(basis, worstA, worstB, 1)
	return HolePoints{TeamA: hiA + loA, TeamB: hiB + loB, Played: true}
}

// GameWon for high-low is the hole-point clinch: the hole points are what decide it.
func (highLowRule) GameWon(holes GameWonStatus, _ Basis, _, _ float64) GameWonStatus {
	return holes
}

// Resolve for high-low uses the cumulative hole points: the match is settled as soon
// as it is clinched, or when every hole is validated.
func (highLowRule) Resolve(in ResolveInput) MatchResult {
	res := MatchResult{TeamATotal: in.TeamA, TeamBTotal: in.TeamB, Leader: sideOf(in.TeamA - in.TeamB)}
	if in.Status.IsWon {
		return res.award(in.Status.WinningTeam, in.Points)
	}
	if in.Complete {
		return res.award(res.Leader, in.Points)
	}
	return res
}

type aggregateRule struct {
	format  Format
	oneBall bool
}

func (r aggregateRule) Format() Format          { return r.format }
func (aggregateRule) PointsPerHole() float64    { return 1 }
func (r aggregateRule) EveryPlayerScores() bool { return !r.oneBall }

func (aggregateRule) HolePoints(basis Basis, teamA, teamB []float64) HolePoints {
	if len(teamA) == 0 || len(teamB) == 0 {
		return HolePoints{}
	}
	bestA, _ := bestWorst(basis, teamA)
	bestB, _ := bestWorst(basis, teamB)
	a, b := split(basis, bestA, bestB, 1)
	return HolePoints{TeamA: a, TeamB: b, Played: true}
}

// GameWon for aggregate formats follows the summed totals, not the hole points.
// A side leading every hole can still lose on totals, so nothing is won before all
// 18 holes are validated. A finished match with a nonzero difference reads "N UP",
// where N is the winning margin in strokes or Stableford points.
func (aggregateRule) GameWon(holes GameWonStatus, basis Basis, teamA, teamB float64) GameWonStatus {
	// CurrentDiff is oriented so a positive value favours team A under either basis.
	diff := teamA - teamB
	if basis == BasisStrokes {
		diff = -diff
	}
	out := GameWonStatus{ValidatedHoles: holes.ValidatedHoles, CurrentDiff: diff}
	if holes.ValidatedHoles != handicap.HoleCount || diff == 0 {
		return out
	}
	out.IsWon = true
	out.WinningTeam = sideOf(diff)
	out.DecisionHole = handicap.HoleCount
	out.Margin = math.Abs(diff)
	out.Display = fmt.Sprintf("%s UP", formatPoints(out.Margin))
	return out
}

// Resolve for aggregate formats compares the summed side totals and awards nothing
// until the match is complete.
func (aggregateRule) Resolve(in ResolveInput) MatchResult {
	res := MatchResult{TeamATotal: in.TeamA, TeamBTotal: in.TeamB}
	a, b := split(in.Basis, in.TeamA, in.TeamB, 2)
	res.Leader = sideOf(a - b)
	if !in.Complete {
		return res
	}
	return res.award(res.Leader, in.Points)
}

// formatPoints renders a point value without trailing zeros: 3, 2.5.
func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
