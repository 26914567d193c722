package scoring

import (
	"fmt"

	"github.com/trentd187/golf-cup/internal/handicap"
)

// PlayerEntry is one player's raw sheet for a match: gross strokes per hole
// (0 = not entered) and the handicap strokes allocated to each hole.
type PlayerEntry struct {
	PlayerID string
	Gross    []int
	Strokes  []int
}

// MatchInput is a consistent snapshot of everything that determines a match.
type MatchInput struct {
	Format    Format
	Basis     Basis
	Layout    handicap.Layout
	TeamA     []PlayerEntry
	TeamB     []PlayerEntry
	Validated []bool
	Points    PointsConfig
}

// PlayerHole is one player's result on one hole.
type PlayerHole struct {
	Hole    int  `json:"hole"`
	Par     int  `json:"par"`
	Gross   int  `json:"gross"`
	Strokes int  `json:"strokes"`
	Net     int  `json:"net"`
	Points  int  `json:"points"`
	Played  bool `json:"played"`
}

// PlayerScore is one player's scorecard. Front, Back and Total only count validated holes.
type PlayerScore struct {
	PlayerID string       `json:"player_id"`
	Side     Side         `json:"side"`
	Holes    []PlayerHole `json:"holes"`
	Front    Totals       `json:"front"`
	Back     Totals       `json:"back"`
	Total    Totals       `json:"total"`
	Complete bool         `json:"complete"`
}

// MatchScore is the full recomputed state of a match.
type MatchScore struct {
	Format     Format        `json:"format"`
	Basis      Basis         `json:"basis"`
	Players    []PlayerScore `json:"players"`
	HolePoints []HolePoints  `json:"hole_points"`
	Statuses   []HoleStatus  `json:"statuses"`
	GameWon    GameWonStatus `json:"game_won"`
	Result     MatchResult   `json:"result"`
}

// MaxSidePlayers is the most players one side of a match can field.
const MaxSidePlayers = 2

// ScoreMatch recomputes a match from scratch: player cards, per-hole points,
// hole-by-hole status, clinch detection and the resolved result.
func ScoreMatch(in MatchInput) (MatchScore, error) {
	rule, err := RuleFor(in.Format)
	if err != nil {
		return MatchScore{}, err
	}
	if !in.Basis.Valid() {
		return MatchScore{}, fmt.Errorf("%w: scoring basis %q", ErrUnknownFormat, in.Basis)
	}
	if err := in.Layout.Validate(); err != nil {
		return MatchScore{}, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}
	if err := checkShape("validation flags", len(in.Validated)); err != nil {
		return MatchScore{}, err
	}
	for _, side := range [][]PlayerEntry{in.TeamA, in.TeamB} {
		if len(side) == 0 || len(side) > MaxSidePlayers {
			return MatchScore{}, fmt.Errorf("%w: a side must field 1 to %d players, got %d", ErrDataIntegrity, MaxSidePlayers, len(side))
		}
	}

	// Player cards first: net, points and segment totals for every player, team A
	// before team B. Everything below reads from these cards.
	out := MatchScore{Format: in.Format, Basis: in.Basis}
	for _, group := range []struct {
		side    Side
		entries []PlayerEntry
	}{{SideTeamA, in.TeamA}, {SideTeamB, in.TeamB}} {
		for _, e := range group.entries {
			ps, err := scorePlayer(e, group.side, in.Layout, in.Validated)
			if err != nil {
				return MatchScore{}, err
			}
			out.Players = append(out.Players, ps)
		}
	}

	// Hole points are awarded as soon as both sides have a score, validated or not,
	// so the sheet can show the provisional hole. The totals only take validated holes.
	out.HolePoints = make([]HolePoints, handicap.HoleCount)
	var totalA, totalB float64
	for i := 0; i < handicap.HoleCount; i++ {
		valuesA, okA := sideValues(out.Players, SideTeamA, i, in.Basis, rule.EveryPlayerScores())
		valuesB, okB := sideValues(out.Players, SideTeamB, i, in.Basis, rule.EveryPlayerScores())
		if !okA || !okB {
			continue
		}
		out.HolePoints[i] = rule.HolePoints(in.Basis, valuesA, valuesB)
		if in.Validated[i] {
			bestA, _ := bestWorst(in.Basis, valuesA)
			bestB, _ := bestWorst(in.Basis, valuesB)
			totalA += bestA
			totalB += bestB
		}
	}

	out.Statuses, err = HoleByHoleStatus(out.HolePoints, in.Validated)
	if err != nil {
		return MatchScore{}, err
	}
	holes, err := CheckGameWon(out.Statuses, in.Validated, rule.PointsPerHole())
	if err != nil {
		return MatchScore{}, err
	}

	// High-low is decided on accumulated hole points, not on stroke totals.
	if in.Format == FormatHighLow {
		final := out.Statuses[handicap.HoleCount-1]
		totalA, totalB = final.CumulativeA, final.CumulativeB
	}
	// The reported status comes from the same numbers the result is resolved from.
	out.GameWon = rule.GameWon(holes, in.Basis, totalA, totalB)
	out.Result = rule.Resolve(ResolveInput{
		Basis:    in.Basis,
		TeamA:    totalA,
		TeamB:    totalB,
		Complete: out.GameWon.ValidatedHoles == handicap.HoleCount,
		Status:   out.GameWon,
		Points:   in.Points,
	})
	return out, nil
}

// scorePlayer builds one player's card. A hole without a gross score is not played
// and leaves the card incomplete.
func scorePlayer(e PlayerEntry, side Side, layout handicap.Layout, validated []bool) (PlayerScore, error) {
	card := Card{Gross: e.Gross, Strokes: e.Strokes, Pars: layout.Pars}
	if err := card.check(); err != nil {
		return PlayerScore{}, fmt.Errorf("player %s: %w", e.PlayerID, err)
	}

	ps := PlayerScore{PlayerID: e.PlayerID, Side: side, Complete: true}
	ps.Holes = make([]PlayerHole, handicap.HoleCount)
	for i := range ps.Holes {
		h := PlayerHole{Hole: i + 1, Par: layout.Pars[i], Gross: e.Gross[i], Strokes: e.Strokes[i]}
		if net, ok := NetScore(e.Gross[i], e.Strokes[i]); ok {
			h.Net = net
			h.Points = StablefordPoints(e.Gross[i], layout.Pars[i], e.Strokes[i])
			h.Played = true
		} else {
			ps.Complete = false
		}
		ps.Holes[i] = h
	}

	// card.check passed above, so SumCard cannot fail.
	ps.Front, _ = SumCard(card, SegmentFront, validated)
	ps.Back, _ = SumCard(card, SegmentBack, validated)
	ps.Total, _ = SumCard(card, SegmentAll, validated)
	return ps, nil
}

// sideValues collects a side's hole values in the basis unit. ok is false while the
// side's score on the hole is not in yet: every player must have scored when
// everyPlayer is set, otherwise one ball is enough.
func sideValues(players []PlayerScore, side Side, hole int, basis Basis, everyPlayer bool) ([]float64, bool) {
	var values []float64
	missing := false
	for _, p := range players {
		if p.Side != side {
			continue
		}
		h := p.Holes[hole]
		if !h.Played {
			missing = true
			continue
		}
		if basis == BasisStableford {
			values = append(values, float64(h.Points))
		} else {
			values = append(values, float64(h.Net))
		}
	}
	if len(values) == 0 || (everyPlayer && missing) {
		return nil, false
	}
	return values, true
}
