package scoring

// MatchResult is derived from a score sheet and never edited directly.
// Winner stays SideNone until the match is decided; Leader is the provisional
// leading side from the current totals and is for display only.
type MatchResult struct {
	Winner      Side    `json:"winner"`
	Leader      Side    `json:"leader"`
	TeamAPoints float64 `json:"team_a_points"`
	TeamBPoints float64 `json:"team_b_points"`
	TeamATotal  float64 `json:"team_a_total"`
	TeamBTotal  float64 `json:"team_b_total"`
	Complete    bool    `json:"complete"`
}

// Decided reports whether competition points have been awarded.
func (r MatchResult) Decided() bool {
	return r.Complete && r.Winner != SideNone
}

// award settles the result in favour of side (or SideTie).
func (r MatchResult) award(side Side, pts PointsConfig) MatchResult {
	r.Complete = true
	r.Winner = side
	switch side {
	case SideTeamA:
		r.TeamAPoints = pts.PointsPerMatch
	case SideTeamB:
		r.TeamBPoints = pts.PointsPerMatch
	default:
		r.Winner = SideTie
		r.TeamAPoints = pts.TiePoints
		r.TeamBPoints = pts.TiePoints
	}
	return r
}

// ResolveInput carries everything a format rule needs to settle a match.
// TeamA and TeamB are cumulative hole points for high-low and summed side values
// (net strokes or Stableford points) for aggregate formats.
type ResolveInput struct {
	Basis    Basis
	TeamA    float64
	TeamB    float64
	Complete bool
	Status   GameWonStatus
	Points   PointsConfig
}

// Resolve decides a match under the given format. Before completion only a
// provisional leader is reported; no points are awarded.
func Resolve(format Format, basis Basis, teamA, teamB float64, allPlayersComplete bool, status GameWonStatus, pts PointsConfig) (MatchResult, error) {
	rule, err := RuleFor(format)
	if err != nil {
		return MatchResult{}, err
	}
	if !basis.Valid() {
		return MatchResult{}, ErrUnknownFormat
	}
	return rule.Resolve(ResolveInput{
		Basis:    basis,
		TeamA:    teamA,
		TeamB:    teamB,
		Complete: allPlayersComplete,
		Status:   status,
		Points:   pts,
	}), nil
}
