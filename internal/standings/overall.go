package standings

import (
	"time"

	"github.com/trentd187/golf-cup/internal/scoring"
)

// DayBreakdown is one day's contribution to the overall standings.
type DayBreakdown struct {
	DayID       string    `json:"day_id"`
	Date        time.Time `json:"date"`
	TeamAPoints float64   `json:"team_a_points"`
	TeamBPoints float64   `json:"team_b_points"`
	Completed   int       `json:"completed"`
	Remaining   int       `json:"remaining"`
}

// OverallLeaderboard is the tournament-wide view across all days to date.
type OverallLeaderboard struct {
	Teams            []TeamStanding `json:"teams"`
	Decided          bool           `json:"decided"`
	Winner           scoring.Side   `json:"winner"`
	CompletedMatches int            `json:"completed_matches"`
	RemainingMatches int            `json:"remaining_matches"`
	Days             []DayBreakdown `json:"days"`
}

// Clinched reports whether a side on total points can no longer be caught by a rival
// with rivalTotal points and rivalRemaining points still available to it.
// Drawing level is still catching up, so the comparison is strict.
func Clinched(total, rivalTotal, rivalRemaining float64) bool {
	return total > rivalTotal+rivalRemaining
}

// BuildOverall sums every day and decides whether the competition is settled.
func BuildOverall(roster Roster, days []Day, pts scoring.PointsConfig) OverallLeaderboard {
	lb := OverallLeaderboard{Days: []DayBreakdown{}}

	totals := make([]TeamStanding, len(roster.Teams))
	for i, team := range roster.Teams {
		totals[i] = TeamStanding{TeamID: team.ID, Name: team.Name, Color: team.Color}
	}

	// Each day is built exactly as its own leaderboard would be, then folded into the
	// running totals. Pairings not made yet count as remaining matches.
	for _, day := range days {
		dayLB := BuildDay(Roster{Teams: roster.Teams}, day, pts)
		bd := DayBreakdown{DayID: day.ID, Date: day.Date, Remaining: day.unpaired()}
		for _, m := range day.Matches {
			if m.decided() {
				bd.Completed++
			} else {
				bd.Remaining++
			}
			bd.TeamAPoints += m.pointsFor(scoring.SideTeamA)
			bd.TeamBPoints += m.pointsFor(scoring.SideTeamB)
		}
		for i, st := range dayLB.Teams {
			totals[i].Points += st.Points
			totals[i].Won += st.Won
			totals[i].Lost += st.Lost
			totals[i].Halved += st.Halved
			totals[i].Unresolved += st.Unresolved
			totals[i].PotentialRemainingPoints += st.PotentialRemainingPoints
		}
		lb.CompletedMatches += bd.Completed
		lb.RemainingMatches += bd.Remaining
		lb.Days = append(lb.Days, bd)
	}

	lb.Teams = totals
	// A side has won the cup once the other side cannot reach it even by taking
	// every point still available.
	if len(totals) == 2 {
		a, b := totals[0], totals[1]
		switch {
		case Clinched(a.Points, b.Points, b.PotentialRemainingPoints):
			lb.Decided, lb.Winner = true, scoring.Side(a.TeamID)
		case Clinched(b.Points, a.Points, a.PotentialRemainingPoints):
			lb.Decided, lb.Winner = true, scoring.Side(b.TeamID)
		}
	}
	return lb
}
