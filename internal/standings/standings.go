// Package standings aggregates resolved match results into day and tournament
// leaderboards.
//
// Aggregation never fails on sparse data: a missing team, player or result simply
// contributes nothing, and a match without a result counts as not yet played.
package standings

import (
	"sort"
	"time"

	"github.com/trentd187/golf-cup/internal/scoring"
)

// Player is a roster entry.
type Player struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	HandicapIndex float64 `json:"handicap_index"`
}

// Team is one of the two sides of the competition. ID is "team-a" or "team-b".
type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	PlayerIDs []string `json:"player_ids"`
}

// Side is the match side this team plays on.
func (t Team) Side() scoring.Side {
	return scoring.Side(t.ID)
}

// Roster is the competition's players and teams.
type Roster struct {
	Players []Player `json:"players"`
	Teams   []Team   `json:"teams"`
}

// teamOf returns the team owning a player, if any.
func (r Roster) teamOf(playerID string) (Team, bool) {
	for _, t := range r.Teams {
		for _, id := range t.PlayerIDs {
			if id == playerID {
				return t, true
			}
		}
	}
	return Team{}, false
}

// MatchRecord is one match of a day with its recomputed result.
// Result is nil when the match has not been scored or its result could not be found.
type MatchRecord struct {
	MatchID string                `json:"match_id"`
	Flight  int                   `json:"flight"`
	TeamA   []string              `json:"team_a"`
	TeamB   []string              `json:"team_b"`
	Result  *scoring.MatchResult  `json:"result"`
	Cards   []scoring.PlayerScore `json:"-"`
}

// decided reports whether the match has awarded its points.
func (m MatchRecord) decided() bool {
	return m.Result != nil && m.Result.Decided()
}

// fields reports whether the given side has players in this match.
func (m MatchRecord) fields(side scoring.Side) bool {
	switch side {
	case scoring.SideTeamA:
		return len(m.TeamA) > 0
	case scoring.SideTeamB:
		return len(m.TeamB) > 0
	}
	return false
}

// pointsFor returns the points the match awarded to a side.
func (m MatchRecord) pointsFor(side scoring.Side) float64 {
	if !m.decided() {
		return 0
	}
	switch side {
	case scoring.SideTeamA:
		return m.Result.TeamAPoints
	case scoring.SideTeamB:
		return m.Result.TeamBPoints
	}
	return 0
}

// Day is one fixture day. PlannedMatches is how many matches the day will have once
// every pairing is locked; matches not yet paired count as unresolved for both teams.
type Day struct {
	ID             string         `json:"id"`
	Date           time.Time      `json:"date"`
	Format         scoring.Format `json:"format"`
	Basis          scoring.Basis  `json:"basis"`
	PlannedMatches int            `json:"planned_matches"`
	Matches        []MatchRecord  `json:"matches"`
}

// unpaired is the number of planned matches without a pairing yet.
func (d Day) unpaired() int {
	if d.PlannedMatches > len(d.Matches) {
		return d.PlannedMatches - len(d.Matches)
	}
	return 0
}

// TeamStanding is a team's record over a day or the whole competition.
type TeamStanding struct {
	TeamID                   string  `json:"team_id"`
	Name                     string  `json:"name"`
	Color                    string  `json:"color"`
	Points                   float64 `json:"points"`
	Won                      int     `json:"won"`
	Lost                     int     `json:"lost"`
	Halved                   int     `json:"halved"`
	Unresolved               int     `json:"unresolved"`
	PotentialRemainingPoints float64 `json:"potential_remaining_points"`
}

// PlayerStanding is a player's day: validated totals and match record.
type PlayerStanding struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	TeamID   string `json:"team_id"`
	Gross    int    `json:"gross"`
	Net      int    `json:"net"`
	Points   int    `json:"points"`
	Holes    int    `json:"holes"`
	Matches  int    `json:"matches"`
	Won      int    `json:"won"`
	Lost     int    `json:"lost"`
	Halved   int    `json:"halved"`
}

// DayLeaderboard is the derived view of one fixture day.
type DayLeaderboard struct {
	DayID   string           `json:"day_id"`
	Date    time.Time        `json:"date"`
	Teams   []TeamStanding   `json:"teams"`
	Players []PlayerStanding `json:"players"`
	Matches []MatchRecord    `json:"matches"`
}

// tally adds one match to a team's standing.
func (s *TeamStanding) tally(m MatchRecord, side scoring.Side, pts scoring.PointsConfig) {
	if !m.fields(side) {
		return
	}
	if !m.decided() {
		s.Unresolved++
		s.PotentialRemainingPoints += pts.PointsPerMatch
		return
	}
	s.Points += m.pointsFor(side)
	switch m.Result.Winner {
	case side:
		s.Won++
	case scoring.SideTie:
		s.Halved++
	default:
		s.Lost++
	}
}

// addUnpaired counts planned matches that have no pairing yet.
func (s *TeamStanding) addUnpaired(n int, pts scoring.PointsConfig) {
	s.Unresolved += n
	s.PotentialRemainingPoints += float64(n) * pts.PointsPerMatch
}

// BuildDay aggregates one day's matches.
func BuildDay(roster Roster, day Day, pts scoring.PointsConfig) DayLeaderboard {
	lb := DayLeaderboard{
		DayID:   day.ID,
		Date:    day.Date,
		Teams:   make([]TeamStanding, 0, len(roster.Teams)),
		Matches: day.Matches,
	}
	if lb.Matches == nil {
		lb.Matches = []MatchRecord{}
	}

	for _, team := range roster.Teams {
		st := TeamStanding{TeamID: team.ID, Name: team.Name, Color: team.Color}
		for _, m := range day.Matches {
			st.tally(m, team.Side(), pts)
		}
		st.addUnpaired(day.unpaired(), pts)
		lb.Teams = append(lb.Teams, st)
	}

	index := make(map[string]*PlayerStanding, len(roster.Players))
	order := make([]string, 0, len(roster.Players))
	for _, p := range roster.Players {
		ps := &PlayerStanding{PlayerID: p.ID, Name: p.Name}
		if team, ok := roster.teamOf(p.ID); ok {
			ps.TeamID = team.ID
		}
		index[p.ID] = ps
		order = append(order, p.ID)
	}

	for _, m := range day.Matches {
		for _, card := range m.Cards {
			ps, ok := index[card.PlayerID]
			if !ok {
				continue
			}
			ps.Gross += card.Total.Gross
			ps.Net += card.Total.Net
			ps.Points += card.Total.Points
			ps.Holes += card.Total.Holes
		}
		for _, id := range append(append([]string(nil), m.TeamA...), m.TeamB...) {
			ps, ok := index[id]
			if !ok {
				continue
			}
			ps.Matches++
			team, ok := roster.teamOf(id)
			if !ok || !m.decided() {
				continue
			}
			switch m.Result.Winner {
			case team.Side():
				ps.Won++
			case scoring.SideTie:
				ps.Halved++
			default:
				ps.Lost++
			}
		}
	}

	lb.Players = make([]PlayerStanding, 0, len(order))
	for _, id := range order {
		lb.Players = append(lb.Players, *index[id])
	}
	sortPlayers(lb.Players)
	return lb
}

// sortPlayers orders by Stableford points, then net, then name.
func sortPlayers(ps []PlayerStanding) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Points != ps[j].Points {
			return ps[i].Points > ps[j].Points
		}
		if ps[i].Net != ps[j].Net {
			return ps[i].Net < ps[j].Net
		}
		return ps[i].Name < ps[j].Name
	})
}
