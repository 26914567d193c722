// Package tournament is the glue between stored competition data and the scoring engine.
//
// It is the only package that reads source data. Every derived view (match status,
// results, leaderboards) is recomputed from a fresh snapshot on each call; nothing
// derived is ever stored.
package tournament

import (
	"time"

	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/scoring"
)

// Team ids. Exactly two teams take part in a competition.
const (
	TeamA = string(scoring.SideTeamA)
	TeamB = string(scoring.SideTeamB)
)

// Limits on score entry and roster data.
const (
	MaxGross          = 20
	MinHandicapIndex  = -10.0
	MaxHandicapIndex  = 54.0
	MaxPlannedMatches = 32
)

// Player is a roster entry. The handicap index may be edited at any time.
type Player struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	HandicapIndex float64 `json:"handicap_index"`
}

// Team owns a disjoint set of players.
type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	PlayerIDs []string `json:"player_ids"`
}

// Course is a named 18-hole layout.
type Course struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Layout handicap.Layout `json:"layout"`
}

// Day is a fixture day: one course, one format and scoring basis for every match.
type Day struct {
	ID             string         `json:"id"`
	Date           time.Time      `json:"date"`
	CourseID       string         `json:"course_id"`
	Format         scoring.Format `json:"format"`
	Basis          scoring.Basis  `json:"basis"`
	PlannedMatches int            `json:"planned_matches"`
}

// Match is a locked pairing. Format and Basis are inherited from the day.
type Match struct {
	ID     string         `json:"id"`
	DayID  string         `json:"day_id"`
	Flight int            `json:"flight"`
	Format scoring.Format `json:"format"`
	Basis  scoring.Basis  `json:"basis"`
	TeeKey string         `json:"tee"`
	TeamA  []string       `json:"team_a"`
	TeamB  []string       `json:"team_b"`
}

// Side returns the side a player plays on in this match.
func (m Match) Side(playerID string) (scoring.Side, bool) {
	for _, id := range m.TeamA {
		if id == playerID {
			return scoring.SideTeamA, true
		}
	}
	for _, id := range m.TeamB {
		if id == playerID {
			return scoring.SideTeamB, true
		}
	}
	return scoring.SideNone, false
}

// PlayerIDs lists every player of the match, team A first.
func (m Match) PlayerIDs() []string {
	out := make([]string, 0, len(m.TeamA)+len(m.TeamB))
	out = append(out, m.TeamA...)
	return append(out, m.TeamB...)
}

// Sheet is a match's raw score sheet: gross strokes per player per hole (0 = not
// entered) and which holes are validated.
type Sheet struct {
	Gross     map[string][]int `json:"gross"`
	Validated []bool           `json:"validated"`
}

// gross returns a full-length copy of a player's card.
func (s Sheet) gross(playerID string) []int {
	out := make([]int, handicap.HoleCount)
	copy(out, s.Gross[playerID])
	return out
}

// validated returns a full-length copy of the validation flags.
func (s Sheet) validated() []bool {
	out := make([]bool, handicap.HoleCount)
	copy(out, s.Validated)
	return out
}

// ScoreEntry is one player's gross score on one hole. Gross 0 clears the score.
type ScoreEntry struct {
	MatchID   string
	PlayerID  string
	Hole      int
	Gross     int
	EnteredBy string
}

// ValidationEntry marks a hole validated or not.
type ValidationEntry struct {
	MatchID   string
	Hole      int
	Validated bool
	By        string
}

// MatchPlayer is a player as seen from one match.
type MatchPlayer struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Side            scoring.Side `json:"side"`
	HandicapIndex   float64      `json:"handicap_index"`
	PlayingHandicap int          `json:"playing_handicap"`
}

// MatchView is the recomputed state of a match.
type MatchView struct {
	Match   Match              `json:"match"`
	Tee     string             `json:"tee_name"`
	Players []MatchPlayer      `json:"players"`
	Score   scoring.MatchScore `json:"score"`
}
