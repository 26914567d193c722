package tournament

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/trentd187/golf-cup/internal/handicap"
)

// MemoryStore is a Store held in process memory. It backs development runs without
// a database and the package tests.
type MemoryStore struct {
	mu      sync.Mutex
	players map[string]Player
	teams   map[string]*Team
	courses map[string]Course
	days    map[string]Day
	matches map[string]Match
	sheets  map[string]Sheet
}

// NewMemoryStore returns an empty store with the two teams in place.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: map[string]Player{},
		teams: map[string]*Team{
			TeamA: {ID: TeamA, Name: "Team A", Color: "#d62828"},
			TeamB: {ID: TeamB, Name: "Team B", Color: "#1d3557"},
		},
		courses: map[string]Course{},
		days:    map[string]Day{},
		matches: map[string]Match{},
		sheets:  map[string]Sheet{},
	}
}

var _ Store = (*MemoryStore)(nil)

// notFound wraps ErrNotFound with the kind and id that were looked up.
func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// ListPlayers returns every player, ordered by id so listings are stable.
func (f *MemoryStore) ListPlayers(context.Context) ([]Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreatePlayer adds a player. The service has already checked the name and index.
func (f *MemoryStore) CreatePlayer(_ context.Context, p Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players[p.ID] = p
	return nil
}

// UpdateHandicap replaces a player's handicap index and returns the updated player.
func (f *MemoryStore) UpdateHandicap(_ context.Context, id string, index float64) (Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[id]
	if !ok {
		return Player{}, notFound("player", id)
	}
	p.HandicapIndex = index
	f.players[id] = p
	return p, nil
}

// ListTeams returns both teams, team A first. PlayerIDs is copied so callers
// cannot modify the store through the returned slice.
func (f *MemoryStore) ListTeams(context.Context) ([]Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Team{}
	for _, id := range []string{TeamA, TeamB} {
		t := *f.teams[id]
		t.PlayerIDs = append([]string(nil), t.PlayerIDs...)
		out = append(out, t)
	}
	return out, nil
}

// AssignPlayer moves a player onto a team. The player is first removed from every
// team, so the two teams never share a player.
func (f *MemoryStore) AssignPlayer(_ context.Context, teamID, playerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[playerID]; !ok {
		return notFound("player", playerID)
	}
	if _, ok := f.teams[teamID]; !ok {
		return notFound("team", teamID)
	}
	for _, t := range f.teams {
		kept := t.PlayerIDs[:0]
		for _, id := range t.PlayerIDs {
			if id != playerID {
				kept = append(kept, id)
			}
		}
		t.PlayerIDs = kept
	}
	f.teams[teamID].PlayerIDs = append(f.teams[teamID].PlayerIDs, playerID)
	return nil
}

// ListCourses returns every course ordered by name.
func (f *MemoryStore) ListCourses(context.Context) ([]Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Course{}
	for _, c := range f.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Course looks up one course by id.
func (f *MemoryStore) Course(_ context.Context, id string) (Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return Course{}, notFound("course", id)
	}
	return c, nil
}

// CreateCourse stores a course whose layout the service has validated.
func (f *MemoryStore) CreateCourse(_ context.Context, c Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses[c.ID] = c
	return nil
}

// ListDays returns the fixture days in date order.
func (f *MemoryStore) ListDays(context.Context) ([]Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Day{}
	for _, d := range f.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Day looks up one fixture day by id.
func (f *MemoryStore) Day(_ context.Context, id string) (Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.days[id]
	if !ok {
		return Day{}, notFound("day", id)
	}
	return d, nil
}

// CreateDay stores a fixture day.
func (f *MemoryStore) CreateDay(_ context.Context, d Day) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days[d.ID] = d
	return nil
}

// ResetDay deletes every match of a day along with its score sheet.
// The day itself stays, ready to be paired again.
func (f *MemoryStore) ResetDay(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.days[id]; !ok {
		return notFound("day", id)
	}
	for mid, m := range f.matches {
		if m.DayID == id {
			delete(f.matches, mid)
			delete(f.sheets, mid)
		}
	}
	return nil
}

// Match looks up one locked pairing by id.
func (f *MemoryStore) Match(_ context.Context, id string) (Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return Match{}, notFound("match", id)
	}
	return m, nil
}

// DayMatches returns a day's matches ordered by flight.
func (f *MemoryStore) DayMatches(_ context.Context, dayID string) ([]Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Match{}
	for _, m := range f.matches {
		if m.DayID == dayID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Flight < out[j].Flight })
	return out, nil
}

// CreateMatch stores a pairing together with an empty score sheet.
func (f *MemoryStore) CreateMatch(_ context.Context, m Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[m.ID] = m
	f.sheets[m.ID] = Sheet{Gross: map[string][]int{}, Validated: make([]bool, handicap.HoleCount)}
	return nil
}

// Sheet returns a deep copy of a match's score sheet, so later writes never
// show through it.
func (f *MemoryStore) Sheet(_ context.Context, matchID string) (Sheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sheets[matchID]
	if !ok {
		return Sheet{}, notFound("match", matchID)
	}
	out := Sheet{Gross: map[string][]int{}, Validated: append([]bool(nil), s.Validated...)}
	for id, g := range s.Gross {
		out.Gross[id] = append([]int(nil), g...)
	}
	return out, nil
}

// SetGross records one gross score. Gross 0 clears the score and unvalidates the hole,
// so a validated hole always has its scores.
func (f *MemoryStore) SetGross(_ context.Context, e ScoreEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sheets[e.MatchID]
	if !ok {
		return notFound("match", e.MatchID)
	}
	if e.Hole < 1 || e.Hole > handicap.HoleCount {
		return fmt.Errorf("%w: hole %d", ErrInvalidEntry, e.Hole)
	}
	g := s.Gross[e.PlayerID]
	if g == nil {
		g = make([]int, handicap.HoleCount)
	}
	g[e.Hole-1] = e.Gross
	s.Gross[e.PlayerID] = g
	if e.Gross == 0 {
		s.Validated[e.Hole-1] = false
	}
	return nil
}

// SetValidated sets or clears a hole's validation flag.
func (f *MemoryStore) SetValidated(_ context.Context, e ValidationEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sheets[e.MatchID]
	if !ok {
		return notFound("match", e.MatchID)
	}
	if e.Hole < 1 || e.Hole > handicap.HoleCount {
		return fmt.Errorf("%w: hole %d", ErrInvalidEntry, e.Hole)
	}
	// Checked under the same lock SetGross takes, so the sheet cannot change
	// between the check and the write.
	if e.Validated {
		if err := HoleComplete(f.matches[e.MatchID], s, e.Hole); err != nil {
			return err
		}
	}
	s.Validated[e.Hole-1] = e.Validated
	return nil
}
