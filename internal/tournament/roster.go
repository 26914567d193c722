package tournament

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/scoring"
)

// NewPlayer is a roster addition.
type NewPlayer struct {
	Name          string
	HandicapIndex float64
}

// NewCourse is a course definition.
type NewCourse struct {
	Name          string
	Pars          []int
	StrokeIndexes []int
}

// NewDay schedules a fixture day.
type NewDay struct {
	Date           time.Time
	CourseID       string
	Format         scoring.Format
	Basis          scoring.Basis
	PlannedMatches int
}

// NewMatch locks one pairing on a day.
type NewMatch struct {
	Flight int
	TeeKey string
	TeamA  []string
	TeamB  []string
}

func checkHandicapIndex(index float64) error {
	if index < MinHandicapIndex || index > MaxHandicapIndex {
		return fmt.Errorf("%w: handicap index %.1f out of range %.1f..%.1f", ErrInvalidEntry, index, MinHandicapIndex, MaxHandicapIndex)
	}
	return nil
}

// Players lists the roster.
func (s *Service) Players(ctx context.Context) ([]Player, error) {
	return s.store.ListPlayers(ctx)
}

// AddPlayer adds a player to the roster without a team.
func (s *Service) AddPlayer(ctx context.Context, np NewPlayer) (Player, error) {
	name := strings.TrimSpace(np.Name)
	if name == "" {
		return Player{}, fmt.Errorf("%w: player name is required", ErrInvalidEntry)
	}
	if err := checkHandicapIndex(np.HandicapIndex); err != nil {
		return Player{}, err
	}
	p := Player{ID: s.newID(), Name: name, HandicapIndex: np.HandicapIndex}
	if err := s.store.CreatePlayer(ctx, p); err != nil {
		return Player{}, err
	}
	s.log.Info("player added", zap.String("player_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// UpdateHandicap edits a player's handicap index. Every derived view picks it up on
// its next recompute.
func (s *Service) UpdateHandicap(ctx context.Context, playerID string, index float64) (Player, error) {
	if err := checkHandicapIndex(index); err != nil {
		return Player{}, err
	}
	p, err := s.store.UpdateHandicap(ctx, playerID, index)
	if err != nil {
		return Player{}, err
	}
	s.log.Info("handicap updated", zap.String("player_id", p.ID), zap.Float64("handicap_index", index))
	return p, nil
}

// Teams lists both teams with their players.
func (s *Service) Teams(ctx context.Context) ([]Team, error) {
	return s.store.ListTeams(ctx)
}

// AssignPlayer moves a player onto a team. Teams stay disjoint.
func (s *Service) AssignPlayer(ctx context.Context, teamID, playerID string) error {
	if teamID != TeamA && teamID != TeamB {
		return fmt.Errorf("%w: team %q", ErrNotFound, teamID)
	}
	return s.store.AssignPlayer(ctx, teamID, playerID)
}

// Courses lists the known courses.
func (s *Service) Courses(ctx context.Context) ([]Course, error) {
	return s.store.ListCourses(ctx)
}

// AddCourse stores a course after checking its layout.
func (s *Service) AddCourse(ctx context.Context, nc NewCourse) (Course, error) {
	c := Course{
		ID:     s.newID(),
		Name:   strings.TrimSpace(nc.Name),
		Layout: handicap.Layout{Pars: nc.Pars, StrokeIndexes: nc.StrokeIndexes},
	}
	if c.Name == "" {
		return Course{}, fmt.Errorf("%w: course name is required", ErrInvalidEntry)
	}
	if err := c.Layout.Validate(); err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if err := s.store.CreateCourse(ctx, c); err != nil {
		return Course{}, err
	}
	return c, nil
}

// Days lists every fixture day in date order.
func (s *Service) Days(ctx context.Context) ([]Day, error) {
	return s.store.ListDays(ctx)
}

// AddDay schedules a fixture day on an existing course.
func (s *Service) AddDay(ctx context.Context, nd NewDay) (Day, error) {
	if !nd.Format.Valid() {
		return Day{}, fmt.Errorf("%w: format %q", ErrInvalidEntry, nd.Format)
	}
	if !nd.Basis.Valid() {
		return Day{}, fmt.Errorf("%w: scoring basis %q", ErrInvalidEntry, nd.Basis)
	}
	if nd.PlannedMatches < 0 || nd.PlannedMatches > MaxPlannedMatches {
		return Day{}, fmt.Errorf("%w: planned matches %d out of range 0..%d", ErrInvalidEntry, nd.PlannedMatches, MaxPlannedMatches)
	}
	if _, err := s.store.Course(ctx, nd.CourseID); err != nil {
		return Day{}, err
	}
	d := Day{
		ID:             s.newID(),
		Date:           nd.Date,
		CourseID:       nd.CourseID,
		Format:         nd.Format,
		Basis:          nd.Basis,
		PlannedMatches: nd.PlannedMatches,
	}
	if err := s.store.CreateDay(ctx, d); err != nil {
		return Day{}, err
	}
	s.log.Info("fixture day added", zap.String("day_id", d.ID), zap.String("format", string(d.Format)))
	return d, nil
}

// ResetDay removes every match and score sheet of a day.
func (s *Service) ResetDay(ctx context.Context, dayID string) error {
	if err := s.store.ResetDay(ctx, dayID); err != nil {
		return err
	}
	s.log.Info("fixture day reset", zap.String("day_id", dayID))
	return nil
}

// DayMatches lists the locked pairings of a day.
func (s *Service) DayMatches(ctx context.Context, dayID string) ([]Match, error) {
	if _, err := s.store.Day(ctx, dayID); err != nil {
		return nil, err
	}
	return s.store.DayMatches(ctx, dayID)
}

// LockPairing creates a match on a day. Each side fields one or two players from its
// own team, and nobody plays twice on the same day.
func (s *Service) LockPairing(ctx context.Context, dayID string, nm NewMatch) (Match, error) {
	day, err := s.store.Day(ctx, dayID)
	if err != nil {
		return Match{}, err
	}
	if _, ok := s.tees.Tee(nm.TeeKey); !ok {
		return Match{}, fmt.Errorf("%w: unknown tee %q", ErrInvalidEntry, nm.TeeKey)
	}
	for _, side := range [][]string{nm.TeamA, nm.TeamB} {
		if len(side) < 1 || len(side) > scoring.MaxSidePlayers {
			return Match{}, fmt.Errorf("%w: each side fields 1 to %d players", ErrInvalidEntry, scoring.MaxSidePlayers)
		}
	}

	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		return Match{}, err
	}
	teamOf := make(map[string]string)
	for _, t := range teams {
		for _, id := range t.PlayerIDs {
			teamOf[id] = t.ID
		}
	}
	existing, err := s.store.DayMatches(ctx, dayID)
	if err != nil {
		return Match{}, err
	}
	busy := make(map[string]bool)
	for _, m := range existing {
		for _, id := range m.PlayerIDs() {
			busy[id] = true
		}
	}

	m := Match{
		ID:     s.newID(),
		DayID:  day.ID,
		Flight: nm.Flight,
		Format: day.Format,
		Basis:  day.Basis,
		TeeKey: nm.TeeKey,
		TeamA:  nm.TeamA,
		TeamB:  nm.TeamB,
	}
	if m.Flight <= 0 {
		m.Flight = len(existing) + 1
	}
	seen := make(map[string]bool)
	for _, pair := range []struct {
		team string
		ids  []string
	}{{TeamA, m.TeamA}, {TeamB, m.TeamB}} {
		for _, id := range pair.ids {
			switch {
			case seen[id]:
				return Match{}, fmt.Errorf("%w: player %s listed twice", ErrInvalidEntry, id)
			case teamOf[id] != pair.team:
				return Match{}, fmt.Errorf("%w: player %s does not play for %s", ErrConflict, id, pair.team)
			case busy[id]:
				return Match{}, fmt.Errorf("%w: player %s already has a match on this day", ErrConflict, id)
			}
			seen[id] = true
		}
	}

	if err := s.store.CreateMatch(ctx, m); err != nil {
		return Match{}, err
	}
	s.log.Info("pairing locked",
		zap.String("match_id", m.ID),
		zap.String("day_id", day.ID),
		zap.Strings("team_a", m.TeamA),
		zap.Strings("team_b", m.TeamB),
	)
	return m, nil
}
