package tournament

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/trentd187/golf-cup/internal/cache"
	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/scoring"
	"github.com/trentd187/golf-cup/internal/standings"
)

// dayInputs is everything a day leaderboard is derived from. Its JSON encoding is
// the memoization key.
type dayInputs struct {
	Day     Day     `json:"day"`
	Course  Course  `json:"course"`
	Matches []Match `json:"matches"`
	Sheets  []Sheet `json:"sheets"`
}

// rosterInputs is the part of every leaderboard key that does not depend on the day.
type rosterInputs struct {
	Players []Player             `json:"players"`
	Teams   []Team               `json:"teams"`
	Tees    []handicap.Tee       `json:"tees"`
	Points  scoring.PointsConfig `json:"points"`
}

// loadRoster reads players and teams and snapshots the tee tables and points
// settings they are scored against.
func (s *Service) loadRoster(ctx context.Context) (rosterInputs, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return rosterInputs{}, err
	}
	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		return rosterInputs{}, err
	}
	in := rosterInputs{Players: players, Teams: teams, Points: s.points}
	// Keys is sorted, so the same tables always produce the same key.
	for _, key := range s.tees.Keys() {
		tee, _ := s.tees.Tee(key)
		in.Tees = append(in.Tees, tee)
	}
	return in, nil
}

// loadDay reads one day's source data. A missing course is tolerated: its matches
// simply cannot be scored and count as not yet played.
func (s *Service) loadDay(ctx context.Context, day Day) (dayInputs, error) {
	in := dayInputs{Day: day}
	course, err := s.store.Course(ctx, day.CourseID)
	switch {
	case errors.Is(err, ErrNotFound):
		in.Course = Course{ID: day.CourseID}
	case err != nil:
		return dayInputs{}, err
	default:
		in.Course = course
	}

	in.Matches, err = s.store.DayMatches(ctx, day.ID)
	if err != nil {
		return dayInputs{}, err
	}
	in.Sheets = make([]Sheet, len(in.Matches))
	for i, m := range in.Matches {
		if in.Sheets[i], err = s.store.Sheet(ctx, m.ID); err != nil {
			return dayInputs{}, err
		}
	}
	return in, nil
}

// standings converts the roster into the shape the standings package works on.
func (r rosterInputs) standings() standings.Roster {
	out := standings.Roster{}
	for _, p := range r.Players {
		out.Players = append(out.Players, standings.Player{ID: p.ID, Name: p.Name, HandicapIndex: p.HandicapIndex})
	}
	for _, t := range r.Teams {
		out.Teams = append(out.Teams, standings.Team{ID: t.ID, Name: t.Name, Color: t.Color, PlayerIDs: t.PlayerIDs})
	}
	return out
}

// buildDay scores every match of a day. A match that cannot be scored is logged and
// left without a result.
func (s *Service) buildDay(roster rosterInputs, in dayInputs) standings.Day {
	players := make(map[string]Player, len(roster.Players))
	for _, p := range roster.Players {
		players[p.ID] = p
	}

	day := standings.Day{
		ID:             in.Day.ID,
		Date:           in.Day.Date,
		Format:         in.Day.Format,
		Basis:          in.Day.Basis,
		PlannedMatches: in.Day.PlannedMatches,
		Matches:        make([]standings.MatchRecord, 0, len(in.Matches)),
	}
	for i, m := range in.Matches {
		rec := standings.MatchRecord{MatchID: m.ID, Flight: m.Flight, TeamA: m.TeamA, TeamB: m.TeamB}
		view, err := s.score(m, in.Course, players, in.Sheets[i])
		if err != nil {
			s.log.Warn("match left out of standings", zap.String("match_id", m.ID), zap.Error(err))
		} else {
			result := view.Score.Result
			rec.Result = &result
			rec.Cards = view.Score.Players
		}
		day.Matches = append(day.Matches, rec)
	}
	return day
}

// DayLeaderboard recomputes the standings of one fixture day.
func (s *Service) DayLeaderboard(ctx context.Context, dayID string) (standings.DayLeaderboard, error) {
	day, err := s.store.Day(ctx, dayID)
	if err != nil {
		return standings.DayLeaderboard{}, err
	}
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return standings.DayLeaderboard{}, err
	}
	in, err := s.loadDay(ctx, day)
	if err != nil {
		return standings.DayLeaderboard{}, err
	}

	// The key hashes every input, so any score, validation or roster change lands
	// on a new key and there is nothing to invalidate.
	key, err := cache.Key("day", struct {
		Roster rosterInputs `json:"roster"`
		Day    dayInputs    `json:"day"`
	}{roster, in})
	if err != nil {
		return standings.DayLeaderboard{}, err
	}
	var lb standings.DayLeaderboard
	if s.cached(ctx, key, &lb) {
		return lb, nil
	}

	// Cache miss: rebuild and time it for the recompute histogram.
	start := time.Now()
	lb = standings.BuildDay(roster.standings(), s.buildDay(roster, in), s.points)
	observe("day", start)
	s.remember(ctx, key, lb)
	return lb, nil
}

// OverallLeaderboard recomputes the tournament standings across every day.
func (s *Service) OverallLeaderboard(ctx context.Context) (standings.OverallLeaderboard, error) {
	roster, err := s.loadRoster(ctx)
	if err != nil {
		return standings.OverallLeaderboard{}, err
	}
	days, err := s.store.ListDays(ctx)
	if err != nil {
		return standings.OverallLeaderboard{}, err
	}
	inputs := make([]dayInputs, 0, len(days))
	for _, d := range days {
		in, err := s.loadDay(ctx, d)
		if err != nil {
			return standings.OverallLeaderboard{}, err
		}
		inputs = append(inputs, in)
	}

	key, err := cache.Key("overall", struct {
		Roster rosterInputs `json:"roster"`
		Days   []dayInputs  `json:"days"`
	}{roster, inputs})
	if err != nil {
		return standings.OverallLeaderboard{}, err
	}
	var lb standings.OverallLeaderboard
	if s.cached(ctx, key, &lb) {
		return lb, nil
	}

	start := time.Now()
	built := make([]standings.Day, 0, len(inputs))
	for _, in := range inputs {
		built = append(built, s.buildDay(roster, in))
	}
	lb = standings.BuildOverall(roster.standings(), built, s.points)
	observe("overall", start)
	s.remember(ctx, key, lb)
	return lb, nil
}
