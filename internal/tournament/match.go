package tournament

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/metrics"
	"github.com/trentd187/golf-cup/internal/scoring"
)

// MatchView loads a consistent snapshot of a match and recomputes it.
func (s *Service) MatchView(ctx context.Context, matchID string) (MatchView, error) {
	m, err := s.store.Match(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	day, err := s.store.Day(ctx, m.DayID)
	if err != nil {
		return MatchView{}, err
	}
	course, err := s.store.Course(ctx, day.CourseID)
	if err != nil {
		return MatchView{}, err
	}
	players, err := s.playerIndex(ctx)
	if err != nil {
		return MatchView{}, err
	}
	sheet, err := s.store.Sheet(ctx, m.ID)
	if err != nil {
		return MatchView{}, err
	}

	// Only the recompute is timed; the reads above are store latency.
	defer observe("match", time.Now())
	return s.score(m, course, players, sheet)
}

// playerIndex maps player id to player for handicap lookups.
func (s *Service) playerIndex(ctx context.Context) (map[string]Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return index, nil
}

// score recomputes a match from its inputs. It reads nothing from the store.
// A player missing from the roster plays off a zero handicap index.
func (s *Service) score(m Match, course Course, players map[string]Player, sheet Sheet) (MatchView, error) {
	if err := course.Layout.Validate(); err != nil {
		return MatchView{}, fmt.Errorf("%w: course %s: %v", scoring.ErrDataIntegrity, course.ID, err)
	}
	tee, ok := s.tees.Tee(m.TeeKey)
	if !ok {
		return MatchView{}, fmt.Errorf("%w: tee %q", ErrNotFound, m.TeeKey)
	}

	// Handicap strokes are allocated per hole from the playing handicap on the
	// match's tee, so changing a player's index rescores every match they are in.
	view := MatchView{Match: m, Tee: tee.Name}
	entries := func(ids []string, side scoring.Side) []scoring.PlayerEntry {
		out := make([]scoring.PlayerEntry, 0, len(ids))
		for _, id := range ids {
			p, ok := players[id]
			if !ok {
				p = Player{ID: id}
			}
			ph := tee.PlayingHandicap(p.HandicapIndex)
			view.Players = append(view.Players, MatchPlayer{
				ID:              id,
				Name:            p.Name,
				Side:            side,
				HandicapIndex:   p.HandicapIndex,
				PlayingHandicap: ph,
			})
			out = append(out, scoring.PlayerEntry{
				PlayerID: id,
				Gross:    sheet.gross(id),
				Strokes:  course.Layout.StrokesPerHole(ph),
			})
		}
		return out
	}

	in := scoring.MatchInput{
		Format:    m.Format,
		Basis:     m.Basis,
		Layout:    course.Layout,
		TeamA:     entries(m.TeamA, scoring.SideTeamA),
		TeamB:     entries(m.TeamB, scoring.SideTeamB),
		Validated: sheet.validated(),
		Points:    s.points,
	}
	score, err := scoring.ScoreMatch(in)
	if err != nil {
		return MatchView{}, fmt.Errorf("match %s: %w", m.ID, err)
	}
	view.Score = score
	return view, nil
}

// checkHole rejects hole numbers outside 1..18.
func checkHole(hole int) error {
	if hole < 1 || hole > handicap.HoleCount {
		return fmt.Errorf("%w: hole %d out of range 1..%d", ErrInvalidEntry, hole, handicap.HoleCount)
	}
	return nil
}

// RecordScore applies one gross score and returns the recomputed match.
func (s *Service) RecordScore(ctx context.Context, e ScoreEntry) (MatchView, error) {
	if err := checkHole(e.Hole); err != nil {
		return MatchView{}, err
	}
	if e.Gross < 0 || e.Gross > MaxGross {
		return MatchView{}, fmt.Errorf("%w: gross %d out of range 0..%d", ErrInvalidEntry, e.Gross, MaxGross)
	}
	m, err := s.store.Match(ctx, e.MatchID)
	if err != nil {
		return MatchView{}, err
	}
	if _, ok := m.Side(e.PlayerID); !ok {
		return MatchView{}, fmt.Errorf("%w: player %s is not in match %s", ErrInvalidEntry, e.PlayerID, m.ID)
	}

	// before is only used to notice a result appearing; a match that cannot be
	// scored yet has no result to compare.
	before, _ := s.MatchView(ctx, m.ID)
	if err := s.store.SetGross(ctx, e); err != nil {
		return MatchView{}, err
	}
	metrics.ScoreMutations.WithLabelValues("score").Inc()
	s.log.Debug("score recorded",
		zap.String("match_id", m.ID),
		zap.String("player_id", e.PlayerID),
		zap.Int("hole", e.Hole),
		zap.Int("gross", e.Gross),
		zap.String("entered_by", e.EnteredBy),
	)
	return s.afterMutation(ctx, before, m.ID)
}

// SetValidated marks a hole validated or provisional and returns the recomputed match.
// A hole can only be validated once every player who must score has a gross score on
// it; in one-ball formats one score per side is enough.
func (s *Service) SetValidated(ctx context.Context, e ValidationEntry) (MatchView, error) {
	if err := checkHole(e.Hole); err != nil {
		return MatchView{}, err
	}
	m, err := s.store.Match(ctx, e.MatchID)
	if err != nil {
		return MatchView{}, err
	}

	before, _ := s.MatchView(ctx, m.ID)
	// The store checks HoleComplete in the same transaction as the write, so a score
	// cleared concurrently cannot leave a validated hole without its scores.
	if err := s.store.SetValidated(ctx, e); err != nil {
		return MatchView{}, err
	}
	metrics.ScoreMutations.WithLabelValues("validation").Inc()
	s.log.Debug("hole validation changed",
		zap.String("match_id", m.ID),
		zap.Int("hole", e.Hole),
		zap.Bool("validated", e.Validated),
		zap.String("by", e.By),
	)
	return s.afterMutation(ctx, before, m.ID)
}

// HoleComplete reports whether a hole of a match may be validated: every player who
// must score has a gross score on it, or one ball per side in one-ball formats.
// Stores call it inside the transaction that sets the validation flag.
func HoleComplete(m Match, sheet Sheet, hole int) error {
	rule, err := scoring.RuleFor(m.Format)
	if err != nil {
		return err
	}
	scored := func(id string) bool { return sheet.gross(id)[hole-1] > 0 }

	for _, side := range [][]string{m.TeamA, m.TeamB} {
		sideScored := false
		for _, id := range side {
			switch {
			case scored(id):
				sideScored = true
			case rule.EveryPlayerScores():
				return fmt.Errorf("%w: player %s has no score on hole %d", ErrIncompleteHole, id, hole)
			}
		}
		if !sideScored {
			return fmt.Errorf("%w: a side has no score on hole %d", ErrIncompleteHole, hole)
		}
	}
	return nil
}

// afterMutation recomputes a match, reports a newly decided result and publishes the view.
func (s *Service) afterMutation(ctx context.Context, before MatchView, matchID string) (MatchView, error) {
	view, err := s.MatchView(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	if view.Score.Result.Decided() && !before.Score.Result.Decided() {
		metrics.MatchesDecided.Inc()
		s.log.Info("match decided",
			zap.String("match_id", matchID),
			zap.String("winner", string(view.Score.Result.Winner)),
			zap.String("display", view.Score.GameWon.Display),
		)
	}
	if s.notifier != nil {
		s.notifier.Publish(matchID, view)
	}
	return view, nil
}
