package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/golf-cup/internal/models"
	"github.com/trentd187/golf-cup/internal/tournament"
)

// Store implements tournament.Store on PostgreSQL through GORM.
type Store struct {
	db *gorm.DB
}

var _ tournament.Store = (*Store)(nil)

// NewStore wraps an open GORM handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// found converts gorm.ErrRecordNotFound into tournament.ErrNotFound.
func found(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, tournament.ErrNotFound)
	}
	return err
}

// ListPlayers returns every player ordered by name.
func (s *Store) ListPlayers(ctx context.Context) ([]tournament.Player, error) {
	var rows []models.Player
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]tournament.Player, 0, len(rows))
	for _, r := range rows {
		out = append(out, toPlayer(r))
	}
	return out, nil
}

// CreatePlayer inserts a player row. The id comes from the service and must be a UUID.
func (s *Store) CreatePlayer(ctx context.Context, p tournament.Player) error {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return fmt.Errorf("player id %q: %w", p.ID, tournament.ErrInvalidEntry)
	}
	return s.db.WithContext(ctx).Create(&models.Player{ID: id, Name: p.Name, HandicapIndex: p.HandicapIndex}).Error
}

// UpdateHandicap changes one player's handicap index and returns the stored row.
func (s *Store) UpdateHandicap(ctx context.Context, playerID string, index float64) (tournament.Player, error) {
	id, err := parseID("player", playerID)
	if err != nil {
		return tournament.Player{}, err
	}
	var row models.Player
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return found(err, "player", playerID)
		}
		return tx.Model(&row).Update("handicap_index", index).Error
	})
	if err != nil {
		return tournament.Player{}, err
	}
	return toPlayer(row), nil
}

// ListTeams returns both teams with their members preloaded.
func (s *Store) ListTeams(ctx context.Context) ([]tournament.Team, error) {
	var rows []models.Team
	err := s.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("player_id") }).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]tournament.Team, 0, len(rows))
	for _, r := range rows {
		out = append(out, toTeam(r))
	}
	return out, nil
}

// AssignPlayer upserts on player_id, so moving a player replaces their old membership.
func (s *Store) AssignPlayer(ctx context.Context, teamID, playerID string) error {
	id, err := parseID("player", playerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Player{}, "id = ?", id).Error; err != nil {
			return found(err, "player", playerID)
		}
		if err := tx.First(&models.Team{}, "id = ?", teamID).Error; err != nil {
			return found(err, "team", teamID)
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"team_id"}),
		}).Create(&models.TeamMember{PlayerID: id, TeamID: teamID}).Error
	})
}

// ListCourses returns every course with its 18 holes.
func (s *Store) ListCourses(ctx context.Context) ([]tournament.Course, error) {
	var rows []models.Course
	if err := s.db.WithContext(ctx).Preload("Holes").Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]tournament.Course, 0, len(rows))
	for _, r := range rows {
		out = append(out, toCourse(r))
	}
	return out, nil
}

// Course loads one course and its holes.
func (s *Store) Course(ctx context.Context, courseID string) (tournament.Course, error) {
	id, err := parseID("course", courseID)
	if err != nil {
		return tournament.Course{}, err
	}
	var row models.Course
	if err := s.db.WithContext(ctx).Preload("Holes").First(&row, "id = ?", id).Error; err != nil {
		return tournament.Course{}, found(err, "course", courseID)
	}
	return toCourse(row), nil
}

// CreateCourse inserts a course; gorm saves its holes as an association.
func (s *Store) CreateCourse(ctx context.Context, c tournament.Course) error {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return fmt.Errorf("course id %q: %w", c.ID, tournament.ErrInvalidEntry)
	}
	row := fromCourse(c, id)
	return s.db.WithContext(ctx).Create(&row).Error
}

// ListDays returns the fixture days in date order.
func (s *Store) ListDays(ctx context.Context) ([]tournament.Day, error) {
	var rows []models.FixtureDay
	if err := s.db.WithContext(ctx).Order("date").Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]tournament.Day, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDay(r))
	}
	return out, nil
}

// Day loads one fixture day.
func (s *Store) Day(ctx context.Context, dayID string) (tournament.Day, error) {
	id, err := parseID("day", dayID)
	if err != nil {
		return tournament.Day{}, err
	}
	var row models.FixtureDay
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return tournament.Day{}, found(err, "day", dayID)
	}
	return toDay(row), nil
}

// CreateDay inserts a fixture day on an existing course.
func (s *Store) CreateDay(ctx context.Context, d tournament.Day) error {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return fmt.Errorf("day id %q: %w", d.ID, tournament.ErrInvalidEntry)
	}
	courseID, err := parseID("course", d.CourseID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(&models.FixtureDay{
		ID:             id,
		Date:           d.Date,
		CourseID:       courseID,
		Format:         string(d.Format),
		Basis:          string(d.Basis),
		PlannedMatches: d.PlannedMatches,
	}).Error
}

// ResetDay deletes the day's matches; their players, scores and validations
// go with them through ON DELETE CASCADE.
func (s *Store) ResetDay(ctx context.Context, dayID string) error {
	id, err := parseID("day", dayID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.FixtureDay{}, "id = ?", id).Error; err != nil {
			return found(err, "day", dayID)
		}
		return tx.Where("fixture_day_id = ?", id).Delete(&models.Match{}).Error
	})
}

// matches is the base query for loading matches with everything toMatch needs.
func (s *Store) matches(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("FixtureDay").
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

// Match loads one match with its day (for format and basis) and its players.
func (s *Store) Match(ctx context.Context, matchID string) (tournament.Match, error) {
	id, err := parseID("match", matchID)
	if err != nil {
		return tournament.Match{}, err
	}
	var row models.Match
	if err := s.matches(ctx).First(&row, "id = ?", id).Error; err != nil {
		return tournament.Match{}, found(err, "match", matchID)
	}
	return toMatch(row), nil
}

// DayMatches returns a day's matches ordered by flight.
func (s *Store) DayMatches(ctx context.Context, dayID string) ([]tournament.Match, error) {
	id, err := parseID("day", dayID)
	if err != nil {
		return nil, err
	}
	var rows []models.Match
	if err := s.matches(ctx).Where("fixture_day_id = ?", id).Order("flight").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]tournament.Match, 0, len(rows))
	for _, r := range rows {
		out = append(out, toMatch(r))
	}
	return out, nil
}

// CreateMatch inserts a match and its player rows. Position keeps the order
// players were listed in, team A first.
func (s *Store) CreateMatch(ctx context.Context, m tournament.Match) error {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return fmt.Errorf("match id %q: %w", m.ID, tournament.ErrInvalidEntry)
	}
	dayID, err := parseID("day", m.DayID)
	if err != nil {
		return err
	}
	row := models.Match{ID: id, FixtureDayID: dayID, Flight: m.Flight, TeeKey: m.TeeKey}
	position := 0
	for _, side := range []struct {
		name string
		ids  []string
	}{{tournament.TeamA, m.TeamA}, {tournament.TeamB, m.TeamB}} {
		for _, pid := range side.ids {
			playerID, err := parseID("player", pid)
			if err != nil {
				return err
			}
			position++
			row.Players = append(row.Players, models.MatchPlayer{MatchID: id, PlayerID: playerID, Side: side.name, Position: position})
		}
	}
	return s.db.WithContext(ctx).Omit("FixtureDay").Create(&row).Error
}

// Sheet reads a match's scores and validations in one transaction, so the
// snapshot is consistent.
func (s *Store) Sheet(ctx context.Context, matchID string) (tournament.Sheet, error) {
	id, err := parseID("match", matchID)
	if err != nil {
		return tournament.Sheet{}, err
	}
	var (
		scores      []models.HoleScore
		validations []models.HoleValidation
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Match{}, "id = ?", id).Error; err != nil {
			return found(err, "match", matchID)
		}
		if err := tx.Where("match_id = ?", id).Find(&scores).Error; err != nil {
			return err
		}
		return tx.Where("match_id = ?", id).Find(&validations).Error
	})
	if err != nil {
		return tournament.Sheet{}, err
	}
	return toSheet(scores, validations), nil
}

// SetGross upserts one score. Gross 0 deletes the score and the hole's validation.
func (s *Store) SetGross(ctx context.Context, e tournament.ScoreEntry) error {
	matchID, err := parseID("match", e.MatchID)
	if err != nil {
		return err
	}
	playerID, err := parseID("player", e.PlayerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the match row so this write serializes with SetValidated's check.
		if err := lockMatch(tx, matchID, e.MatchID); err != nil {
			return err
		}
		if e.Gross == 0 {
			if err := tx.Where("match_id = ? AND player_id = ? AND hole_number = ?", matchID, playerID, e.Hole).
				Delete(&models.HoleScore{}).Error; err != nil {
				return err
			}
			return tx.Where("match_id = ? AND hole_number = ?", matchID, e.Hole).
				Delete(&models.HoleValidation{}).Error
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}, {Name: "player_id"}, {Name: "hole_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"gross", "entered_by", "updated_at"}),
		}).Create(&models.HoleScore{
			MatchID:    matchID,
			PlayerID:   playerID,
			HoleNumber: e.Hole,
			Gross:      e.Gross,
			EnteredBy:  e.EnteredBy,
			UpdatedAt:  time.Now(),
		}).Error
	})
}

// SetValidated inserts or deletes the hole's validation row. Inserting first checks
// the hole is complete while holding the match row lock, so a score cleared by a
// concurrent SetGross cannot slip in between the check and the insert.
func (s *Store) SetValidated(ctx context.Context, e tournament.ValidationEntry) error {
	matchID, err := parseID("match", e.MatchID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockMatch(tx, matchID, e.MatchID); err != nil {
			return err
		}
		if !e.Validated {
			return tx.Where("match_id = ? AND hole_number = ?", matchID, e.Hole).Delete(&models.HoleValidation{}).Error
		}

		var row models.Match
		err := tx.Preload("FixtureDay").
			Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
			First(&row, "id = ?", matchID).Error
		if err != nil {
			return found(err, "match", e.MatchID)
		}
		var (
			scores      []models.HoleScore
			validations []models.HoleValidation
		)
		if err := tx.Where("match_id = ?", matchID).Find(&scores).Error; err != nil {
			return err
		}
		if err := tx.Where("match_id = ?", matchID).Find(&validations).Error; err != nil {
			return err
		}
		if err := tournament.HoleComplete(toMatch(row), toSheet(scores, validations), e.Hole); err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.HoleValidation{
			MatchID:     matchID,
			HoleNumber:  e.Hole,
			ValidatedBy: e.By,
		}).Error
	})
}

// lockMatch takes a row lock on the match (SELECT ... FOR UPDATE) for the rest of
// the transaction. Score and validation writes on one match queue behind it.
func lockMatch(tx *gorm.DB, id uuid.UUID, raw string) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&models.Match{}, "id = ?", id).Error
	return found(err, "match", raw)
}
