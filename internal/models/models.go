// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, and relationships.
//
// The data model represents a two-team golf cup played over several days:
//   - Players belong to at most one of the two Teams (team_members enforces this)
//   - FixtureDays are played on a Course and contain Matches
//   - Matches pair one or two players per side and own a score sheet
//     (HoleScores plus HoleValidations)
//
// Results and leaderboards are never stored. They are recomputed from these tables.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants.

// Role is the permission level carried in a user's token.
type Role string

const (
	RoleAdmin   Role = "admin"   // Manages the roster, courses and fixture days
	RoleCaptain Role = "captain" // Locks pairings for their team
	RoleScorer  Role = "scorer"  // Enters and validates scores
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: Player -> players, FixtureDay -> fixture_days.

// Player is one golfer on the roster.
// HandicapIndex can be edited at any time; every derived view picks up the new value.
type Player struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null"`
	HandicapIndex float64   `gorm:"type:decimal(4,1);not null;default:0"` // e.g. 12.4, or -2.0 for a plus handicap
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Team is one of the two sides of the cup. Its ID is the fixed string "team-a" or "team-b"
// so match sides and teams line up without a lookup.
type Team struct {
	ID      string       `gorm:"primaryKey"`
	Name    string       `gorm:"not null"`
	Color   string       `gorm:"not null;default:''"` // Display color, e.g. "#d62828"
	Members []TeamMember `gorm:"foreignKey:TeamID"`
}

// TeamMember places a Player on a Team.
// PlayerID is the primary key, so a player can be on at most one team at a time.
type TeamMember struct {
	PlayerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID   string    `gorm:"not null"`
	Player   Player    `gorm:"foreignKey:PlayerID"`
}

// Course is a named 18-hole layout.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	Holes     []Hole `gorm:"foreignKey:CourseID"` // One-to-many: 18 holes per course
}

// Hole stores par and stroke index for one hole of a course.
type Hole struct {
	CourseID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	HoleNumber  int       `gorm:"primaryKey"` // 1–18
	Par         int       `gorm:"not null"`   // 3–6
	StrokeIndex int       `gorm:"not null"`   // 1 = hardest (gets the first handicap stroke), 18 = easiest
}

// FixtureDay is one day of competition. Every match on the day shares its format
// and scoring basis.
type FixtureDay struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date           time.Time `gorm:"type:date;not null"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null"`
	Course         Course    `gorm:"foreignKey:CourseID"`
	Format         string    `gorm:"not null"` // high-low, fourball, texas-scramble, singles
	Basis          string    `gorm:"not null"` // stableford or strokes
	PlannedMatches int       `gorm:"not null;default:0"`
	CreatedAt      time.Time
	Matches        []Match `gorm:"foreignKey:FixtureDayID"`
}

// Match is a locked pairing on a fixture day.
type Match struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FixtureDayID uuid.UUID     `gorm:"type:uuid;not null;index"`
	FixtureDay   FixtureDay    `gorm:"foreignKey:FixtureDayID"` // Preloaded for the day's format and scoring basis
	Flight       int           `gorm:"not null"`
	TeeKey       string        `gorm:"not null"` // Key into the tee registry, e.g. "yellow"
	CreatedAt    time.Time
	Players      []MatchPlayer `gorm:"foreignKey:MatchID"`
}

// MatchPlayer places a player on one side of a match.
// Position keeps the order players were listed in, which the scorecard follows.
type MatchPlayer struct {
	MatchID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlayerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Side     string    `gorm:"not null"` // team-a or team-b
	Position int       `gorm:"not null"`
}

// HoleScore is one player's gross strokes on one hole of a match.
// A cleared score is deleted rather than stored as zero.
type HoleScore struct {
	MatchID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlayerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	HoleNumber int       `gorm:"primaryKey"`
	Gross      int       `gorm:"not null"`
	EnteredBy  string    `gorm:"not null;default:''"` // Token subject of whoever submitted the score
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// HoleValidation marks a hole of a match as validated. Absence of a row means provisional.
type HoleValidation struct {
	MatchID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	HoleNumber  int       `gorm:"primaryKey"`
	ValidatedBy string    `gorm:"not null;default:''"`
	ValidatedAt time.Time `gorm:"autoCreateTime"`
}
