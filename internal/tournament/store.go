package tournament

import "context"

// Store persists the competition's source data. Implementations return errors
// wrapping ErrNotFound for missing records and apply each mutation atomically.
type Store interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	CreatePlayer(ctx context.Context, p Player) error
	UpdateHandicap(ctx context.Context, playerID string, index float64) (Player, error)

	ListTeams(ctx context.Context) ([]Team, error)
	// AssignPlayer moves a player onto a team, removing them from the other one.
	AssignPlayer(ctx context.Context, teamID, playerID string) error

	ListCourses(ctx context.Context) ([]Course, error)
	Course(ctx context.Context, id string) (Course, error)
	CreateCourse(ctx context.Context, c Course) error

	ListDays(ctx context.Context) ([]Day, error)
	Day(ctx context.Context, id string) (Day, error)
	CreateDay(ctx context.Context, d Day) error
	// ResetDay deletes a day's matches and their score sheets.
	ResetDay(ctx context.Context, id string) error

	Match(ctx context.Context, id string) (Match, error)
	DayMatches(ctx context.Context, dayID string) ([]Match, error)
	CreateMatch(ctx context.Context, m Match) error

	Sheet(ctx context.Context, matchID string) (Sheet, error)
	// SetGross records one score. Clearing a score (gross 0) also clears the
	// hole's validation in the same transaction.
	SetGross(ctx context.Context, e ScoreEntry) error
	// SetValidated sets or clears a hole's validation flag. Setting it first checks
	// HoleComplete against the sheet inside the same transaction and returns an
	// ErrIncompleteHole error without writing when the hole is not complete.
	SetValidated(ctx context.Context, e ValidationEntry) error
}
