package tournament

import "errors"

var (
	// ErrNotFound is returned when a player, team, course, day or match does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidEntry is returned for input outside the allowed domain.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrConflict is returned when a change would break roster or pairing rules.
	ErrConflict = errors.New("conflict")
	// ErrIncompleteHole is returned when validating a hole some player has not scored yet.
	ErrIncompleteHole = errors.New("hole is missing scores")
)
