package tournament

import "github.com/google/uuid"

// newUUID is the default id source for players, courses, days and matches.
func newUUID() string {
	return uuid.NewString()
}
