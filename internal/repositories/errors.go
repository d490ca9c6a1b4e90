package repositories

import "errors"

var (
	// ErrNotFound is returned when a user, post or comment does not exist
	ErrNotFound = errors.New("record not found")
	// ErrLikeConflict is returned when a concurrent toggle changed the like
	// between the delete and the insert of a toggle.
	ErrLikeConflict = errors.New("like was changed by a concurrent request")
)
