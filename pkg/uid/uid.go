package uid

import "github.com/google/uuid"

// New generates a new random identifier (UUIDv4). Used for request ids.
func New() string {
	return uuid.New().String()
}

// NewOrdered generates a time-ordered identifier (UUIDv7): a millisecond
// timestamp followed by random bits. Within one process the clock sequence
// keeps ids unique even when many are minted in the same millisecond.
func NewOrdered() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.New().String()
	}
	return id.String()
}
