package store

import (
	"errors"
	"fmt"
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrAreaNotFound   = errors.New("area not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrNameRequired   = errors.New("name is required")
	ErrInvalidStatus  = errors.New("invalid status")
)

// CapacityError is returned when a manual assignment would push an area past
// its capacity. It carries the capacity so callers can show it.
type CapacityError struct {
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("area is full, maximum capacity: %d", e.Capacity)
}

// IsCapacityError reports whether err is a capacity rejection.
func IsCapacityError(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
