package expreplay

import "errors"

// ExpReplayError implements errors unique to an experience replay
// buffer.
type ExpReplayError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *ExpReplayError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExpReplayError) Unwrap() error {
	return e.Err
}

var errInvalidCapacity = errors.New("capacity must be >= 1")

// IsInvalidCapacity returns whether or not an error reports that a
// replay buffer was constructed with a capacity less than 1.
func IsInvalidCapacity(err error) bool {
	return errors.Is(err, errInvalidCapacity)
}
