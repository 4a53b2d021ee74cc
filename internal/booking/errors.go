package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRoom is returned when a movie has no room assigned.
	ErrNoRoom = errors.New("movie has no room assigned")
	// ErrNotBookable is returned when the movie's room is not selling tickets.
	ErrNotBookable = errors.New("room is not open for booking")
)

// DataAccessError reports a collaborator failure for a named operation.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// WrapDataAccess tags err with op. Errors that already carry a
// DataAccessError are returned unchanged.
func WrapDataAccess(op string, err error) error {
	if err == nil {
		return nil
	}
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return err
	}
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccess reports whether err is a collaborator failure.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}
