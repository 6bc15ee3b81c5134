package domain

import (
	"errors"
	"fmt"
)

var ErrProblemNotFound = errors.New("problem not found")

// ReferenceError reports a path definition (or a start place) naming a city
// that is absent from the place mapping. Index is the position of the path
// definition, or -1 when the reference is not a path.
type ReferenceError struct {
	Index int
	City  string
}

func (e *ReferenceError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("unknown place %q", e.City)
	}
	return fmt.Sprintf("path #%d references unknown place %q", e.Index+1, e.City)
}

// ConfigurationError reports a malformed value that would break the search's
// termination guarantees or the graph invariants.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
