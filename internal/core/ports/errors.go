package ports

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a service or the catalog does not know the
// requested entity. Distinct from transport failures so callers can log
// a specific hint.
var ErrNotFound = errors.New("entity not found")

// ErrThrottled indicates the remote service rejected a call for rate
// limiting and the retry budget is exhausted.
var ErrThrottled = errors.New("service throttled")

// NotFoundError carries the entity that a service reported as unknown.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	if e.Entity == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("entity %q not found", e.Entity)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
