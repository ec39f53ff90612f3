package errors

import (
	"errors"
	"fmt"
)

// Common error types for the identity and session core
var (
	// Directory errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Activity log errors
	ErrMissingActivityID = errors.New("activity id is required")
	ErrDuplicateActivity = errors.New("activity id already recorded")

	// Session errors
	ErrCorruptSession = errors.New("corrupt persisted session")
	ErrSessionVersion = errors.New("unsupported persisted session version")

	// Storage errors
	ErrStoreUnavailable = errors.New("session store unavailable")

	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

