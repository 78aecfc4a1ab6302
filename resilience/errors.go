package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrTimeout is returned by Guard.Execute when an operation exceeds
	// its deadline. The generic Call form signals the same condition with
	// an ok=false result instead.
	ErrTimeout = errors.New("resilience: operation timed out")
)
