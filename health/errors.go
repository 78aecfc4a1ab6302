package health

import "errors"

var (
	// ErrNoProbe indicates the poller has no status probe configured.
	ErrNoProbe = errors.New("health: no status probe configured")
)
