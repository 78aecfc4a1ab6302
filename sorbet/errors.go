package sorbet

import "errors"

// Sentinel errors for the adapter. None of them ever reach a query
// caller; they exist for logs and for binder implementations.
var (
	// ErrNoBinder indicates the adapter was built without a binder.
	ErrNoBinder = errors.New("sorbet: no binder configured")

	// ErrNotBound indicates no capability surface is currently bound.
	ErrNotBound = errors.New("sorbet: capability surface not bound")

	// ErrNilSurface indicates a binder returned (nil, nil).
	ErrNilSurface = errors.New("sorbet: binder returned nil surface")
)
