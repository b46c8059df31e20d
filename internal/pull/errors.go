package pull

import "errors"

// Configuration errors, returned by New.
var (
	// ErrInvalidConfig indicates the Config failed validation
	ErrInvalidConfig = errors.New("invalid pull configuration")

	// ErrInvalidHeaderLayout indicates the environment could not build a header for the layout
	ErrInvalidHeaderLayout = errors.New("must supply a valid header layout")

	// ErrNoScheduler indicates minimization is enabled but no scheduler was given
	ErrNoScheduler = errors.New("minimize enabled but no scheduler configured")
)

// Usage errors, returned by the failing call.
var (
	// ErrDestroyed indicates the attacher has been destroyed
	ErrDestroyed = errors.New("attacher is destroyed")

	// ErrNilSurface indicates a nil surface was passed to Register
	ErrNilSurface = errors.New("refreshable surface is nil")

	// ErrSurfaceNotComparable indicates the surface cannot be used as a registry key
	ErrSurfaceNotComparable = errors.New("refreshable surface is not comparable")

	// ErrNoRefreshCallback indicates Register was called without a refresh callback
	ErrNoRefreshCallback = errors.New("refresh callback not given")

	// ErrNoCapability indicates no capability was given and none is built in for the surface
	ErrNoCapability = errors.New("no capability found for surface")
)
