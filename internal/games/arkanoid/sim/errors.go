package sim

import "errors"

// Sentinel errors. Callers match them with errors.Is; the wrapping
// message carries the detail.
var (
	// ErrInvalidArgument reports a constructor argument that can never be valid.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidLevel reports a level grid that cannot be turned into bricks.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrInvalidSnapshot reports a snapshot that cannot reconstruct a session.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
