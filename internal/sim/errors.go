package sim

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInboxFull indicates too many spawn requests are waiting for a tick.
	ErrInboxFull = errors.New("sim: spawn inbox full")

	// ErrInvalidBounds indicates a viewport that is inverted or not finite.
	ErrInvalidBounds = errors.New("sim: invalid viewport bounds")

	// ErrReentrantTick indicates Tick was called from inside a running frame.
	ErrReentrantTick = errors.New("sim: tick called from inside a frame")

	// ErrInvalidColor indicates a colour that is neither a known name nor hex.
	ErrInvalidColor = errors.New("sim: invalid color")
)
