package optimizer

import "errors"

var (
	// ErrInvalidBins is returned when the bins do not describe one container per role
	// or carry a negative remaining capacity or cost.
	ErrInvalidBins = errors.New("bins must describe each container role exactly once with non-negative capacity and cost")
	// ErrInvalidItems is returned when a pending item has a non-positive size.
	ErrInvalidItems = errors.New("pending items must have a positive size")
)
