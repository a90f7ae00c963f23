package board

import "errors"

// Contract violations reported by the board and catalog. They indicate the
// caller broke the engine's contract and are never expected during play.
var (
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrInvalidTransition = errors.New("invalid cell transition")
	ErrInconsistentState = errors.New("inconsistent board state")
	ErrInvalidCatalog    = errors.New("invalid ship catalog")
)
