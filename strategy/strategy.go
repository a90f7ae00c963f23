// Package strategy decides where to fire next.
package strategy

import (
	"fmt"

	"battleship/board"
)

// Strategy picks the next cell to fire at. The returned coordinate is always
// Unknown on b. Implementations may keep private state between calls (the
// hunt/target machine does) but never mutate b or catalog.
type Strategy interface {
	NextShot(b *board.Board, catalog *board.Catalog) (board.Coord, error)
}

// Kind selects a strategy implementation at construction time.
type Kind int

const (
	RandomKind Kind = iota
	HuntTargetKind
	DensityKind
	MonteCarloKind
)

func (k Kind) String() string {
	switch k {
	case RandomKind:
		return "random"
	case HuntTargetKind:
		return "hunt"
	case DensityKind:
		return "density"
	case MonteCarloKind:
		return "montecarlo"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func errNoTarget(b *board.Board) error {
	return fmt.Errorf("%w: no unknown cells remain after %d shots", board.ErrInconsistentState, b.Shots())
}

// parityFirst returns the first Unknown cell of the given parity in row-major
// order, or the first Unknown cell of any colour.
func parityFirst(b *board.Board, parity int) (board.Coord, bool) {
	var fallback board.Coord
	found := false
	for c := range b.Unknown() {
		if c.Parity() == parity {
			return c, true
		}
		if !found {
			fallback, found = c, true
		}
	}
	return fallback, found
}
