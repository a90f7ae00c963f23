package strategy

import (
	"slices"

	"golang.org/x/exp/rand"

	"battleship/board"
)

// Random fires uniformly at any Unknown cell.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		panic("random strategy needs a random source")
	}
	return &Random{rng: rng}
}

func (s *Random) NextShot(b *board.Board, _ *board.Catalog) (board.Coord, error) {
	unknown := slices.Collect(b.Unknown())
	if len(unknown) == 0 {
		return board.Coord{}, errNoTarget(b)
	}
	return unknown[s.rng.Intn(len(unknown))], nil
}
