package placement

import (
	"iter"

	"battleship/board"
)

// Exhaustive examines every geometric placement, horizontal first in
// row-major origin order, then vertical.
type Exhaustive struct{}

func (Exhaustive) Placements(length int, b *board.Board) iter.Seq[Placement] {
	return Enumerate(length, b)
}

// Enumerate lazily yields every valid placement of a ship of the given length.
func Enumerate(length int, b *board.Board) iter.Seq[Placement] {
	return func(yield func(Placement) bool) {
		n := b.Size()
		if length <= 0 || length > n {
			return
		}
		for _, o := range []Orientation{Horizontal, Vertical} {
			rows, cols := n, n-length+1
			if o == Vertical {
				rows, cols = n-length+1, n
			}
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					p := Placement{Origin: board.Coord{Row: r, Col: c}, Length: length, Orientation: o}
					if p.Valid(b) && !yield(p) {
						return
					}
				}
			}
		}
	}
}

// Count drains a placement sequence.
func Count(seq iter.Seq[Placement]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
