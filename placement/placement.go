// Package placement enumerates where a ship of a given length could still be,
// given what a board has revealed so far.
package placement

import (
	"iter"

	"battleship/board"
)

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func (o Orientation) step() board.Coord {
	if o == Vertical {
		return board.South
	}
	return board.East
}

// Placement is a contiguous, axis-aligned run of Length cells starting at
// Origin and extending east (Horizontal) or south (Vertical).
type Placement struct {
	Origin      board.Coord
	Length      int
	Orientation Orientation
}

// Cells yields the covered coordinates from the origin outwards.
func (p Placement) Cells() iter.Seq[board.Coord] {
	return func(yield func(board.Coord) bool) {
		c, step := p.Origin, p.Orientation.step()
		for i := 0; i < p.Length; i++ {
			if !yield(c) {
				return
			}
			c = c.Add(step)
		}
	}
}

func (p Placement) Coords() []board.Coord {
	coords := make([]board.Coord, 0, p.Length)
	for c := range p.Cells() {
		coords = append(coords, c)
	}
	return coords
}

func (p Placement) Covers(c board.Coord) bool {
	switch p.Orientation {
	case Horizontal:
		return c.Row == p.Origin.Row && c.Col >= p.Origin.Col && c.Col < p.Origin.Col+p.Length
	default:
		return c.Col == p.Origin.Col && c.Row >= p.Origin.Row && c.Row < p.Origin.Row+p.Length
	}
}

// InBounds reports whether every cell lies on an NxN grid.
func (p Placement) InBounds(size int) bool {
	if p.Length <= 0 || p.Origin.Row < 0 || p.Origin.Col < 0 {
		return false
	}
	if p.Orientation == Horizontal {
		return p.Origin.Row < size && p.Origin.Col+p.Length <= size
	}
	return p.Origin.Col < size && p.Origin.Row+p.Length <= size
}

// Valid reports whether a live ship could occupy p: it must be on the board and
// cover no Miss and no cell of an already sunk ship. Unresolved hits are
// allowed since they may belong to any ship still afloat.
func (p Placement) Valid(b *board.Board) bool {
	if !p.InBounds(b.Size()) {
		return false
	}
	for c := range p.Cells() {
		if s := b.At(c); s == board.Miss || s == board.Sunk {
			return false
		}
	}
	return true
}

// Source produces the candidate placements of one ship length. Implementations
// must be restartable: ranging over the returned sequence twice yields the same
// placements as long as the board does not change.
type Source interface {
	Placements(length int, b *board.Board) iter.Seq[Placement]
}

// RawCount is the number of geometric placements of a length on an NxN grid.
func RawCount(size, length int) int {
	if length <= 0 || length > size {
		return 0
	}
	return 2 * size * (size - length + 1)
}
