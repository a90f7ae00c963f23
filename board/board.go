package board

import (
	"fmt"
	"iter"
	"strings"
)

// Board is one side's targeting view of an NxN grid: what is known about each
// cell of the opponent's ocean. Cells only move forward:
// Unknown -> Miss | Hit, and Hit -> Sunk.
type Board struct {
	size  int
	cells []Status
	owner []int // Index into sunk for Sunk cells, -1 otherwise
	sunk  [][]Coord
	shots int
}

// New returns an all-Unknown board of the given dimension.
func New(size int) *Board {
	if size <= 0 {
		panic("board size must be positive")
	}
	b := &Board{
		size:  size,
		cells: make([]Status, size*size),
		owner: make([]int, size*size),
	}
	for i := range b.owner {
		b.owner[i] = -1
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

// Shots is the number of results recorded so far.
func (b *Board) Shots() int {
	return b.shots
}

func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

func (b *Board) index(c Coord) int {
	return c.Row*b.size + c.Col
}

// At returns the status of an in-bounds coordinate. Out-of-bounds coordinates
// read as Miss so that geometric scans can treat the border as water.
func (b *Board) At(c Coord) Status {
	if !b.InBounds(c) {
		return Miss
	}
	return b.cells[b.index(c)]
}

// StatusOf is the checked lookup.
func (b *Board) StatusOf(c Coord) (Status, error) {
	if !b.InBounds(c) {
		return Unknown, fmt.Errorf("%w: %v on %dx%d board", ErrOutOfBounds, c, b.size, b.size)
	}
	return b.cells[b.index(c)], nil
}

// RecordResult stores the outcome of a shot at an Unknown cell. The outcome
// must be Miss or Hit.
//
// Firing off the board is both out of bounds and an invalid transition, so
// the error matches either sentinel.
func (b *Board) RecordResult(c Coord, outcome Status) error {
	if !b.InBounds(c) {
		return fmt.Errorf("%w (%w): %v on %dx%d board", ErrOutOfBounds, ErrInvalidTransition, c, b.size, b.size)
	}
	if outcome != Miss && outcome != Hit {
		return fmt.Errorf("%w: outcome %v is not a shot result", ErrInvalidTransition, outcome)
	}
	i := b.index(c)
	if b.cells[i] != Unknown {
		return fmt.Errorf("%w: %v is already %v", ErrInvalidTransition, c, b.cells[i])
	}
	b.cells[i] = outcome
	b.shots++
	return nil
}

// CheckSunk validates that coords could be marked sunk: non-empty, in bounds,
// distinct and all currently Hit.
func (b *Board) CheckSunk(coords []Coord) error {
	if len(coords) == 0 {
		return fmt.Errorf("%w: sunk ship has no coordinates", ErrInconsistentState)
	}
	seen := make(map[Coord]bool, len(coords))
	for _, c := range coords {
		if !b.InBounds(c) {
			return fmt.Errorf("%w: sunk coordinate %v", ErrOutOfBounds, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate sunk coordinate %v", ErrInconsistentState, c)
		}
		seen[c] = true
		if s := b.cells[b.index(c)]; s != Hit {
			return fmt.Errorf("%w: sunk coordinate %v is %v, not hit", ErrInconsistentState, c, s)
		}
	}
	return nil
}

// MarkSunk reclassifies the cells of a just-destroyed ship from Hit to Sunk.
// Nothing is changed if any coordinate fails validation.
func (b *Board) MarkSunk(coords []Coord) error {
	if err := b.CheckSunk(coords); err != nil {
		return err
	}
	ship := make([]Coord, len(coords))
	copy(ship, coords)
	id := len(b.sunk)
	b.sunk = append(b.sunk, ship)
	for _, c := range ship {
		i := b.index(c)
		b.cells[i] = Sunk
		b.owner[i] = id
	}
	return nil
}

// SunkShip returns the coordinates of the sunk ship covering c, if any.
func (b *Board) SunkShip(c Coord) ([]Coord, bool) {
	if !b.InBounds(c) {
		return nil, false
	}
	id := b.owner[b.index(c)]
	if id < 0 {
		return nil, false
	}
	return b.sunk[id], true
}

// SunkCount is the number of ships marked sunk on this board.
func (b *Board) SunkCount() int {
	return len(b.sunk)
}

// AllShipsSunk reports whether no ship of the catalog remains afloat.
func (b *Board) AllShipsSunk(catalog *Catalog) bool {
	return catalog.Empty()
}

// Cells yields every coordinate in row-major order.
func (b *Board) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for r := 0; r < b.size; r++ {
			for c := 0; c < b.size; c++ {
				if !yield(Coord{Row: r, Col: c}) {
					return
				}
			}
		}
	}
}

// Unknown yields every Unknown coordinate in row-major order.
func (b *Board) Unknown() iter.Seq[Coord] {
	return b.withStatus(Unknown)
}

// UnresolvedHits yields every Hit coordinate not yet attributed to a sunk
// ship, in row-major order.
func (b *Board) UnresolvedHits() iter.Seq[Coord] {
	return b.withStatus(Hit)
}

func (b *Board) withStatus(s Status) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for c := range b.Cells() {
			if b.cells[b.index(c)] == s && !yield(c) {
				return
			}
		}
	}
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	cells := make([]Status, len(b.cells))
	copy(cells, b.cells)
	owner := make([]int, len(b.owner))
	copy(owner, b.owner)
	sunk := make([][]Coord, len(b.sunk))
	for i, ship := range b.sunk {
		sunk[i] = append([]Coord(nil), ship...)
	}
	return &Board{
		size:  b.size,
		cells: cells,
		owner: owner,
		sunk:  sunk,
		shots: b.shots,
	}
}

// String renders the board for debugging: '.' unknown, 'o' miss, 'X' hit,
// '#' sunk.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			switch b.cells[r*b.size+c] {
			case Unknown:
				sb.WriteByte('.')
			case Miss:
				sb.WriteByte('o')
			case Hit:
				sb.WriteByte('X')
			case Sunk:
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
