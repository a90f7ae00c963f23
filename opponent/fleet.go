// Package opponent holds the true positions of a fleet and answers shots
// against it. The targeting engine never reads it directly.
package opponent

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"battleship/board"
	"battleship/meta"
	"battleship/placement"
)

var ErrPlacementFailed = errors.New("failed to place fleet")

// Ship is a placed ship and the cells hit so far.
type Ship struct {
	Spec      board.ShipSpec
	Placement placement.Placement
	hits      map[board.Coord]bool
}

func (s *Ship) Sunk() bool {
	return len(s.hits) == s.Spec.Length
}

func (s *Ship) Coords() []board.Coord {
	return s.Placement.Coords()
}

// Fleet is the ground-truth ocean of one player.
type Fleet struct {
	size  int
	ships []*Ship
	at    map[board.Coord]*Ship
	shots map[board.Coord]board.Status
}

func NewFleet(size int) *Fleet {
	return &Fleet{
		size:  size,
		at:    make(map[board.Coord]*Ship),
		shots: make(map[board.Coord]board.Status),
	}
}

func (f *Fleet) Size() int {
	return f.size
}

func (f *Fleet) Ships() []*Ship {
	return f.ships
}

// Place adds a ship if it is on the board and overlaps no other ship.
func (f *Fleet) Place(spec board.ShipSpec, p placement.Placement) bool {
	if p.Length != spec.Length || !p.InBounds(f.size) {
		return false
	}
	for c := range p.Cells() {
		if f.at[c] != nil {
			return false
		}
	}
	ship := &Ship{Spec: spec, Placement: p, hits: make(map[board.Coord]bool)}
	for c := range p.Cells() {
		f.at[c] = ship
	}
	f.ships = append(f.ships, ship)
	return true
}

// Generate lays out the fleet at random, trying each ship up to
// meta.MAX_PLACEMENT_ATTEMPTS times and restarting the whole layout when a
// ship cannot be placed.
func Generate(size int, fleet []board.ShipSpec, rng *rand.Rand) (*Fleet, error) {
	for round := 0; round < meta.MAX_FLEET_ROUNDS; round++ {
		if f, ok := tryGenerate(size, fleet, rng); ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %d ships on a %dx%d board after %d rounds", ErrPlacementFailed, len(fleet), size, size, meta.MAX_FLEET_ROUNDS)
}

func tryGenerate(size int, fleet []board.ShipSpec, rng *rand.Rand) (*Fleet, bool) {
	f := NewFleet(size)
	for _, spec := range fleet {
		if spec.Length <= 0 || spec.Length > size {
			return nil, false
		}
		placed := false
		for attempt := 0; attempt < meta.MAX_PLACEMENT_ATTEMPTS && !placed; attempt++ {
			p := placement.Placement{Length: spec.Length, Orientation: placement.Orientation(rng.Intn(2))}
			if p.Orientation == placement.Horizontal {
				p.Origin = board.Coord{Row: rng.Intn(size), Col: rng.Intn(size - spec.Length + 1)}
			} else {
				p.Origin = board.Coord{Row: rng.Intn(size - spec.Length + 1), Col: rng.Intn(size)}
			}
			placed = f.Place(spec, p)
		}
		if !placed {
			return nil, false
		}
	}
	return f, true
}

// Fire resolves a shot. When it completes a ship, the ship's coordinates are
// returned as sunk. Firing at the same cell again repeats the earlier result
// without reporting a sinking.
func (f *Fleet) Fire(c board.Coord) (board.Status, []board.Coord, error) {
	if c.Row < 0 || c.Row >= f.size || c.Col < 0 || c.Col >= f.size {
		return board.Unknown, nil, fmt.Errorf("%w: %v", board.ErrOutOfBounds, c)
	}
	if prev, ok := f.shots[c]; ok {
		return prev, nil, nil
	}

	ship := f.at[c]
	if ship == nil {
		f.shots[c] = board.Miss
		return board.Miss, nil, nil
	}
	f.shots[c] = board.Hit
	ship.hits[c] = true
	if ship.Sunk() {
		return board.Hit, ship.Coords(), nil
	}
	return board.Hit, nil, nil
}

func (f *Fleet) AllSunk() bool {
	for _, s := range f.ships {
		if !s.Sunk() {
			return false
		}
	}
	return true
}
