package board

import (
	"fmt"
	"slices"

	"battleship/utils"
)

// ShipSpec is an immutable (name, length) pair from the fleet definition.
type ShipSpec struct {
	Name   string
	Length int
}

// StandardFleet is the classic five-ship fleet.
func StandardFleet() []ShipSpec {
	return []ShipSpec{
		{Name: "Carrier", Length: 5},
		{Name: "Battleship", Length: 4},
		{Name: "Cruiser", Length: 3},
		{Name: "Submarine", Length: 3},
		{Name: "Destroyer", Length: 2},
	}
}

// Catalog is the multiset of ships not yet confirmed sunk. It only shrinks.
type Catalog struct {
	ships []ShipSpec
}

// NewCatalog validates the fleet against the board dimension. Every ship must
// be at least two cells long (parity scanning depends on it) and fit on the
// board.
func NewCatalog(size int, fleet []ShipSpec) (*Catalog, error) {
	if len(fleet) == 0 {
		return nil, fmt.Errorf("%w: no ships", ErrInvalidCatalog)
	}
	if size*size < totalLength(fleet) {
		return nil, fmt.Errorf("%w: %d ship cells do not fit a %dx%d board", ErrInvalidCatalog, totalLength(fleet), size, size)
	}
	for _, s := range fleet {
		if s.Length < 2 || s.Length > size {
			return nil, fmt.Errorf("%w: %s has length %d on a %dx%d board", ErrInvalidCatalog, s.Name, s.Length, size, size)
		}
	}
	return &Catalog{ships: slices.Clone(fleet)}, nil
}

func totalLength(fleet []ShipSpec) int {
	n := 0
	for _, s := range fleet {
		n += s.Length
	}
	return n
}

func (c *Catalog) Len() int {
	return len(c.ships)
}

func (c *Catalog) Empty() bool {
	return len(c.ships) == 0
}

// Remaining returns a copy of the ships still afloat.
func (c *Catalog) Remaining() []ShipSpec {
	return slices.Clone(c.ships)
}

// Lengths returns the remaining ship lengths in catalog order.
func (c *Catalog) Lengths() []int {
	lengths := make([]int, len(c.ships))
	for i, s := range c.ships {
		lengths[i] = s.Length
	}
	return lengths
}

// LengthCounts maps each remaining length to its multiplicity.
func (c *Catalog) LengthCounts() map[int]int {
	counts := make(map[int]int)
	for _, s := range c.ships {
		counts[s.Length]++
	}
	return counts
}

// Has reports whether a ship of the given length is still afloat.
func (c *Catalog) Has(length int) bool {
	return utils.FindIndex(c.Lengths(), length) >= 0
}

// Remove takes the first remaining ship of the given length out of the
// catalog and returns it.
func (c *Catalog) Remove(length int) (ShipSpec, error) {
	i := utils.FindIndex(c.Lengths(), length)
	if i < 0 {
		return ShipSpec{}, fmt.Errorf("%w: no ship of length %d remains", ErrInconsistentState, length)
	}
	ship := c.ships[i]
	c.ships = utils.RemoveAt(c.ships, i)
	return ship, nil
}

func (c *Catalog) Copy() *Catalog {
	return &Catalog{ships: slices.Clone(c.ships)}
}
