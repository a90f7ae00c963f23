package board

import "fmt"

// Coord is a 0-indexed (row, col) grid coordinate.
type Coord struct {
	Row int
	Col int
}

func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

func (c Coord) Sub(d Coord) Coord {
	return Coord{Row: c.Row - d.Row, Col: c.Col - d.Col}
}

func (c Coord) Neg() Coord {
	return Coord{Row: -c.Row, Col: -c.Col}
}

// Parity is the checkerboard colour class of the coordinate (0 or 1).
func (c Coord) Parity() int {
	return (c.Row + c.Col) & 1
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Orthogonal unit vectors, clockwise from north.
var (
	North = Coord{Row: -1, Col: 0}
	East  = Coord{Row: 0, Col: 1}
	South = Coord{Row: 1, Col: 0}
	West  = Coord{Row: 0, Col: -1}
)

var Directions = [4]Coord{North, East, South, West}

// Status is the targeting view of a single cell.
type Status int

const (
	Unknown Status = iota
	Miss
	Hit
	Sunk // Hit cell whose ship has been confirmed destroyed
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Sunk:
		return "sunk"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
