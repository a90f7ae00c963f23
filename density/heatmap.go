// Package density scores every unknown cell by how many ship placements
// consistent with the evidence would cover it.
package density

import (
	"fmt"
	"strings"

	"battleship/board"
)

// Heatmap holds a non-negative score per cell. Only Unknown cells can be
// non-zero.
type Heatmap struct {
	size   int
	scores []float64
}

func newHeatmap(size int) Heatmap {
	return Heatmap{size: size, scores: make([]float64, size*size)}
}

func (h Heatmap) Size() int {
	return h.size
}

func (h Heatmap) inBounds(c board.Coord) bool {
	return c.Row >= 0 && c.Row < h.size && c.Col >= 0 && c.Col < h.size
}

// At returns the score of c, 0 when out of bounds.
func (h Heatmap) At(c board.Coord) float64 {
	if !h.inBounds(c) {
		return 0
	}
	return h.scores[c.Row*h.size+c.Col]
}

func (h Heatmap) add(c board.Coord, v float64) {
	h.scores[c.Row*h.size+c.Col] += v
}

// Max returns the highest scoring Unknown cell of b, ties broken by lowest row
// then lowest column. ok is false when b has no Unknown cell.
func (h Heatmap) Max(b *board.Board) (best board.Coord, score float64, ok bool) {
	score = -1
	for c := range b.Unknown() {
		if s := h.At(c); s > score {
			best, score, ok = c, s, true
		}
	}
	if !ok {
		return board.Coord{}, 0, false
	}
	return best, score, true
}

// Total is the sum of all scores.
func (h Heatmap) Total() float64 {
	var sum float64
	for _, s := range h.scores {
		sum += s
	}
	return sum
}

func (h Heatmap) String() string {
	var sb strings.Builder
	for r := 0; r < h.size; r++ {
		for c := 0; c < h.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%6.1f", h.scores[r*h.size+c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
