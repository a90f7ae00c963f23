package strategy

import (
	"battleship/board"
	"battleship/density"
)

// Density fires at the argmax of the placement heatmap. When no placement
// covers any Unknown cell it falls back to the first cell of parity 0.
type Density struct {
	estimator *density.Estimator
}

func NewDensity(estimator *density.Estimator) *Density {
	if estimator == nil {
		estimator = density.NewEstimator()
	}
	return &Density{estimator: estimator}
}

func (s *Density) Heatmap(b *board.Board, catalog *board.Catalog) density.Heatmap {
	return s.estimator.Score(b, catalog)
}

func (s *Density) NextShot(b *board.Board, catalog *board.Catalog) (board.Coord, error) {
	h := s.estimator.Score(b, catalog)
	best, score, ok := h.Max(b)
	if !ok {
		return board.Coord{}, errNoTarget(b)
	}
	if score > 0 {
		return best, nil
	}
	c, _ := parityFirst(b, 0)
	return c, nil
}
