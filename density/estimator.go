package density

import (
	"maps"
	"slices"

	"battleship/board"
	"battleship/meta"
	"battleship/placement"
)

// WeightFunc scales the contribution of every placement of a ship length.
type WeightFunc func(length int) float64

// Uniform counts every placement once.
func Uniform(int) float64 { return 1 }

// ByLength favours longer ships.
func ByLength(length int) float64 { return float64(length) }

type Option func(e *Estimator)

// WithSource replaces exhaustive enumeration, e.g. with a placement.Sampler.
func WithSource(source placement.Source) Option {
	return func(e *Estimator) {
		if source != nil {
			e.source = source
		}
	}
}

func WithWeight(weight WeightFunc) Option {
	return func(e *Estimator) {
		if weight != nil {
			e.weight = weight
		}
	}
}

// WithHitBoost sets how strongly placements through unresolved hits count:
// a placement covering k such hits contributes weight*(1+boost*k).
func WithHitBoost(boost float64) Option {
	return func(e *Estimator) {
		if boost >= 0 {
			e.hitBoost = boost
		}
	}
}

// WithAdjacencyBonus sets the flat bonus for covered cells orthogonally
// adjacent to an unresolved hit.
func WithAdjacencyBonus(bonus float64) Option {
	return func(e *Estimator) {
		if bonus >= 0 {
			e.adjacencyBonus = bonus
		}
	}
}

type Estimator struct {
	source         placement.Source
	weight         WeightFunc
	hitBoost       float64
	adjacencyBonus float64
}

func NewEstimator(options ...Option) *Estimator {
	e := &Estimator{ // Default values
		source:         placement.Exhaustive{},
		weight:         Uniform,
		hitBoost:       meta.HIT_BOOST,
		adjacencyBonus: meta.ADJACENCY_BONUS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Estimator) Source() placement.Source {
	return e.source
}

func (e *Estimator) Weight() WeightFunc {
	return e.weight
}

// Score builds the heatmap for the ships still afloat. With an exhaustive
// source the result is a pure function of the board and catalog.
func (e *Estimator) Score(b *board.Board, catalog *board.Catalog) Heatmap {
	h := newHeatmap(b.Size())

	counts := catalog.LengthCounts()
	for _, length := range slices.Sorted(maps.Keys(counts)) {
		base := float64(counts[length]) * e.weight(length)
		if base <= 0 {
			continue
		}
		for p := range e.source.Placements(length, b) {
			hits := 0
			for c := range p.Cells() {
				if b.At(c) == board.Hit {
					hits++
				}
			}
			v := base * (1 + e.hitBoost*float64(hits))
			for c := range p.Cells() {
				if b.At(c) == board.Unknown {
					h.add(c, v)
				}
			}
		}
	}

	if e.adjacencyBonus > 0 {
		e.applyAdjacency(b, h)
	}
	return h
}

// applyAdjacency adds the bonus once per cell, and only to cells some
// placement already covers so uncovered cells stay at zero.
func (e *Estimator) applyAdjacency(b *board.Board, h Heatmap) {
	bonused := make(map[board.Coord]bool)
	for hit := range b.UnresolvedHits() {
		for _, d := range board.Directions {
			c := hit.Add(d)
			if b.At(c) != board.Unknown || bonused[c] || h.At(c) == 0 {
				continue
			}
			bonused[c] = true
			h.add(c, e.adjacencyBonus)
		}
	}
}
