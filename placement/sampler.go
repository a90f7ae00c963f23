package placement

import (
	"iter"

	"golang.org/x/exp/rand"

	"battleship/board"
)

// Sampler draws a fixed number of geometric placements uniformly at random
// (with replacement) and yields the valid ones. On large boards it bounds the
// work per shot at Samples checks per ship length instead of O(N^2).
type Sampler struct {
	rng     *rand.Rand
	samples int
}

func NewSampler(rng *rand.Rand, samples int) *Sampler {
	if rng == nil {
		panic("sampler needs a random source")
	}
	if samples <= 0 {
		panic("sampler needs a positive sample count")
	}
	return &Sampler{rng: rng, samples: samples}
}

func (s *Sampler) Samples() int {
	return s.samples
}

// Placements consumes one value from the sampler's generator to seed the
// returned sequence, so every range over it replays the same draws.
func (s *Sampler) Placements(length int, b *board.Board) iter.Seq[Placement] {
	seed := s.rng.Uint64()
	samples := s.samples
	return func(yield func(Placement) bool) {
		n := b.Size()
		raw := RawCount(n, length)
		if raw == 0 {
			return
		}
		rng := rand.New(rand.NewSource(seed))
		perAxis := raw / 2
		span := n - length + 1
		for i := 0; i < samples; i++ {
			k := rng.Intn(raw)
			p := Placement{Length: length}
			if k >= perAxis {
				k -= perAxis
				p.Orientation = Vertical
				p.Origin = board.Coord{Row: k / n, Col: k % n}
			} else {
				p.Orientation = Horizontal
				p.Origin = board.Coord{Row: k / span, Col: k % span}
			}
			if p.Valid(b) && !yield(p) {
				return
			}
		}
	}
}
