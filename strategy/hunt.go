package strategy

import (
	"slices"

	"golang.org/x/exp/rand"

	"battleship/board"
)

// mode is the hunt/target machine's state: hunting or targeting.
type mode interface {
	isMode()
}

// hunting searches one checkerboard colour for a first hit. Every ship spans
// at least two cells, so it must cover a cell of each colour.
type hunting struct{}

// targeting probes around origin. A zero direction means the ship's axis is
// not known yet; once locked, reversed records whether the far side of origin
// is being walked.
type targeting struct {
	origin    board.Coord
	direction board.Coord
	reversed  bool
}

func (hunting) isMode()   {}
func (targeting) isMode() {}

func (t targeting) locked() bool {
	return t.direction != board.Coord{}
}

// HuntTarget searches by parity until a hit, then works along the hit ship's
// axis until it is reported sunk. Outcomes are read back from the board on the
// following call.
type HuntTarget struct {
	rng    *rand.Rand
	parity int
	state  mode
	queue  []board.Coord
	last   board.Coord
	fired  bool
}

func NewHuntTarget(rng *rand.Rand) *HuntTarget {
	if rng == nil {
		panic("hunt/target strategy needs a random source")
	}
	return &HuntTarget{
		rng:    rng,
		parity: rng.Intn(2),
		state:  hunting{},
	}
}

func (s *HuntTarget) NextShot(b *board.Board, _ *board.Catalog) (board.Coord, error) {
	if s.fired {
		// The previous shot has not been resolved yet
		if b.At(s.last) == board.Unknown {
			return s.last, nil
		}
		s.observe(b)
	}

	shot, ok := s.pick(b)
	if !ok {
		return board.Coord{}, errNoTarget(b)
	}
	s.last, s.fired = shot, true
	return shot, nil
}

// observe applies the outcome of the previous shot to the state machine.
func (s *HuntTarget) observe(b *board.Board) {
	outcome := b.At(s.last)

	switch st := s.state.(type) {
	case hunting:
		if outcome == board.Hit {
			s.target(b, s.last)
		}
	case targeting:
		if b.At(st.origin) == board.Sunk {
			s.hunt()
			return
		}
		switch outcome {
		case board.Hit:
			s.extend(b, st)
		case board.Miss:
			if st.locked() {
				s.reverse(b, st)
			}
		case board.Sunk:
			// The shot finished a different ship than origin's
			s.requeue(b, st.origin)
		}
	}
}

// extend locks the axis on the first adjacent hit and keeps walking it.
func (s *HuntTarget) extend(b *board.Board, st targeting) {
	if !st.locked() {
		anchor, ok := s.anchor(b, st.origin)
		if !ok {
			return
		}
		st = targeting{origin: anchor, direction: s.last.Sub(anchor)}
	}
	s.state = st

	next := s.last.Add(st.direction)
	if b.At(next) == board.Unknown {
		s.pushFront(next)
		return
	}
	s.reverse(b, st)
}

// anchor finds the hit the last shot extends: origin when adjacent, otherwise
// the first adjacent unresolved hit.
func (s *HuntTarget) anchor(b *board.Board, origin board.Coord) (board.Coord, bool) {
	for _, d := range board.Directions {
		if s.last.Add(d) == origin && b.At(origin) == board.Hit {
			return origin, true
		}
	}
	for _, d := range board.Directions {
		if c := s.last.Add(d); b.At(c) == board.Hit {
			return c, true
		}
	}
	return board.Coord{}, false
}

// reverse walks from origin in the opposite direction, past any hits, to the
// first cell that is still Unknown.
func (s *HuntTarget) reverse(b *board.Board, st targeting) {
	if st.reversed {
		s.requeue(b, st.origin)
		return
	}
	st.reversed = true
	st.direction = st.direction.Neg()
	s.state = st

	c := st.origin.Add(st.direction)
	for b.At(c) == board.Hit {
		c = c.Add(st.direction)
	}
	if b.At(c) == board.Unknown {
		s.pushFront(c)
		return
	}
	s.requeue(b, st.origin)
}

// requeue drops the axis lock and probes around every unresolved hit; the line
// held hits of more than one ship.
func (s *HuntTarget) requeue(b *board.Board, origin board.Coord) {
	s.queue = s.queue[:0]
	first, found := board.Coord{}, false
	for hit := range b.UnresolvedHits() {
		if !found {
			first, found = hit, true
		}
		s.pushNeighbours(b, hit)
	}
	switch {
	case len(s.queue) == 0:
		s.state = hunting{}
	case b.At(origin) == board.Hit:
		s.state = targeting{origin: origin}
	default:
		s.state = targeting{origin: first}
	}
}

func (s *HuntTarget) target(b *board.Board, origin board.Coord) {
	s.state = targeting{origin: origin}
	s.queue = s.queue[:0]
	s.pushNeighbours(b, origin)
}

func (s *HuntTarget) hunt() {
	s.state = hunting{}
	s.queue = s.queue[:0]
}

func (s *HuntTarget) pushNeighbours(b *board.Board, c board.Coord) {
	for _, d := range board.Directions {
		n := c.Add(d)
		if b.At(n) == board.Unknown && !slices.Contains(s.queue, n) {
			s.queue = append(s.queue, n)
		}
	}
}

func (s *HuntTarget) pushFront(c board.Coord) {
	if i := slices.Index(s.queue, c); i >= 0 {
		s.queue = slices.Delete(s.queue, i, i+1)
	}
	s.queue = slices.Insert(s.queue, 0, c)
}

// pick pops the target queue, or hunts when nothing is queued.
func (s *HuntTarget) pick(b *board.Board) (board.Coord, bool) {
	for {
		switch st := s.state.(type) {
		case targeting:
			for len(s.queue) > 0 {
				c := s.queue[0]
				s.queue = s.queue[1:]
				if b.At(c) == board.Unknown {
					return c, true
				}
			}
			if st.locked() {
				s.requeue(b, st.origin)
				if _, ok := s.state.(targeting); ok {
					continue
				}
			}
			s.hunt()
		case hunting:
			for hit := range b.UnresolvedHits() {
				if s.hasUnknownNeighbour(b, hit) {
					s.target(b, hit)
					break
				}
			}
			if _, ok := s.state.(targeting); ok {
				continue
			}
			return s.search(b)
		}
	}
}

func (s *HuntTarget) hasUnknownNeighbour(b *board.Board, c board.Coord) bool {
	for _, d := range board.Directions {
		if b.At(c.Add(d)) == board.Unknown {
			return true
		}
	}
	return false
}

// search draws a random Unknown cell of the hunting colour, or of any colour
// once that colour is exhausted.
func (s *HuntTarget) search(b *board.Board) (board.Coord, bool) {
	var candidates, all []board.Coord
	for c := range b.Unknown() {
		all = append(all, c)
		if c.Parity() == s.parity {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = all
	}
	if len(candidates) == 0 {
		return board.Coord{}, false
	}
	return candidates[s.rng.Intn(len(candidates))], true
}
