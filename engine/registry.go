package engine

import (
	"fmt"
	"sync"

	"github.com/dolthub/swiss"
	"github.com/google/uuid"

	"battleship/board"
	"battleship/strategy"
)

// Registry keeps games behind opaque handles for orchestrators that do not
// hold *Game values. It is safe for concurrent use; calls on the same game are
// serialized.
type Registry struct {
	mu    sync.Mutex
	games *swiss.Map[uuid.UUID, *Game]
}

func NewRegistry() *Registry {
	return &Registry{games: swiss.NewMap[uuid.UUID, *Game](16)}
}

func (r *Registry) Create(size int, fleet []board.ShipSpec, kind strategy.Kind, seed uint64, options ...Option) (uuid.UUID, error) {
	g, err := NewGame(size, fleet, kind, seed, options...)
	if err != nil {
		return uuid.Nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games.Put(g.ID, g)
	return g.ID, nil
}

func (r *Registry) get(id uuid.UUID) (*Game, error) {
	g, ok := r.games.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	return g, nil
}

func (r *Registry) NextShot(id uuid.UUID) (board.Coord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.get(id)
	if err != nil {
		return board.Coord{}, err
	}
	return g.NextShot()
}

func (r *Registry) ApplyOutcome(id uuid.UUID, target board.Coord, outcome board.Status, sunk []board.Coord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.get(id)
	if err != nil {
		return err
	}
	return g.ApplyOutcome(target, outcome, sunk)
}

func (r *Registry) IsComplete(id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.get(id)
	if err != nil {
		return false, err
	}
	return g.IsComplete(), nil
}

// Remove forgets a game, reporting whether it was registered.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.games.Delete(id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.games.Count()
}
