// Package engine is the targeting engine's external interface: one Game per
// opponent board, fed ground truth by an orchestrator that owns that board.
package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"battleship/board"
	"battleship/strategy"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrUnknownGame = errors.New("unknown game")
)

type Option func(g *gameOptions)

type gameOptions struct {
	params map[string]string
}

// WithParams passes tuning parameters to the strategy, as in
// "density:hit_boost=4".
func WithParams(params map[string]string) Option {
	return func(o *gameOptions) {
		o.params = maps.Clone(params)
	}
}

// Game owns the board, the remaining catalog, the strategy and the random
// generator of one game. A Game is not safe for concurrent use.
type Game struct {
	ID       uuid.UUID
	config   strategy.Config
	seed     uint64
	board    *board.Board
	catalog  *board.Catalog
	strategy strategy.Strategy
	pending  *board.Coord
}

// NewGame starts a game on a size x size board against the given fleet.
func NewGame(size int, fleet []board.ShipSpec, kind strategy.Kind, seed uint64, options ...Option) (*Game, error) {
	o := gameOptions{}
	for _, option := range options {
		option(&o)
	}
	return newGame(size, fleet, strategy.Config{Kind: kind, Params: o.params}, seed)
}

// NewGameFromConfig is NewGame with the strategy given as a config string.
func NewGameFromConfig(size int, fleet []board.ShipSpec, config string, seed uint64) (*Game, error) {
	c, err := strategy.ParseConfig(config)
	if err != nil {
		return nil, err
	}
	return newGame(size, fleet, c, seed)
}

func newGame(size int, fleet []board.ShipSpec, config strategy.Config, seed uint64) (*Game, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: board size %d", board.ErrInvalidCatalog, size)
	}
	catalog, err := board.NewCatalog(size, fleet)
	if err != nil {
		return nil, err
	}
	s, err := strategy.New(config, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:       uuid.New(),
		config:   config,
		seed:     seed,
		board:    board.New(size),
		catalog:  catalog,
		strategy: s,
	}
	log.Debug().
		Str("game", g.ID.String()).
		Str("strategy", config.String()).
		Uint64("seed", seed).
		Msgf("created %dx%d game against %d ships", size, size, catalog.Len())
	return g, nil
}

// NextShot returns the cell to fire at. Until an outcome is applied for it,
// repeated calls return the same cell.
func (g *Game) NextShot() (board.Coord, error) {
	if g.IsComplete() {
		return board.Coord{}, fmt.Errorf("%w: all ships sunk after %d shots", ErrGameOver, g.board.Shots())
	}
	if g.pending != nil && g.board.At(*g.pending) == board.Unknown {
		return *g.pending, nil
	}

	shot, err := g.strategy.NextShot(g.board, g.catalog)
	if err != nil {
		return board.Coord{}, err
	}
	g.pending = &shot
	return shot, nil
}

// ApplyOutcome records the true result of a shot. When the shot completes a
// ship, sunk lists all of that ship's cells including target. Either the whole
// update is applied or, on error, nothing is.
func (g *Game) ApplyOutcome(target board.Coord, outcome board.Status, sunk []board.Coord) error {
	if g.IsComplete() {
		return fmt.Errorf("%w: cannot apply %v at %v", ErrGameOver, outcome, target)
	}

	next := g.board.Copy()
	if err := next.RecordResult(target, outcome); err != nil {
		return err
	}
	if len(sunk) > 0 {
		if outcome != board.Hit {
			return fmt.Errorf("%w: a %v cannot sink a ship", board.ErrInconsistentState, outcome)
		}
		if !slices.Contains(sunk, target) {
			return fmt.Errorf("%w: sunk ship %v does not contain the shot %v", board.ErrInconsistentState, sunk, target)
		}
		if !g.catalog.Has(len(sunk)) {
			return fmt.Errorf("%w: no ship of length %d remains", board.ErrInconsistentState, len(sunk))
		}
		if err := next.MarkSunk(sunk); err != nil {
			return err
		}
	}

	g.board = next
	if g.pending != nil && *g.pending == target {
		g.pending = nil
	}
	if len(sunk) > 0 {
		ship, err := g.catalog.Remove(len(sunk))
		if err != nil {
			return err
		}
		log.Debug().
			Str("game", g.ID.String()).
			Msgf("sunk %s (%d) after %d shots, %d ships left", ship.Name, ship.Length, g.board.Shots(), g.catalog.Len())
	}
	if g.IsComplete() {
		log.Debug().
			Str("game", g.ID.String()).
			Str("strategy", g.config.String()).
			Msgf("completed in %d shots", g.board.Shots())
	}
	return nil
}

// IsComplete reports whether every ship has been confirmed sunk.
func (g *Game) IsComplete() bool {
	return g.board.AllShipsSunk(g.catalog)
}

// Board returns a copy of the current targeting view.
func (g *Game) Board() *board.Board {
	return g.board.Copy()
}

// Remaining returns the ships not yet sunk.
func (g *Game) Remaining() []board.ShipSpec {
	return g.catalog.Remaining()
}

func (g *Game) Shots() int {
	return g.board.Shots()
}

func (g *Game) Size() int {
	return g.board.Size()
}

func (g *Game) Seed() uint64 {
	return g.seed
}

func (g *Game) Strategy() strategy.Config {
	return g.config
}
