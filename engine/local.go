package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"battleship/experiments/metrics"
	"battleship/opponent"
)

var ErrShotLimit = errors.New("shot limit reached")

type Engine interface {
	// Run fires until every ship is sunk or the board has been exhausted
	Run() (gameMetric metrics.GameMetric, shotMetrics []metrics.ShotMetric, err error)
}

// LocalEngine plays a Game against an in-process opponent fleet, standing in
// for the orchestrator that normally owns the opponent's board.
type LocalEngine struct {
	Game      *Game
	Opponent  *opponent.Fleet
	collector metrics.Collector
}

func NewLocalEngine(g *Game, opp *opponent.Fleet, collector metrics.Collector) *LocalEngine {
	if g.Size() != opp.Size() {
		panic(fmt.Sprintf("game board is %dx%d but opponent board is %dx%d", g.Size(), g.Size(), opp.Size(), opp.Size()))
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &LocalEngine{
		Game:      g,
		Opponent:  opp,
		collector: collector,
	}
}

// Run executes the game loop. Every shot lands on a distinct cell, so a game
// that has not ended after size*size shots means the fleet and the catalog
// disagree.
func (e *LocalEngine) Run() (metrics.GameMetric, []metrics.ShotMetric, error) {
	size := e.Game.Size()
	maxShots := size * size
	e.collector.Start(e.Game.Strategy().String(), e.Game.Seed(), size)

	for !e.Game.IsComplete() {
		if e.Game.Shots() >= maxShots {
			gameMetric, shotMetrics := e.collector.Complete()
			return gameMetric, shotMetrics, fmt.Errorf("%w: %d shots without sinking the fleet", ErrShotLimit, maxShots)
		}

		start := time.Now()
		target, err := e.Game.NextShot()
		decision := time.Since(start)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}

		outcome, sunk, err := e.Opponent.Fire(target)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		if err := e.Game.ApplyOutcome(target, outcome, sunk); err != nil {
			return metrics.GameMetric{}, nil, err
		}
		e.collector.AddShot(target, outcome, len(sunk) > 0, decision)

		log.Trace().
			Str("game", e.Game.ID.String()).
			Msgf("shot %d at %v: %v", e.Game.Shots(), target, outcome)
	}

	gameMetric, shotMetrics := e.collector.Complete()
	return gameMetric, shotMetrics, nil
}
