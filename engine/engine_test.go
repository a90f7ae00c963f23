package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"battleship/board"
	"battleship/experiments/metrics"
	"battleship/opponent"
	"battleship/placement"
	"battleship/strategy"
)

var destroyer = []board.ShipSpec{{Name: "Destroyer", Length: 2}}

func TestNewGame(t *testing.T) {
	t.Run("starts on an empty board", func(t *testing.T) {
		g, err := NewGame(10, board.StandardFleet(), strategy.DensityKind, 1)
		require.NoError(t, err)

		require.Equal(t, 10, g.Size())
		require.Equal(t, 0, g.Shots())
		require.False(t, g.IsComplete())
		require.Len(t, g.Remaining(), 5)
		require.Equal(t, strings.Repeat("..........\n", 10), g.Board().String())
	})

	t.Run("every game gets its own handle", func(t *testing.T) {
		a, err := NewGame(10, board.StandardFleet(), strategy.RandomKind, 1)
		require.NoError(t, err)
		b, err := NewGame(10, board.StandardFleet(), strategy.RandomKind, 1)
		require.NoError(t, err)
		require.NotEqual(t, a.ID, b.ID)
	})

	t.Run("invalid catalogs are rejected", func(t *testing.T) {
		_, err := NewGame(0, board.StandardFleet(), strategy.DensityKind, 1)
		require.ErrorIs(t, err, board.ErrInvalidCatalog)

		_, err = NewGame(4, board.StandardFleet(), strategy.DensityKind, 1)
		require.ErrorIs(t, err, board.ErrInvalidCatalog, "A carrier does not fit on a 4x4 board")

		_, err = NewGame(10, nil, strategy.DensityKind, 1)
		require.ErrorIs(t, err, board.ErrInvalidCatalog)
	})

	t.Run("parameters reach the strategy", func(t *testing.T) {
		g, err := NewGame(10, board.StandardFleet(), strategy.MonteCarloKind, 1, WithParams(map[string]string{"samples": "50"}))
		require.NoError(t, err)
		require.Equal(t, "montecarlo:samples=50", g.Strategy().String())

		_, err = NewGame(10, board.StandardFleet(), strategy.RandomKind, 1, WithParams(map[string]string{"samples": "50"}))
		require.Error(t, err, "Random takes no parameters")
	})

	t.Run("parameters are copied", func(t *testing.T) {
		params := map[string]string{"weight": "length"}
		g, err := NewGame(10, board.StandardFleet(), strategy.DensityKind, 1, WithParams(params))
		require.NoError(t, err)

		params["weight"] = "uniform"
		params["hit_boost"] = "2"
		require.Equal(t, "density:weight=length", g.Strategy().String())
	})

	t.Run("from a config string", func(t *testing.T) {
		g, err := NewGameFromConfig(10, board.StandardFleet(), "hunt", 3)
		require.NoError(t, err)
		require.Equal(t, strategy.HuntTargetKind, g.Strategy().Kind)

		_, err = NewGameFromConfig(10, board.StandardFleet(), "minimax", 3)
		require.ErrorIs(t, err, strategy.ErrUnknownStrategy)
	})
}

func TestNextShot(t *testing.T) {
	t.Run("repeats until an outcome is applied", func(t *testing.T) {
		g, err := NewGame(10, board.StandardFleet(), strategy.RandomKind, 5)
		require.NoError(t, err)

		first, err := g.NextShot()
		require.NoError(t, err)
		again, err := g.NextShot()
		require.NoError(t, err)
		require.Equal(t, first, again)

		require.NoError(t, g.ApplyOutcome(first, board.Miss, nil))
		next, err := g.NextShot()
		require.NoError(t, err)
		require.NotEqual(t, first, next)
	})

	t.Run("density opens in the centre", func(t *testing.T) {
		g, err := NewGame(10, board.StandardFleet(), strategy.DensityKind, 5)
		require.NoError(t, err)

		shot, err := g.NextShot()
		require.NoError(t, err)
		require.Equal(t, board.Coord{Row: 4, Col: 4}, shot)
	})

	t.Run("outcome for another cell replaces the pending shot", func(t *testing.T) {
		g, err := NewGame(10, board.StandardFleet(), strategy.DensityKind, 5)
		require.NoError(t, err)

		shot, err := g.NextShot()
		require.NoError(t, err)
		require.NoError(t, g.ApplyOutcome(shot, board.Miss, nil))

		next, err := g.NextShot()
		require.NoError(t, err)
		require.NoError(t, g.ApplyOutcome(next, board.Miss, nil))
		require.Equal(t, 2, g.Shots())
	})
}

func TestApplyOutcome(t *testing.T) {
	newGame := func(t *testing.T) *Game {
		g, err := NewGame(10, board.StandardFleet(), strategy.HuntTargetKind, 2)
		require.NoError(t, err)
		return g
	}

	t.Run("out of bounds", func(t *testing.T) {
		g := newGame(t)
		err := g.ApplyOutcome(board.Coord{Row: 10, Col: 0}, board.Miss, nil)
		require.ErrorIs(t, err, board.ErrOutOfBounds)
		require.Equal(t, 0, g.Shots())
	})

	t.Run("a cell can only be resolved once", func(t *testing.T) {
		g := newGame(t)
		c := board.Coord{Row: 3, Col: 3}
		require.NoError(t, g.ApplyOutcome(c, board.Hit, nil))
		require.ErrorIs(t, g.ApplyOutcome(c, board.Miss, nil), board.ErrInvalidTransition)
		require.Equal(t, 1, g.Shots())
	})

	t.Run("only misses and hits are shot outcomes", func(t *testing.T) {
		g := newGame(t)
		require.ErrorIs(t, g.ApplyOutcome(board.Coord{}, board.Sunk, nil), board.ErrInvalidTransition)
		require.ErrorIs(t, g.ApplyOutcome(board.Coord{}, board.Unknown, nil), board.ErrInvalidTransition)
	})

	t.Run("sinking a destroyer", func(t *testing.T) {
		g := newGame(t)
		a, b := board.Coord{Row: 0, Col: 0}, board.Coord{Row: 0, Col: 1}
		require.NoError(t, g.ApplyOutcome(a, board.Hit, nil))
		require.NoError(t, g.ApplyOutcome(b, board.Hit, []board.Coord{a, b}))

		view := g.Board()
		require.Equal(t, board.Sunk, view.At(a))
		require.Equal(t, board.Sunk, view.At(b))
		require.Len(t, g.Remaining(), 4)
		for _, s := range g.Remaining() {
			require.NotEqual(t, 2, s.Length)
		}
	})

	t.Run("rejected sinkings change nothing", func(t *testing.T) {
		cases := []struct {
			name    string
			outcome board.Status
			sunk    []board.Coord
			err     error
		}{
			{"sunk by a miss", board.Miss, []board.Coord{{Row: 5, Col: 0}, {Row: 5, Col: 1}}, board.ErrInconsistentState},
			{"shot not in ship", board.Hit, []board.Coord{{Row: 5, Col: 0}, {Row: 6, Col: 0}}, board.ErrInconsistentState},
			{"no ship of that length", board.Hit, []board.Coord{{Row: 5, Col: 0}, {Row: 5, Col: 1}, {Row: 5, Col: 2}, {Row: 5, Col: 3}, {Row: 5, Col: 4}, {Row: 5, Col: 5}}, board.ErrInconsistentState},
			{"ship cell never hit", board.Hit, []board.Coord{{Row: 5, Col: 1}, {Row: 5, Col: 2}}, board.ErrInconsistentState},
			{"ship off the board", board.Hit, []board.Coord{{Row: 5, Col: 1}, {Row: 5, Col: 10}}, board.ErrOutOfBounds},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				g := newGame(t)
				require.NoError(t, g.ApplyOutcome(board.Coord{Row: 5, Col: 0}, board.Hit, nil))
				before := g.Board().String()

				err := g.ApplyOutcome(board.Coord{Row: 5, Col: 1}, tc.outcome, tc.sunk)
				require.ErrorIs(t, err, tc.err)
				require.Equal(t, before, g.Board().String(), "A rejected update must leave the board untouched")
				require.Equal(t, 1, g.Shots())
				require.Len(t, g.Remaining(), 5)
			})
		}
	})

	t.Run("completed games refuse further play", func(t *testing.T) {
		g, err := NewGame(3, destroyer, strategy.DensityKind, 1)
		require.NoError(t, err)

		a, b := board.Coord{Row: 2, Col: 1}, board.Coord{Row: 2, Col: 2}
		require.NoError(t, g.ApplyOutcome(a, board.Hit, nil))
		require.NoError(t, g.ApplyOutcome(b, board.Hit, []board.Coord{a, b}))
		require.True(t, g.IsComplete())

		_, err = g.NextShot()
		require.ErrorIs(t, err, ErrGameOver)
		require.ErrorIs(t, g.ApplyOutcome(board.Coord{}, board.Miss, nil), ErrGameOver)
	})
}

func TestBoardIsACopy(t *testing.T) {
	g, err := NewGame(10, board.StandardFleet(), strategy.RandomKind, 1)
	require.NoError(t, err)

	view := g.Board()
	require.NoError(t, view.RecordResult(board.Coord{Row: 1, Col: 1}, board.Hit))
	require.Equal(t, board.Unknown, g.Board().At(board.Coord{Row: 1, Col: 1}))
}

func TestLocalEngine(t *testing.T) {
	t.Run("plays a standard game to the end", func(t *testing.T) {
		for _, kind := range []strategy.Kind{strategy.RandomKind, strategy.HuntTargetKind, strategy.DensityKind} {
			t.Run(kind.String(), func(t *testing.T) {
				fleet, err := opponent.Generate(10, board.StandardFleet(), rand.New(rand.NewSource(11)))
				require.NoError(t, err)
				g, err := NewGame(10, board.StandardFleet(), kind, 12)
				require.NoError(t, err)

				gameMetric, shotMetrics, err := NewLocalEngine(g, fleet, metrics.NewCollector()).Run()
				require.NoError(t, err)

				require.True(t, g.IsComplete())
				require.True(t, fleet.AllSunk())
				require.Equal(t, g.Shots(), gameMetric.Shots)
				require.Len(t, shotMetrics, gameMetric.Shots)
				require.Equal(t, 17, gameMetric.Hits)
				require.Equal(t, 5, gameMetric.ShipsSunk)
				require.Equal(t, kind.String(), gameMetric.Strategy)
				require.Equal(t, uint64(12), gameMetric.Seed)
				require.LessOrEqual(t, gameMetric.Shots, 100)
			})
		}
	})

	t.Run("a fleet that disagrees with the catalog fails", func(t *testing.T) {
		fleet := opponent.NewFleet(3)
		require.True(t, fleet.Place(destroyer[0], placement.Placement{Origin: board.Coord{Row: 0, Col: 0}, Length: 2, Orientation: placement.Horizontal}))
		g, err := NewGame(3, []board.ShipSpec{{Name: "Cruiser", Length: 3}}, strategy.RandomKind, 1)
		require.NoError(t, err)

		_, _, err = NewLocalEngine(g, fleet, nil).Run()
		require.Error(t, err)
	})

	t.Run("board sizes must agree", func(t *testing.T) {
		g, err := NewGame(10, board.StandardFleet(), strategy.RandomKind, 1)
		require.NoError(t, err)
		require.Panics(t, func() { NewLocalEngine(g, opponent.NewFleet(8), nil) })
	})
}
