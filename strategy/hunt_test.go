package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"battleship/board"
	"battleship/opponent"
)

func fire(t *testing.T, s *HuntTarget, b *board.Board, outcome board.Status) board.Coord {
	t.Helper()
	shot, err := s.NextShot(b, nil)
	require.NoError(t, err)
	require.NoError(t, b.RecordResult(shot, outcome))
	return shot
}

func TestHuntTargetLocksDirection(t *testing.T) {
	t.Run("second hit east of the first", func(t *testing.T) {
		b := board.New(10)
		require.NoError(t, b.RecordResult(board.Coord{Row: 2, Col: 2}, board.Hit))
		s := NewHuntTarget(newRand(1))

		require.Equal(t, board.Coord{Row: 1, Col: 2}, fire(t, s, b, board.Miss), "North neighbour is probed first")
		require.Equal(t, board.Coord{Row: 2, Col: 3}, fire(t, s, b, board.Hit), "East neighbour is probed next")

		got, err := s.NextShot(b, nil)
		require.NoError(t, err)

		require.Equal(t, board.Coord{Row: 2, Col: 4}, got, "Should continue along the locked axis")
		st, ok := s.state.(targeting)
		require.True(t, ok, "Should be targeting")
		require.Equal(t, board.Coord{Row: 2, Col: 2}, st.origin)
		require.Equal(t, board.East, st.direction, "Direction should lock to +col")
	})

	t.Run("first hit found while hunting", func(t *testing.T) {
		b := board.New(10)
		s := NewHuntTarget(newRand(5))

		origin := fire(t, s, b, board.Hit)
		require.Equal(t, s.parity, origin.Parity(), "Hunting shots use one colour")

		_, err := s.NextShot(b, nil)
		require.NoError(t, err)
		st, ok := s.state.(targeting)
		require.True(t, ok, "A hit should switch to targeting")
		require.Equal(t, origin, st.origin)
		require.False(t, st.locked(), "No direction is known after one hit")
	})

	t.Run("reversing at the end of the line", func(t *testing.T) {
		b := board.New(10)
		require.NoError(t, b.RecordResult(board.Coord{Row: 5, Col: 5}, board.Hit))
		s := NewHuntTarget(newRand(1))

		require.Equal(t, board.Coord{Row: 4, Col: 5}, fire(t, s, b, board.Hit), "North neighbour first")
		require.Equal(t, board.Coord{Row: 3, Col: 5}, fire(t, s, b, board.Miss), "Continue north")

		got, err := s.NextShot(b, nil)
		require.NoError(t, err)
		require.Equal(t, board.Coord{Row: 6, Col: 5}, got, "Should walk south from origin after the miss")
		st := s.state.(targeting)
		require.Equal(t, board.South, st.direction)
		require.True(t, st.reversed)
	})

	t.Run("reversing at the board edge", func(t *testing.T) {
		b := board.New(10)
		require.NoError(t, b.RecordResult(board.Coord{Row: 1, Col: 0}, board.Hit))
		s := NewHuntTarget(newRand(1))

		require.Equal(t, board.Coord{Row: 0, Col: 0}, fire(t, s, b, board.Hit), "North neighbour first")

		got, err := s.NextShot(b, nil)
		require.NoError(t, err)
		require.Equal(t, board.Coord{Row: 2, Col: 0}, got, "North runs off the board so go south")
	})
}

func TestHuntTargetReturnsToHunting(t *testing.T) {
	t.Run("after the origin's ship is sunk", func(t *testing.T) {
		b := board.New(10)
		require.NoError(t, b.RecordResult(board.Coord{Row: 2, Col: 2}, board.Hit))
		s := NewHuntTarget(newRand(1))
		fire(t, s, b, board.Miss)
		fire(t, s, b, board.Hit)
		require.NoError(t, b.MarkSunk([]board.Coord{{Row: 2, Col: 2}, {Row: 2, Col: 3}}))

		got, err := s.NextShot(b, nil)
		require.NoError(t, err)

		require.IsType(t, hunting{}, s.state, "Sinking should end targeting")
		require.Empty(t, s.queue, "Queue should be cleared")
		require.Equal(t, s.parity, got.Parity())
	})

	t.Run("after an isolated hit runs out of neighbours", func(t *testing.T) {
		b := board.New(10)
		require.NoError(t, b.RecordResult(board.Coord{Row: 0, Col: 0}, board.Hit))
		s := NewHuntTarget(newRand(1))

		require.Equal(t, board.Coord{Row: 0, Col: 1}, fire(t, s, b, board.Miss))
		require.Equal(t, board.Coord{Row: 1, Col: 0}, fire(t, s, b, board.Miss))

		_, err := s.NextShot(b, nil)
		require.NoError(t, err)
		require.IsType(t, hunting{}, s.state, "Empty queue without a lock should fall back to hunting")
	})

	t.Run("resuming on another ship's hits", func(t *testing.T) {
		b := board.New(10)
		// Two parallel destroyers hit side by side look like one horizontal ship
		require.NoError(t, b.RecordResult(board.Coord{Row: 4, Col: 4}, board.Hit))
		require.NoError(t, b.RecordResult(board.Coord{Row: 4, Col: 5}, board.Hit))
		require.NoError(t, b.RecordResult(board.Coord{Row: 5, Col: 4}, board.Hit))
		require.NoError(t, b.MarkSunk([]board.Coord{{Row: 4, Col: 4}, {Row: 5, Col: 4}}))
		s := NewHuntTarget(newRand(1))

		got, err := s.NextShot(b, nil)
		require.NoError(t, err)

		st, ok := s.state.(targeting)
		require.True(t, ok, "Unresolved hit should be targeted before hunting")
		require.Equal(t, board.Coord{Row: 4, Col: 5}, st.origin)
		require.Equal(t, board.Coord{Row: 3, Col: 5}, got)
	})
}

func TestHuntTargetRepeatsUnresolvedShot(t *testing.T) {
	b := board.New(10)
	s := NewHuntTarget(newRand(1))

	first, err := s.NextShot(b, nil)
	require.NoError(t, err)
	second, err := s.NextShot(b, nil)
	require.NoError(t, err)

	require.Equal(t, first, second, "Shot should be repeated until its outcome is recorded")
}

func TestHuntTargetQueueOnlyHoldsUnknownCells(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		fleet, err := opponent.Generate(10, board.StandardFleet(), newRand(seed))
		require.NoError(t, err)
		s := NewHuntTarget(newRand(seed))

		play(t, s, fleet, board.StandardFleet(), func(b *board.Board, _ *board.Catalog, shot board.Coord) {
			for _, c := range s.queue {
				require.Equal(t, board.Unknown, b.At(c), "Queued %v should be unknown\n%s", c, b)
				require.NotEqual(t, shot, c, "Fired cell should leave the queue")
			}
		})
	}
}
