package metrics

import (
	"time"

	"battleship/board"
)

type ShotMetric struct {
	Step     int
	Target   board.Coord
	Outcome  board.Status
	Sunk     bool
	Decision time.Duration // Time spent choosing the target
}

type GameMetric struct {
	Strategy     string
	Seed         uint64
	BoardSize    int
	Shots        int
	Hits         int
	ShipsSunk    int
	DecisionTime time.Duration // Sum of the shots' decision times
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Collector records one game. Games never share a collector.
type Collector interface {
	Start(strategy string, seed uint64, boardSize int)
	AddShot(target board.Coord, outcome board.Status, sunk bool, decision time.Duration)
	Complete() (GameMetric, []ShotMetric)
}

type collector struct {
	game  GameMetric
	shots []ShotMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, seed uint64, boardSize int) {
	m.game = GameMetric{
		Strategy:  strategy,
		Seed:      seed,
		BoardSize: boardSize,
		StartTime: time.Now(),
	}
	m.shots = nil
}

func (m *collector) AddShot(target board.Coord, outcome board.Status, sunk bool, decision time.Duration) {
	m.game.Shots++
	m.game.DecisionTime += decision
	if outcome == board.Hit {
		m.game.Hits++
	}
	if sunk {
		m.game.ShipsSunk++
	}
	m.shots = append(m.shots, ShotMetric{
		Step:     m.game.Shots,
		Target:   target,
		Outcome:  outcome,
		Sunk:     sunk,
		Decision: decision,
	})
}

func (m *collector) Complete() (GameMetric, []ShotMetric) {
	m.game.EndTime = time.Now()
	m.game.Duration = m.game.EndTime.Sub(m.game.StartTime)
	return m.game, m.shots
}

// summaryCollector keeps the game totals but drops per-shot detail.
type summaryCollector struct {
	collector
}

func NewSummaryCollector() Collector {
	return &summaryCollector{}
}

func (m *summaryCollector) AddShot(target board.Coord, outcome board.Status, sunk bool, decision time.Duration) {
	m.collector.AddShot(target, outcome, sunk, decision)
	m.shots = m.shots[:0]
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, seed uint64, boardSize int) {}
func (m *dummyCollector) AddShot(board.Coord, board.Status, bool, time.Duration) {}
func (m *dummyCollector) Complete() (GameMetric, []ShotMetric)                  { return GameMetric{}, nil }
