package metrics

import (
	"math"
	"time"
)

type StrategyConfig struct {
	ID     int
	Config string
}

type GameRecord struct {
	ID       int
	Strategy int // StrategyConfig.ID
	GameMetric
}

type ShotRecord struct {
	Game int // GameRecord.ID
	ShotMetric
}

// Summary aggregates the games of one strategy.
type Summary struct {
	Strategy     int // StrategyConfig.ID
	Config       string
	Games        int
	MeanShots    float64
	StdDevShots  float64
	MinShots     int
	MaxShots     int
	MeanDecision time.Duration
}

// Summarize aggregates records of a single strategy. MeanDecision is the
// mean time spent choosing a target, over all shots of all games.
func Summarize(config StrategyConfig, records []GameRecord) Summary {
	s := Summary{Strategy: config.ID, Config: config.Config, Games: len(records)}
	if len(records) == 0 {
		return s
	}

	s.MinShots = math.MaxInt
	total, totalShots := 0.0, 0
	var decisions time.Duration
	for _, r := range records {
		total += float64(r.Shots)
		totalShots += r.Shots
		decisions += r.DecisionTime
		s.MinShots = min(s.MinShots, r.Shots)
		s.MaxShots = max(s.MaxShots, r.Shots)
	}
	s.MeanShots = total / float64(len(records))

	variance := 0.0
	for _, r := range records {
		d := float64(r.Shots) - s.MeanShots
		variance += d * d
	}
	s.StdDevShots = math.Sqrt(variance / float64(len(records)))

	if totalShots > 0 {
		s.MeanDecision = decisions / time.Duration(totalShots)
	}
	return s
}
