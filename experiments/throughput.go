package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"battleship/board"
	"battleship/experiments/metrics"
)

var latencyStrategies = []string{
	"density",
	"montecarlo:samples=500",
	"montecarlo:samples=2000",
}

// RunLatencyExperiment compares the time per decision of exhaustive and
// sampled density estimation as the board grows. Games run one at a time so
// timings are not skewed by contention. Results are written under out unless
// it is empty.
func RunLatencyExperiment(ctx context.Context, out string, sizes []int, games int) ([]metrics.Summary, error) {
	summaries := []metrics.Summary{}

	log.Info().Msg("starting latency experiment...")

	for _, size := range sizes {
		exp := Experiment{
			Name:        fmt.Sprintf("latency_%dx%d", size, size),
			Strategies:  latencyStrategies,
			Games:       games,
			BoardSize:   size,
			Fleet:       board.StandardFleet(),
			Seed:        1,
			Goroutines:  1,
			RecordShots: out != "",
		}
		result, err := Run(ctx, exp)
		if err != nil {
			return nil, err
		}
		for _, s := range result.Summaries {
			log.Info().Msgf("%dx%d %s: %v per shot", size, size, s.Config, s.MeanDecision)
		}
		summaries = append(summaries, result.Summaries...)

		if out != "" {
			dir, err := result.Write(out, exp.Name)
			if err != nil {
				return nil, err
			}
			log.Info().Msgf("stored %s results in %s", exp.Name, dir)
		}
	}

	log.Info().Msg("completed latency experiment")
	return summaries, nil
}
