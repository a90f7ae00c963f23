package experiments

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"battleship/board"
	"battleship/engine"
	"battleship/experiments/metrics"
	"battleship/meta"
	"battleship/opponent"
	"battleship/strategy"
)

// Experiment plays every strategy against the same sequence of random fleets.
// Game j of every strategy faces the fleet generated from Seed+j.
type Experiment struct {
	Name        string
	Strategies  []string // Config strings, e.g. "density:weight=length"
	Games       int      // Per strategy
	BoardSize   int
	Fleet       []board.ShipSpec
	Seed        uint64
	Goroutines  int
	RecordShots bool
}

type Result struct {
	Configs   []metrics.StrategyConfig
	Games     []metrics.GameRecord
	Shots     []metrics.ShotRecord
	Summaries []metrics.Summary
}

type gameResult struct {
	game  metrics.GameMetric
	shots []metrics.ShotMetric
}

func (e *Experiment) setDefaults() {
	if e.Name == "" {
		e.Name = "strategies"
	}
	if e.Games <= 0 {
		e.Games = meta.GAMES
	}
	if e.BoardSize <= 0 {
		e.BoardSize = meta.BOARD_SIZE
	}
	if len(e.Fleet) == 0 {
		e.Fleet = board.StandardFleet()
	}
	if e.Goroutines <= 0 {
		e.Goroutines = meta.GO_ROUTINES
	}
}

// Run plays Games games per strategy, at most Goroutines at a time. Results
// do not depend on the degree of parallelism.
func Run(ctx context.Context, exp Experiment) (*Result, error) {
	exp.setDefaults()
	if len(exp.Strategies) == 0 {
		return nil, errors.New("no strategies to compare")
	}

	configs := make([]strategy.Config, len(exp.Strategies))
	result := &Result{}
	for i, s := range exp.Strategies {
		c, err := strategy.ParseConfig(s)
		if err != nil {
			return nil, err
		}
		// Fail on bad parameters before any game starts
		if _, err := strategy.New(c, rand.New(rand.NewSource(0))); err != nil {
			return nil, errors.WithMessagef(err, "invalid strategy %q", s)
		}
		configs[i] = c
		result.Configs = append(result.Configs, metrics.StrategyConfig{ID: i + 1, Config: c.String()})
	}
	if _, err := board.NewCatalog(exp.BoardSize, exp.Fleet); err != nil {
		return nil, err
	}

	log.Info().Msgf("starting %s experiment: %d strategies, %d games each on a %dx%d board...",
		exp.Name, len(configs), exp.Games, exp.BoardSize, exp.BoardSize)

	results := make([]gameResult, len(configs)*exp.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exp.Goroutines)
	for i, c := range configs {
		for j := 0; j < exp.Games; j++ {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := runGame(exp, i, c, j)
				if err != nil {
					return errors.WithMessagef(err, "%s game %d", c, j+1)
				}
				results[i*exp.Games+j] = r
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, config := range result.Configs {
		games := make([]metrics.GameRecord, 0, exp.Games)
		for j := 0; j < exp.Games; j++ {
			r := results[i*exp.Games+j]
			id := len(result.Games) + 1
			record := metrics.GameRecord{ID: id, Strategy: config.ID, GameMetric: r.game}
			result.Games = append(result.Games, record)
			games = append(games, record)
			for _, shot := range r.shots {
				result.Shots = append(result.Shots, metrics.ShotRecord{Game: id, ShotMetric: shot})
			}
		}

		summary := metrics.Summarize(config, games)
		result.Summaries = append(result.Summaries, summary)
		log.Info().Msgf("%s: mean %.2f shots (sd %.2f, min %d, max %d) over %d games",
			config.Config, summary.MeanShots, summary.StdDevShots, summary.MinShots, summary.MaxShots, summary.Games)
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	return result, nil
}

// runGame plays game j of strategy i. Every strategy meets the same fleet but
// draws its own random choices.
func runGame(exp Experiment, i int, config strategy.Config, j int) (gameResult, error) {
	fleetSeed := exp.Seed + uint64(j)
	fleet, err := opponent.Generate(exp.BoardSize, exp.Fleet, rand.New(rand.NewSource(fleetSeed)))
	if err != nil {
		return gameResult{}, err
	}

	engineSeed := fleetSeed ^ (uint64(i+1) << 32)
	game, err := engine.NewGame(exp.BoardSize, exp.Fleet, config.Kind, engineSeed, engine.WithParams(config.Params))
	if err != nil {
		return gameResult{}, err
	}

	var collector metrics.Collector
	if exp.RecordShots {
		collector = metrics.NewCollector()
	} else {
		collector = metrics.NewSummaryCollector()
	}

	gameMetric, shotMetrics, err := engine.NewLocalEngine(game, fleet, collector).Run()
	if err != nil {
		return gameResult{}, err
	}
	log.Debug().
		Str("game", game.ID.String()).
		Str("strategy", config.String()).
		Msgf("game %d finished in %d shots", j+1, gameMetric.Shots)
	return gameResult{game: gameMetric, shots: shotMetrics}, nil
}

// Write stores the result under <root>/<name>/<timestamp> and returns that
// directory.
func (r *Result) Write(root, name string) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteStrategyConfigs(r.Configs)
	if err != nil {
		return "", fmt.Errorf("failed to store strategy configs: %w", err)
	}
	log.Info().Msg("stored strategy configs")

	err = writer.WriteGameRecords(r.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if len(r.Shots) > 0 {
		err = writer.WriteShotRecords(r.Shots)
		if err != nil {
			return "", fmt.Errorf("failed to write shot records: %w", err)
		}
		log.Info().Msg("stored shot records")
	}

	err = writer.WriteSummaries(r.Summaries)
	if err != nil {
		return "", fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Msg("stored summaries")
	return writer.Dir(), nil
}
