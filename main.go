package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battleship/board"
	"battleship/experiments"
	"battleship/meta"
)

func main() {
	games := flag.Int("games", meta.GAMES, "Number of games per strategy")
	size := flag.Int("size", meta.BOARD_SIZE, "Board dimension")
	seed := flag.Uint64("seed", 1, "Seed of the first opponent fleet")
	strategies := flag.String("strategies", "random;hunt;density", "Strategy configs separated by ';', e.g. 'density:weight=length;montecarlo:samples=500'")
	parallel := flag.Int("parallel", meta.GO_ROUTINES, "Number of games played in parallel")
	out := flag.String("out", "", "Directory to store CSV results in, nothing is stored if empty")
	shots := flag.Bool("shots", false, "Also store every shot")
	latency := flag.Bool("latency", false, "Run the decision latency experiment instead")
	verbose := flag.Bool("v", false, "Log every game")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *latency {
		if _, err := experiments.RunLatencyExperiment(ctx, *out, []int{8, 10, 12, 15}, *games); err != nil {
			log.Fatal().Err(err).Msg("latency experiment failed")
		}
		return
	}

	exp := experiments.Experiment{
		Name:        "strategies",
		Strategies:  splitStrategies(*strategies),
		Games:       *games,
		BoardSize:   *size,
		Fleet:       board.StandardFleet(),
		Seed:        *seed,
		Goroutines:  *parallel,
		RecordShots: *shots,
	}
	result, err := experiments.Run(ctx, exp)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	for _, s := range result.Summaries {
		log.Info().
			Str("strategy", s.Config).
			Int("games", s.Games).
			Float64("mean", s.MeanShots).
			Float64("stddev", s.StdDevShots).
			Int("min", s.MinShots).
			Int("max", s.MaxShots).
			Dur("decision", s.MeanDecision).
			Msg("summary")
	}

	if *out != "" {
		dir, err := result.Write(*out, exp.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to store results")
		}
		log.Info().Msgf("stored results in %s", dir)
	}
}

func splitStrategies(s string) []string {
	strategies := []string{}
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			strategies = append(strategies, part)
		}
	}
	return strategies
}
