package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteStrategyConfigs(configs []StrategyConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Config,
		})
	}
	return w.write("strategy_configs.csv", []string{"id", "config"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Strategy),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.BoardSize),
			strconv.Itoa(record.Shots),
			strconv.Itoa(record.Hits),
			strconv.Itoa(record.ShipsSunk),
			record.DecisionTime.String(),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	header := []string{"id", "strategy", "seed", "board_size", "shots", "hits", "ships_sunk", "decision_time", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteShotRecords(records []ShotRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Target.Row),
			strconv.Itoa(record.Target.Col),
			record.Outcome.String(),
			strconv.FormatBool(record.Sunk),
			record.Decision.String(),
		})
	}
	header := []string{"game", "step", "row", "col", "outcome", "sunk", "decision"}
	return w.write("shot_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Strategy),
			s.Config,
			strconv.Itoa(s.Games),
			strconv.FormatFloat(s.MeanShots, 'f', 2, 64),
			strconv.FormatFloat(s.StdDevShots, 'f', 2, 64),
			strconv.Itoa(s.MinShots),
			strconv.Itoa(s.MaxShots),
			s.MeanDecision.String(),
		})
	}
	header := []string{"strategy", "config", "games", "mean_shots", "stddev_shots", "min_shots", "max_shots", "mean_decision"}
	return w.write("summary.csv", header, rows)
}
