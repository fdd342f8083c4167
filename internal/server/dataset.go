package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-draft-roi/internal/config"
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/loader"
	"github.com/preston-bernstein/nba-draft-roi/internal/logging"
	"github.com/preston-bernstein/nba-draft-roi/internal/metrics"
	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

// LoadDataset builds the configured source, loads it once and derives the
// player table.
func LoadDataset(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger, recorder *metrics.Recorder) ([]players.Valued, loader.Report, error) {
	delim, err := cfg.DelimiterRune()
	if err != nil {
		return nil, loader.Report{}, err
	}
	src, err := loader.New(loader.Options{Source: cfg.Source, Path: cfg.Path, Delimiter: delim})
	if err != nil {
		return nil, loader.Report{}, err
	}
	records, report, err := loader.Load(ctx, src, logger, recorder)
	if err != nil {
		return nil, report, fmt.Errorf("load dataset: %w", err)
	}

	vals, skipped := valuation.DeriveAll(records)
	if skipped > 0 {
		logging.Warn(logger, "records skipped during valuation", logging.FieldDropped, skipped)
	}
	return vals, report, nil
}
