// Package loader reads the historical player dataset into memory.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/logging"
	"github.com/preston-bernstein/nba-draft-roi/internal/metrics"
)

// Source names accepted by New.
const (
	SourceCSV     = "csv"
	SourceFixture = "fixture"
)

// Source produces player records with every required field present.
type Source interface {
	Load(ctx context.Context) ([]players.Record, Report, error)
}

// Report summarises a load: how many rows were read, kept and dropped (by reason).
type Report struct {
	Source  string         `json:"source"`
	Rows    int            `json:"rows"`
	Loaded  int            `json:"loaded"`
	Dropped int            `json:"dropped"`
	Reasons map[string]int `json:"reasons,omitempty"`
}

func (r *Report) drop(reason string) {
	r.Dropped++
	if r.Reasons == nil {
		r.Reasons = make(map[string]int)
	}
	r.Reasons[reason]++
}

// ReasonKeys returns drop reasons in a stable order.
func (r Report) ReasonKeys() []string {
	keys := make([]string, 0, len(r.Reasons))
	for k := range r.Reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Options selects and configures a Source.
type Options struct {
	Source    string
	Path      string
	Delimiter rune
}

// New builds the Source named in opts.
func New(opts Options) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Source)) {
	case SourceCSV:
		if opts.Path == "" {
			return nil, fmt.Errorf("csv source requires a dataset path")
		}
		return NewCSVSource(opts.Path, opts.Delimiter), nil
	case SourceFixture, "":
		return NewFixtureSource(), nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", opts.Source)
	}
}

// Load runs src once, logging and recording the outcome.
func Load(ctx context.Context, src Source, logger *slog.Logger, recorder *metrics.Recorder) ([]players.Record, Report, error) {
	start := time.Now()
	records, report, err := src.Load(ctx)
	duration := time.Since(start)

	recorder.RecordDatasetLoad(report.Source, report.Loaded, report.Dropped, duration, err)
	if err != nil {
		logging.Error(logger, "dataset load failed", err, logging.FieldSource, report.Source)
		return nil, report, err
	}
	logging.Info(logger, "dataset loaded",
		logging.FieldSource, report.Source,
		logging.FieldRows, report.Rows,
		logging.FieldCount, report.Loaded,
		logging.FieldDropped, report.Dropped,
		logging.FieldDurationMS, duration.Milliseconds(),
	)
	for _, reason := range report.ReasonKeys() {
		logging.Debug(logger, "dataset rows dropped", "reason", reason, logging.FieldCount, report.Reasons[reason])
	}
	return records, report, nil
}
