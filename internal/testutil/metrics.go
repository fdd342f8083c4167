package testutil

import (
	"context"

	"github.com/preston-bernstein/nba-draft-roi/internal/metrics"
)

// NewRecorderWithShutdown returns an in-memory recorder and a no-op shutdown to simplify tests.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}
