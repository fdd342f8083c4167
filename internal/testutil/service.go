package testutil

import (
	app "github.com/preston-bernstein/nba-draft-roi/internal/app/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/loader"
	"github.com/preston-bernstein/nba-draft-roi/internal/metrics"
	"github.com/preston-bernstein/nba-draft-roi/internal/store"
)

// NewServiceWithPlayers builds a query service over an in-memory store holding vals.
func NewServiceWithPlayers(vals []players.Valued, recorder *metrics.Recorder) *app.Service {
	report := loader.Report{Source: loader.SourceFixture, Rows: len(vals), Loaded: len(vals)}
	return app.NewService(store.NewMemoryStore(vals), report, recorder)
}

// NewFixtureService builds a query service over the fixture dataset.
func NewFixtureService(recorder *metrics.Recorder) *app.Service {
	return NewServiceWithPlayers(FixtureValued(), recorder)
}
