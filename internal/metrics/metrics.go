package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	loads        int
	errors       int
	lastLoaded   int
	lastDropped  int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about dataset loads and queries,
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu      sync.Mutex
	sources map[string]*sourceStats
	queries map[string]int
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources: make(map[string]*sourceStats),
		queries: make(map[string]int),
		otel:    otel,
	}
}

// RecordDatasetLoad tracks one dataset load and its kept/dropped row counts.
func (r *Recorder) RecordDatasetLoad(source string, loaded, dropped int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.sources[source]
	if !ok {
		stats = &sourceStats{}
		r.sources[source] = stats
	}
	stats.loads++
	stats.lastDuration = duration
	if err != nil {
		stats.errors++
	} else {
		stats.lastLoaded = loaded
		stats.lastDropped = dropped
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDatasetLoad(source, loaded, dropped, duration, err)
	}
}

// RecordQuery counts a query against the derived table and the size of its result.
func (r *Recorder) RecordQuery(name string, results int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.queries[name]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuery(name, results)
	}
}

// Snapshot is a copy of the load stats for one source.
type Snapshot struct {
	Loads        int
	Errors       int
	LastLoaded   int
	LastDropped  int
	LastDuration time.Duration
}

// Snapshot returns a copy of the current stats for the source.
func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Loads:        stats.loads,
		Errors:       stats.errors,
		LastLoaded:   stats.lastLoaded,
		LastDropped:  stats.lastDropped,
		LastDuration: stats.lastDuration,
	}
}

// QueryCount returns how many times the named query ran.
func (r *Recorder) QueryCount(name string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries[name]
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}
