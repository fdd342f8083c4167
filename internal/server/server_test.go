package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/preston-bernstein/nba-draft-roi/internal/config"
	"github.com/preston-bernstein/nba-draft-roi/internal/testutil"
)

func fixtureConfig() config.Config {
	return config.Config{
		Port:    "0",
		Dataset: config.DatasetConfig{Source: "fixture"},
		Query:   config.QueryConfig{TopN: 3, MinTeamPicks: 1, ExplorerLimit: 10, HistogramBins: 5},
		Metrics: config.MetricsConfig{Enabled: false},
	}
}

func TestNewServesAPIAndDashboard(t *testing.T) {
	srv, err := New(context.Background(), fixtureConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	router := srv.Handler()

	for path, want := range map[string]int{
		"/health":              http.StatusOK,
		"/ready":               http.StatusOK,
		"/api/players/top-roi": http.StatusOK,
		"/":                    http.StatusOK,
		"/explorer":            http.StatusOK,
		"/missing":             http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: expected middleware to set a request id", path)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/top-roi", nil))
	var top struct {
		Players []struct {
			Name string `json:"name"`
		} `json:"players"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&top); err != nil {
		t.Fatalf("failed to decode top roi response: %v", err)
	}
	if len(top.Players) != 3 || top.Players[0].Name != "Tim Duncan" {
		t.Fatalf("unexpected top roi %+v", top.Players)
	}
}

func TestNewLoadsCSVDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	data := "PLAYER_FIRST_NAME;PLAYER_LAST_NAME;PTS;REB;AST;FROM_YEAR;TO_YEAR;DRAFT_NUMBER\nA;One;10;5;5;2000;2002;1\nB;Two;20;10;10;2000;2001;\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	cfg := fixtureConfig()
	cfg.Dataset = config.DatasetConfig{Source: "csv", Path: path, Delimiter: ";"}
	srv, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := srv.service.LoadReport(); got.Loaded != 2 {
		t.Fatalf("expected 2 loaded records, got %+v", got)
	}
}

func TestNewFailsOnMissingDataset(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Dataset = config.DatasetConfig{Source: "csv", Path: filepath.Join(t.TempDir(), "missing.csv")}

	if _, err := New(context.Background(), cfg, nil); err == nil || !strings.Contains(err.Error(), "load dataset") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestNewRejectsBadDelimiter(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Dataset.Delimiter = "::"

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected delimiter error")
	}
}

func TestGracefulShutdownCallsShutdown(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, testutil.NewFixtureService(nil), httpSrv)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &testutil.StubHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Block:      make(chan struct{}),
	}

	srv := newServerWithDeps(config.Config{ShutdownTimeout: 5 * time.Millisecond}, nil, nil, blocking)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls())
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownLogsShutdownErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	httpSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("stuck")}
	metricsSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("metrics stuck")}

	srv := newServerWithDeps(config.Config{}, logger, nil, httpSrv)
	srv.metricsServer = metricsSrv
	srv.metricsStop = func(context.Context) error { return errors.New("flush failed") }
	srv.gracefulShutdown()

	for _, want := range []string{"graceful shutdown failed", "metrics server shutdown failed", "metrics shutdown failed", "shutdown complete"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in logs, got %q", want, buf.String())
		}
	}
}

func TestShutdownTimeoutDefaults(t *testing.T) {
	if got := newServerWithDeps(config.Config{}, nil, nil, nil).shutdownTimeout(); got != defaultShutdownTimeout {
		t.Fatalf("expected default timeout, got %s", got)
	}
	if got := newServerWithDeps(config.Config{ShutdownTimeout: time.Second}, nil, nil, nil).shutdownTimeout(); got != time.Second {
		t.Fatalf("expected configured timeout, got %s", got)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, nil, testutil.NewFailingHTTPServer())

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := testutil.NewClosedHTTPServer()
	srv := newServerWithDeps(config.Config{}, nil, nil, httpSrv)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}
	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected shutdown on cancel, got %d", httpSrv.ShutdownCalls())
	}
}
