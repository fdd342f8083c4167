package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/logging"
	"github.com/preston-bernstein/nba-draft-roi/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	logger, _ := testutil.NewBufferLogger()
	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusBadRequest, "bad round", logger)
	}), req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["requestId"] != "abc123" || body["error"] != "bad round" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestWriteErrorOmitsEmptyRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusTeapot, "boom", nil)
	if bytes.Contains(rr.Body.Bytes(), []byte("requestId")) {
		t.Fatalf("expected no requestId key, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestLoggerFromContextPrefersRequestLogger(t *testing.T) {
	fallback, _ := testutil.NewBufferLogger()
	scoped, _ := testutil.NewBufferLogger()

	if got := loggerFromContext(nil, fallback); got != fallback {
		t.Fatalf("expected fallback for nil request")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := loggerFromContext(req, fallback); got != fallback {
		t.Fatalf("expected fallback without context logger")
	}
	req = req.WithContext(logging.WithLogger(context.Background(), scoped))
	if got := loggerFromContext(req, fallback); got != scoped {
		t.Fatalf("expected request scoped logger")
	}
}
