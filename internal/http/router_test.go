package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/http/handlers"
	"github.com/preston-bernstein/nba-draft-roi/internal/testutil"
)

func newTestHandler() *handlers.Handler {
	return handlers.NewHandler(testutil.NewFixtureService(nil), handlers.Defaults{TopN: 5, MinTeamPicks: 1}, nil)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := NewRouter(newTestHandler(), nil)

	cases := map[string]int{
		"/health":                         http.StatusOK,
		"/ready":                          http.StatusOK,
		"/api/players":                    http.StatusOK,
		"/api/players/top-roi":            http.StatusOK,
		"/api/players/top-value":          http.StatusOK,
		"/api/rounds/average-roi":         http.StatusOK,
		"/api/rounds/breakdown":           http.StatusOK,
		"/api/teams/drafting":             http.StatusOK,
		"/api/teams/efficiency":           http.StatusOK,
		"/api/categories":                 http.StatusOK,
		"/api/summary":                    http.StatusOK,
		"/api/distribution":               http.StatusOK,
		"/api/steals":                     http.StatusOK,
		"/api/export.csv":                 http.StatusOK,
		"/api/players?round=nope":         http.StatusBadRequest,
		"/api/players/top-roi?n=-3":       http.StatusBadRequest,
		"/api/teams/drafting?min_picks=x": http.StatusBadRequest,
		"/api/players/Tim%20Duncan":       http.StatusOK,
		"/api/players/Nobody%20Here":      http.StatusNotFound,
		"/api/distribution?bins=2000000":  http.StatusBadRequest,
	}

	for path, expected := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404WithoutDashboard(t *testing.T) {
	router := NewRouter(newTestHandler(), nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}

func TestRouterDelegatesPagesToDashboard(t *testing.T) {
	var hits []string
	dash := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})
	router := NewRouter(newTestHandler(), dash)

	for _, path := range []string{"/", "/explorer", "/efficiency"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusTeapot {
			t.Fatalf("expected dashboard to serve %s, got %d", path, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	if rr.Code != http.StatusOK || len(hits) != 3 {
		t.Fatalf("expected api route to bypass dashboard, got %d (hits %v)", rr.Code, hits)
	}
}
