package requestutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected generated request id")
	}
	useFallback.Store(true)
	defer useFallback.Store(false)
	if got := NewRequestID(); got == "" {
		t.Fatalf("expected fallback request id when RNG fails")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestIntParam(t *testing.T) {
	q := url.Values{"n": {"5"}, "bad": {"x"}, "neg": {"-1"}, "zero": {"0"}}
	if got, err := IntParam(q, "n", 10); err != nil || got != 5 {
		t.Fatalf("expected 5, got %d (err %v)", got, err)
	}
	if got, err := IntParam(q, "missing", 10); err != nil || got != 10 {
		t.Fatalf("expected default, got %d (err %v)", got, err)
	}
	if got, err := IntParam(q, "zero", 10); err != nil || got != 0 {
		t.Fatalf("expected explicit zero, got %d (err %v)", got, err)
	}
	for _, key := range []string{"bad", "neg"} {
		if _, err := IntParam(q, key, 10); !errors.Is(err, valuation.ErrInvalidFilter) {
			t.Fatalf("expected ErrInvalidFilter for %s, got %v", key, err)
		}
	}
}

func TestFilter(t *testing.T) {
	q := url.Values{
		"position":        {" Guard "},
		"team":            {"Spurs"},
		"q":               {"tim"},
		"draft_year_from": {"1995"},
		"draft_year_to":   {"2005"},
		"round":           {"1,2", "2"},
	}
	f, err := Filter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Position != "Guard" || f.Team != "Spurs" || f.Query != "tim" {
		t.Fatalf("unexpected string predicates %+v", f)
	}
	if f.DraftYears == nil || f.DraftYears.From != 1995 || f.DraftYears.To != 2005 {
		t.Fatalf("unexpected year range %+v", f.DraftYears)
	}
	if len(f.Rounds) != 3 {
		t.Fatalf("expected 3 parsed rounds, got %v", f.Rounds)
	}

	empty, err := Filter(url.Values{})
	if err != nil || empty.DraftYears != nil || len(empty.Rounds) != 0 {
		t.Fatalf("expected empty filter, got %+v (err %v)", empty, err)
	}
}

func TestFilterRejectsInvalidInput(t *testing.T) {
	cases := []url.Values{
		{"draft_year_from": {"2010"}, "draft_year_to": {"2000"}},
		{"draft_year_from": {"abc"}},
		{"round": {"0"}},
		{"round": {"first"}},
	}
	for _, q := range cases {
		if _, err := Filter(q); !errors.Is(err, valuation.ErrInvalidFilter) {
			t.Fatalf("expected ErrInvalidFilter for %v, got %v", q, err)
		}
	}
}
