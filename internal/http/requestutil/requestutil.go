// Package requestutil holds request parsing shared by the API and dashboard handlers.
package requestutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
var useFallback atomic.Bool

// SanitizeRequestID validates the incoming request ID header and generates a new one when invalid.
func SanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID generates a random request ID with a time-based fallback.
func NewRequestID() string {
	var b [8]byte
	if !useFallback.Load() {
		if _, err := rand.Read(b[:]); err == nil {
			return hex.EncodeToString(b[:])
		}
	}
	return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000000000")))
}

// ClientIP extracts the client IP from X-Forwarded-For or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
		return forwarded
	}
	return r.RemoteAddr
}

// IntParam reads a non-negative integer query parameter, returning def when absent.
func IntParam(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer (got %q)", valuation.ErrInvalidFilter, key, raw)
	}
	return v, nil
}

// Filter builds a valuation filter from the shared query parameters:
// position, team, q, draft_year_from, draft_year_to and round (repeatable or comma-separated).
func Filter(q url.Values) (valuation.Filter, error) {
	years, err := valuation.ParseYearRange(q.Get("draft_year_from"), q.Get("draft_year_to"))
	if err != nil {
		return valuation.Filter{}, err
	}
	rounds, err := valuation.ParseRounds(q["round"])
	if err != nil {
		return valuation.Filter{}, err
	}
	f := valuation.Filter{
		Position:   strings.TrimSpace(q.Get("position")),
		Team:       strings.TrimSpace(q.Get("team")),
		Query:      strings.TrimSpace(q.Get("q")),
		DraftYears: years,
		Rounds:     rounds,
	}
	return f, f.Validate()
}
