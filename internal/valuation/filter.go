package valuation

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// YearRange is an inclusive draft year interval.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether year falls inside the range.
func (y YearRange) Contains(year int) bool {
	return year >= y.From && year <= y.To
}

// Filter holds the optional predicates applied by FilterBy. Zero values match everything.
type Filter struct {
	Position   string
	DraftYears *YearRange
	Rounds     []int
	Team       string
	Query      string
}

// Validate checks the filter parameters before any record is scanned.
func (f Filter) Validate() error {
	if f.DraftYears != nil {
		if f.DraftYears.From <= 0 || f.DraftYears.To <= 0 {
			return invalidFilter("draft years must be positive (got %d-%d)", f.DraftYears.From, f.DraftYears.To)
		}
		if f.DraftYears.From > f.DraftYears.To {
			return invalidFilter("draft year range start %d is after end %d", f.DraftYears.From, f.DraftYears.To)
		}
	}
	for _, round := range f.Rounds {
		if round <= 0 {
			return invalidFilter("draft round must be positive (got %d)", round)
		}
	}
	return nil
}

// Match reports whether r satisfies every provided predicate.
// Records without a draft year never match a year range; the same holds for rounds.
func (f Filter) Match(r players.Record) bool {
	if f.Position != "" && !strings.EqualFold(strings.TrimSpace(r.Position), strings.TrimSpace(f.Position)) {
		return false
	}
	if f.Team != "" && !strings.EqualFold(strings.TrimSpace(r.Team), strings.TrimSpace(f.Team)) {
		return false
	}
	if f.DraftYears != nil {
		if r.DraftYear == nil || !f.DraftYears.Contains(*r.DraftYear) {
			return false
		}
	}
	if len(f.Rounds) > 0 {
		if r.DraftRound == nil || !containsInt(f.Rounds, *r.DraftRound) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(r.FirstName), q) && !strings.Contains(strings.ToLower(r.LastName), q) {
			return false
		}
	}
	return true
}

// FilterBy returns the records matching every predicate, in input order.
// No match yields an empty slice and a nil error.
func FilterBy(records []players.Record, f Filter) ([]players.Record, error) {
	return filterRows(records, f, func(r players.Record) players.Record { return r })
}

// FilterValued is FilterBy over derived rows.
func FilterValued(vals []players.Valued, f Filter) ([]players.Valued, error) {
	return filterRows(vals, f, func(v players.Valued) players.Record { return v.Record })
}

func filterRows[T any](rows []T, f Filter, record func(T) players.Record) ([]T, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if f.Match(record(row)) {
			out = append(out, row)
		}
	}
	return out, nil
}

// ParseYearRange builds a range from optional query-string bounds.
// Both empty returns nil. A single bound leaves the other end open.
func ParseYearRange(from, to string) (*YearRange, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil
	}
	rng := &YearRange{From: 1, To: maxYear}
	if from != "" {
		v, err := strconv.Atoi(from)
		if err != nil {
			return nil, invalidFilter("draft year %q is not a number", from)
		}
		rng.From = v
	}
	if to != "" {
		v, err := strconv.Atoi(to)
		if err != nil {
			return nil, invalidFilter("draft year %q is not a number", to)
		}
		rng.To = v
	}
	if err := (Filter{DraftYears: rng}).Validate(); err != nil {
		return nil, err
	}
	return rng, nil
}

// ParseRounds converts round query values into ints.
func ParseRounds(values []string) ([]int, error) {
	var rounds []int
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.Atoi(part)
			if err != nil || v <= 0 {
				return nil, invalidFilter("draft round %q must be a positive integer", part)
			}
			rounds = append(rounds, v)
		}
	}
	return rounds, nil
}

const maxYear = 9999

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
