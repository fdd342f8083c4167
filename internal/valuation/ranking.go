package valuation

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// TopROI ranks ROI-eligible records (optionally restricted to position) by ROI,
// breaking ties by higher value score and then name. It returns at most n entries.
func TopROI(records []players.Record, n int, position string) []players.Ranked {
	if n <= 0 {
		return []players.Ranked{}
	}
	ranked := make([]players.Ranked, 0, len(records))
	for _, r := range records {
		if position != "" && !strings.EqualFold(strings.TrimSpace(r.Position), strings.TrimSpace(position)) {
			continue
		}
		roi, value, ok := eligibleROI(r)
		if !ok {
			continue
		}
		ranked = append(ranked, players.Ranked{Record: r, Name: r.Name(), ROI: players.Float(roi), ValueScore: value})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if *a.ROI != *b.ROI {
			return *a.ROI > *b.ROI
		}
		if a.ValueScore != b.ValueScore {
			return a.ValueScore > b.ValueScore
		}
		return a.Name < b.Name
	})
	return truncate(ranked, n)
}

// TopValue ranks every record with a computable value score, drafted or not.
// ROI is left nil for entries without a usable draft number.
func TopValue(records []players.Record, n int) []players.Ranked {
	if n <= 0 {
		return []players.Ranked{}
	}
	ranked := make([]players.Ranked, 0, len(records))
	for _, r := range records {
		value, err := ValueScore(r)
		if err != nil {
			continue
		}
		entry := players.Ranked{Record: r, Name: r.Name(), ValueScore: value}
		if roi, ok, err := ROI(r); err == nil && ok {
			entry.ROI = players.Float(roi)
		}
		ranked = append(ranked, entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ValueScore != b.ValueScore {
			return a.ValueScore > b.ValueScore
		}
		return a.Name < b.Name
	})
	return truncate(ranked, n)
}

// AverageROIByDraftRound averages ROI per draft round over ROI-eligible records.
// Rounds without an eligible record are absent from the result.
func AverageROIByDraftRound(records []players.Record) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range records {
		if r.DraftRound == nil {
			continue
		}
		roi, _, ok := eligibleROI(r)
		if !ok {
			continue
		}
		sums[*r.DraftRound] += roi
		counts[*r.DraftRound]++
	}
	out := make(map[int]float64, len(sums))
	for round, sum := range sums {
		out[round] = sum / float64(counts[round])
	}
	return out
}

func truncate(ranked []players.Ranked, n int) []players.Ranked {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
