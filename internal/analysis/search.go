package analysis

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// Late-round steal thresholds.
const (
	StealMinimumPick = 30
	StealValue       = 150
)

// LateRoundSteals lists players picked after StealMinimumPick whose value score
// reached StealValue, highest value first. n <= 0 returns every steal.
func LateRoundSteals(vals []players.Valued, n int) []players.Valued {
	out := make([]players.Valued, 0)
	for _, v := range vals {
		if v.Drafted() && *v.DraftNumber > StealMinimumPick && v.ValueScore >= StealValue {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ValueScore != out[j].ValueScore {
			return out[i].ValueScore > out[j].ValueScore
		}
		return out[i].FullName < out[j].FullName
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Search returns players whose name contains query (case-insensitive), in table
// order. An empty query matches everyone; limit <= 0 means no limit.
func Search(vals []players.Valued, query string, limit int) []players.Valued {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]players.Valued, 0)
	for _, v := range vals {
		if q != "" && !strings.Contains(strings.ToLower(v.FullName), q) {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
