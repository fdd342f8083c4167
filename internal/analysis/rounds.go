package analysis

import (
	"sort"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// RoundStat summarises ROI within one draft round.
type RoundStat struct {
	Round     int      `json:"round"`
	Players   int      `json:"players"`
	MeanROI   float64  `json:"meanRoi"`
	MedianROI float64  `json:"medianRoi"`
	StdDevROI *float64 `json:"stdDevRoi"`
}

// RoundBreakdown groups ROI-eligible players by draft round, ordered by mean ROI
// (highest first) and then round number.
func RoundBreakdown(vals []players.Valued) []RoundStat {
	groups := make(map[int][]float64)
	for _, v := range vals {
		if v.ROI == nil || v.DraftRound == nil {
			continue
		}
		groups[*v.DraftRound] = append(groups[*v.DraftRound], *v.ROI)
	}

	out := make([]RoundStat, 0, len(groups))
	for round, rois := range groups {
		out = append(out, RoundStat{
			Round:     round,
			Players:   len(rois),
			MeanROI:   mean(rois),
			MedianROI: median(rois),
			StdDevROI: stdDev(rois),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanROI != out[j].MeanROI {
			return out[i].MeanROI > out[j].MeanROI
		}
		return out[i].Round < out[j].Round
	})
	return out
}

// CategoryStat summarises one draft category.
type CategoryStat struct {
	Category        string   `json:"category"`
	Players         int      `json:"players"`
	AvgROIPerSeason *float64 `json:"avgRoiPerSeason"`
	AvgEfficiency   *float64 `json:"avgEfficiency"`
	AvgValue        float64  `json:"avgValue"`
}

// CategoryBreakdown aggregates players per draft category in pick order.
// Categories with no players are omitted.
func CategoryBreakdown(vals []players.Valued, categories []string) []CategoryStat {
	type acc struct {
		values, rps, eff []float64
	}
	groups := make(map[string]*acc)
	for _, v := range vals {
		g, ok := groups[v.DraftCategory]
		if !ok {
			g = &acc{}
			groups[v.DraftCategory] = g
		}
		g.values = append(g.values, v.ValueScore)
		if v.ROIPerSeason != nil {
			g.rps = append(g.rps, *v.ROIPerSeason)
		}
		if v.Efficiency != nil {
			g.eff = append(g.eff, *v.Efficiency)
		}
	}

	out := make([]CategoryStat, 0, len(groups))
	for _, name := range categories {
		g, ok := groups[name]
		if !ok {
			continue
		}
		out = append(out, CategoryStat{
			Category:        name,
			Players:         len(g.values),
			AvgROIPerSeason: optionalMean(g.rps),
			AvgEfficiency:   optionalMean(g.eff),
			AvgValue:        mean(g.values),
		})
	}
	return out
}
