package analysis

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// Thresholds used by the team efficiency table.
const (
	QualityValue   = 50
	EliteValue     = 200
	GemValue       = 100
	GemMinimumPick = 15
)

// TeamDraft is one row of the team drafting table.
type TeamDraft struct {
	Team             string  `json:"team"`
	Players          int     `json:"players"`
	AvgROI           float64 `json:"avgRoi"`
	MedianROI        float64 `json:"medianRoi"`
	TotalROI         float64 `json:"totalRoi"`
	AvgValue         float64 `json:"avgValue"`
	AvgDraftPosition float64 `json:"avgDraftPosition"`
}

// TeamDrafting ranks teams with at least minPicks ROI-eligible players by average ROI.
func TeamDrafting(vals []players.Valued, minPicks int) []TeamDraft {
	type acc struct {
		rois, values, picks []float64
	}
	groups := make(map[string]*acc)
	for _, v := range vals {
		team := strings.TrimSpace(v.Team)
		if v.ROI == nil || team == "" {
			continue
		}
		g, ok := groups[team]
		if !ok {
			g = &acc{}
			groups[team] = g
		}
		g.rois = append(g.rois, *v.ROI)
		g.values = append(g.values, v.ValueScore)
		g.picks = append(g.picks, float64(*v.DraftNumber))
	}

	out := make([]TeamDraft, 0, len(groups))
	for team, g := range groups {
		if len(g.rois) < minPicks {
			continue
		}
		out = append(out, TeamDraft{
			Team:             team,
			Players:          len(g.rois),
			AvgROI:           mean(g.rois),
			MedianROI:        median(g.rois),
			TotalROI:         sum(g.rois),
			AvgValue:         mean(g.values),
			AvgDraftPosition: mean(g.picks),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgROI != out[j].AvgROI {
			return out[i].AvgROI > out[j].AvgROI
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// TeamEfficiencyRow is one row of the team draft efficiency table.
type TeamEfficiencyRow struct {
	Team               string   `json:"team"`
	TotalPicks         int      `json:"totalPicks"`
	AvgValue           float64  `json:"avgValue"`
	TotalValue         float64  `json:"totalValue"`
	ValueStdDev        *float64 `json:"valueStdDev"`
	AvgROIPerSeason    *float64 `json:"avgRoiPerSeason"`
	MedianROIPerSeason *float64 `json:"medianRoiPerSeason"`
	AvgEfficiency      *float64 `json:"avgEfficiency"`
	MedianEfficiency   *float64 `json:"medianEfficiency"`
	AvgCareerLength    float64  `json:"avgCareerLength"`
	AvgDraftPosition   float64  `json:"avgDraftPosition"`
	FirstDraftYear     *int     `json:"firstDraftYear"`
	LastDraftYear      *int     `json:"lastDraftYear"`
	DraftSpanYears     int      `json:"draftSpanYears"`
	QualityPicks       int      `json:"qualityPicks"`
	ElitePicks         int      `json:"elitePicks"`
	QualityPickRate    float64  `json:"qualityPickRate"`
	ElitePickRate      float64  `json:"elitePickRate"`
	LateRoundGems      int      `json:"lateRoundGems"`
}

// TeamEfficiency aggregates drafted players per team. Teams with fewer than
// minPicks picks are left out. Rows are ordered by average ROI per season; teams
// without any defined ROI per season sort last.
func TeamEfficiency(vals []players.Valued, minPicks int) []TeamEfficiencyRow {
	type acc struct {
		row                 TeamEfficiencyRow
		values, rps, eff    []float64
		careers, picks      []float64
		firstYear, lastYear int
	}
	groups := make(map[string]*acc)
	for _, v := range vals {
		team := strings.TrimSpace(v.Team)
		if !v.Drafted() || team == "" {
			continue
		}
		g, ok := groups[team]
		if !ok {
			g = &acc{row: TeamEfficiencyRow{Team: team}}
			groups[team] = g
		}
		g.row.TotalPicks++
		g.values = append(g.values, v.ValueScore)
		if v.ROIPerSeason != nil {
			g.rps = append(g.rps, *v.ROIPerSeason)
		}
		if v.Efficiency != nil {
			g.eff = append(g.eff, *v.Efficiency)
		}
		if v.CareerLength != nil {
			g.careers = append(g.careers, float64(*v.CareerLength))
		}
		g.picks = append(g.picks, float64(*v.DraftNumber))
		if v.DraftYear != nil {
			if g.firstYear == 0 || *v.DraftYear < g.firstYear {
				g.firstYear = *v.DraftYear
			}
			if *v.DraftYear > g.lastYear {
				g.lastYear = *v.DraftYear
			}
		}
		if v.ValueScore >= QualityValue {
			g.row.QualityPicks++
		}
		if v.ValueScore >= EliteValue {
			g.row.ElitePicks++
		}
		if *v.DraftNumber > GemMinimumPick && v.ValueScore >= GemValue {
			g.row.LateRoundGems++
		}
	}

	out := make([]TeamEfficiencyRow, 0, len(groups))
	for _, g := range groups {
		if g.row.TotalPicks < minPicks {
			continue
		}
		row := g.row
		row.AvgValue = mean(g.values)
		row.TotalValue = sum(g.values)
		row.ValueStdDev = stdDev(g.values)
		row.AvgROIPerSeason = optionalMean(g.rps)
		row.MedianROIPerSeason = optionalMedian(g.rps)
		row.AvgEfficiency = optionalMean(g.eff)
		row.MedianEfficiency = optionalMedian(g.eff)
		row.AvgCareerLength = mean(g.careers)
		row.AvgDraftPosition = mean(g.picks)
		if g.firstYear > 0 {
			first, last := g.firstYear, g.lastYear
			row.FirstDraftYear = &first
			row.LastDraftYear = &last
			row.DraftSpanYears = last - first + 1
		}
		row.QualityPickRate = percent(row.QualityPicks, row.TotalPicks)
		row.ElitePickRate = percent(row.ElitePicks, row.TotalPicks)
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].AvgROIPerSeason, out[j].AvgROIPerSeason
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && *a != *b:
			return *a > *b
		}
		return out[i].Team < out[j].Team
	})
	return out
}
