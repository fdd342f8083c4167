package analysis

import (
	"sort"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// Summary is the executive summary shown above the dashboard charts.
type Summary struct {
	TotalPlayers        int      `json:"totalPlayers"`
	ROIEligible         int      `json:"roiEligible"`
	ROIEligibleShare    float64  `json:"roiEligibleShare"`
	DraftYears          int      `json:"draftYears"`
	FirstDraftYear      *int     `json:"firstDraftYear"`
	LastDraftYear       *int     `json:"lastDraftYear"`
	AverageROI          *float64 `json:"averageRoi"`
	AverageCareerLength float64  `json:"averageCareerLength"`
	AverageValueScore   float64  `json:"averageValueScore"`
}

// Summarize computes headline numbers over vals.
func Summarize(vals []players.Valued) Summary {
	s := Summary{TotalPlayers: len(vals)}
	years := make(map[int]struct{})
	var rois, careers, values []float64
	for _, v := range vals {
		values = append(values, v.ValueScore)
		if v.CareerLength != nil {
			careers = append(careers, float64(*v.CareerLength))
		}
		if v.ROI != nil {
			rois = append(rois, *v.ROI)
		}
		if v.DraftYear != nil {
			years[*v.DraftYear] = struct{}{}
		}
	}
	s.ROIEligible = len(rois)
	s.ROIEligibleShare = percent(len(rois), len(vals))
	s.DraftYears = len(years)
	s.AverageROI = optionalMean(rois)
	s.AverageCareerLength = mean(careers)
	s.AverageValueScore = mean(values)

	if len(years) > 0 {
		sorted := make([]int, 0, len(years))
		for y := range years {
			sorted = append(sorted, y)
		}
		sort.Ints(sorted)
		first, last := sorted[0], sorted[len(sorted)-1]
		s.FirstDraftYear, s.LastDraftYear = &first, &last
	}
	return s
}
