package dashboard

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/preston-bernstein/nba-draft-roi/internal/analysis"
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

const (
	pathSummary    = "/"
	pathExplorer   = "/explorer"
	pathEfficiency = "/efficiency"
)

type navLink struct {
	Path  string
	Label string
}

var navLinks = []navLink{
	{Path: pathSummary, Label: "Summary"},
	{Path: pathExplorer, Label: "Data Explorer"},
	{Path: pathEfficiency, Label: "Team Efficiency"},
}

// FilterForm carries the sidebar state: the current selection and the choices offered.
type FilterForm struct {
	YearFrom     string
	YearTo       string
	Rounds       []int
	Position     string
	Query        string
	Positions    []string
	RoundOptions []int
	MinYear      *int
	MaxYear      *int
}

// SummaryData feeds the executive summary page.
type SummaryData struct {
	Filter        FilterForm
	Summary       analysis.Summary
	TopROI        []players.Ranked
	RoundAverages map[int]float64
	Rounds        []analysis.RoundStat
	Teams         []analysis.TeamDraft
	MinTeamPicks  int
	Drafted       []players.Valued
	Distribution  analysis.Distribution
}

// ExplorerData feeds the data explorer page.
type ExplorerData struct {
	Filter    FilterForm
	Rows      []players.Valued
	Total     int
	ExportURL string
}

// EfficiencyData feeds the team draft efficiency page.
type EfficiencyData struct {
	Filter       FilterForm
	Teams        []analysis.TeamEfficiencyRow
	MinTeamPicks int
	TopN         int
	Categories   []analysis.CategoryStat
	Steals       []players.Valued
	TopValue     []players.Ranked
}

type metricItem struct {
	Label string
	Value string
}

func summaryMetrics(s analysis.Summary) []metricItem {
	return []metricItem{
		{Label: "Players", Value: count(s.TotalPlayers)},
		{Label: "ROI eligible", Value: fmt.Sprintf("%s (%s)", count(s.ROIEligible), percent(s.ROIEligibleShare))},
		{Label: "Draft years", Value: fmt.Sprintf("%s to %s", optionalInt(s.FirstDraftYear), optionalInt(s.LastDraftYear))},
		{Label: "Average ROI", Value: optionalNumber(s.AverageROI)},
		{Label: "Average value score", Value: number(s.AverageValueScore)},
		{Label: "Average career", Value: number(s.AverageCareerLength) + " yrs"},
	}
}

// efficiencyMetrics picks the leading team for each headline figure. Rows
// arrive ordered by average ROI per season, so the first row with a defined
// value leads that metric.
func efficiencyMetrics(rows []analysis.TeamEfficiencyRow) []metricItem {
	out := []metricItem{{Label: "Teams analyzed", Value: count(len(rows))}}
	best := absent
	for _, r := range rows {
		if r.AvgROIPerSeason != nil {
			best = fmt.Sprintf("%s (%s)", r.Team, number(*r.AvgROIPerSeason))
			break
		}
	}
	out = append(out, metricItem{Label: "Best ROI per season", Value: best})

	quality, gems := absent, absent
	var qualityRow, gemRow *analysis.TeamEfficiencyRow
	for i := range rows {
		r := &rows[i]
		if qualityRow == nil || r.QualityPickRate > qualityRow.QualityPickRate {
			qualityRow = r
		}
		if r.LateRoundGems > 0 && (gemRow == nil || r.LateRoundGems > gemRow.LateRoundGems) {
			gemRow = r
		}
	}
	if qualityRow != nil {
		quality = fmt.Sprintf("%s (%s)", qualityRow.Team, percent(qualityRow.QualityPickRate))
	}
	if gemRow != nil {
		gems = fmt.Sprintf("%s (%d)", gemRow.Team, gemRow.LateRoundGems)
	}
	return append(out,
		metricItem{Label: "Best quality pick rate", Value: quality},
		metricItem{Label: "Most late-round gems", Value: gems},
	)
}

// topROISeries skips entries without an ROI.
func topROISeries(rows []players.Ranked) series {
	var s series
	for _, r := range rows {
		if r.ROI == nil {
			continue
		}
		s.Labels = append(s.Labels, r.Name)
		s.Values = append(s.Values, *r.ROI)
	}
	return s
}

func roundSeries(avgs map[int]float64) series {
	rounds := make([]int, 0, len(avgs))
	for r := range avgs {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)
	var s series
	for _, r := range rounds {
		s.Labels = append(s.Labels, "Round "+strconv.Itoa(r))
		s.Values = append(s.Values, avgs[r])
	}
	return s
}

func pickPoints(rows []players.Valued) []point {
	out := make([]point, 0, len(rows))
	for _, p := range rows {
		if p.DraftNumber == nil {
			continue
		}
		out = append(out, point{X: float64(*p.DraftNumber), Y: p.ValueScore, Label: p.FullName})
	}
	return out
}

// teamROISeries charts the first n teams that have an ROI per season.
func teamROISeries(rows []analysis.TeamEfficiencyRow, n int) series {
	var s series
	for _, r := range rows {
		if r.AvgROIPerSeason == nil {
			continue
		}
		if n > 0 && len(s.Values) == n {
			break
		}
		s.Labels = append(s.Labels, r.Team)
		s.Values = append(s.Values, *r.AvgROIPerSeason)
	}
	return s
}

// gemSeries charts teams with at least one late-round gem, most gems first.
func gemSeries(rows []analysis.TeamEfficiencyRow, n int) series {
	withGems := make([]analysis.TeamEfficiencyRow, 0, len(rows))
	for _, r := range rows {
		if r.LateRoundGems > 0 {
			withGems = append(withGems, r)
		}
	}
	sort.SliceStable(withGems, func(i, j int) bool {
		return withGems[i].LateRoundGems > withGems[j].LateRoundGems
	})
	if n > 0 && len(withGems) > n {
		withGems = withGems[:n]
	}
	var s series
	for _, r := range withGems {
		s.Labels = append(s.Labels, r.Team)
		s.Values = append(s.Values, float64(r.LateRoundGems))
	}
	return s
}

func volumePoints(rows []analysis.TeamEfficiencyRow) []point {
	out := make([]point, 0, len(rows))
	for _, r := range rows {
		out = append(out, point{X: float64(r.TotalPicks), Y: r.QualityPickRate, Label: r.Team})
	}
	return out
}

func draftLabel(r players.Record) string {
	if r.DraftYear == nil || r.DraftNumber == nil {
		return "Undrafted"
	}
	return fmt.Sprintf("%d, pick %d", *r.DraftYear, *r.DraftNumber)
}

func draftYears(r analysis.TeamEfficiencyRow) string {
	if r.FirstDraftYear == nil {
		return absent
	}
	return fmt.Sprintf("%d to %d", *r.FirstDraftYear, *r.LastDraftYear)
}

func statLine(r players.Record) string {
	return fmt.Sprintf("%s / %s / %s", optionalNumber(r.Points), optionalNumber(r.Rebounds), optionalNumber(r.Assists))
}

// yearBound renders an optional year as an attribute value, empty when unknown.
func yearBound(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func containsRound(rounds []int, round int) bool {
	for _, r := range rounds {
		if r == round {
			return true
		}
	}
	return false
}

func exportURL(q url.Values) string {
	if len(q) == 0 {
		return "/api/export.csv"
	}
	return "/api/export.csv?" + q.Encode()
}
