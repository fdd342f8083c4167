package players

import "strings"

// Record is one row of the historical player dataset.
// Optional values are pointers; nil means the value is absent in the source.
type Record struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Position     string   `json:"position"`
	Team         string   `json:"team"`
	Country      string   `json:"country"`
	College      string   `json:"college"`
	Height       string   `json:"height"`
	HeightInches *int     `json:"heightInches"`
	Weight       *int     `json:"weight"`
	Points       *float64 `json:"points"`
	Rebounds     *float64 `json:"rebounds"`
	Assists      *float64 `json:"assists"`
	FromYear     *int     `json:"fromYear"`
	ToYear       *int     `json:"toYear"`
	CareerLength *int     `json:"careerLength"`
	DraftYear    *int     `json:"draftYear"`
	DraftRound   *int     `json:"draftRound"`
	DraftNumber  *int     `json:"draftNumber"`
}

// Name returns the display name ("First Last").
func (r Record) Name() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// Drafted reports whether the record carries a usable draft pick.
func (r Record) Drafted() bool {
	return r.DraftNumber != nil && *r.DraftNumber > 0
}

// Valued is a Record together with its derived metrics.
type Valued struct {
	Record
	FullName      string   `json:"name"`
	ValueScore    float64  `json:"valueScore"`
	ROI           *float64 `json:"roi"`
	ROIPerSeason  *float64 `json:"roiPerSeason"`
	Efficiency    *float64 `json:"efficiency"`
	DraftCategory string   `json:"draftCategory"`
	QualityTier   string   `json:"qualityTier"`
}

// Ranked pairs a record with the metric it was ranked by.
// ROI is nil for players without a usable draft number.
type Ranked struct {
	Record     Record   `json:"record"`
	Name       string   `json:"name"`
	ROI        *float64 `json:"roi"`
	ValueScore float64  `json:"valueScore"`
}

// Int returns a pointer to v; handy for building records in code.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
