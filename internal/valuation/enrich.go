package valuation

import "github.com/preston-bernstein/nba-draft-roi/internal/domain/players"

// Draft categories bucket a pick by its overall number.
const (
	CategoryUndrafted    = "Undrafted"
	CategoryTopLottery   = "Lottery (1-5)"
	CategoryLottery      = "Lottery (6-14)"
	CategoryFirstRound   = "First Round (15-30)"
	CategorySecondRound  = "Second Round (31+)"
	expectedValueCeiling = 100
)

// Quality tiers bucket a career by value score.
const (
	TierElite   = "Elite (200+)"
	TierHigh    = "High Quality (100-199)"
	TierSolid   = "Solid Contributor (50-99)"
	TierRole    = "Role Player (20-49)"
	TierLimited = "Limited Impact (0-19)"
)

// Categories lists draft categories from earliest pick to undrafted.
var Categories = []string{CategoryTopLottery, CategoryLottery, CategoryFirstRound, CategorySecondRound, CategoryUndrafted}

// DraftCategory buckets a draft number.
func DraftCategory(draftNumber *int) string {
	switch {
	case draftNumber == nil || *draftNumber <= 0:
		return CategoryUndrafted
	case *draftNumber <= 5:
		return CategoryTopLottery
	case *draftNumber <= 14:
		return CategoryLottery
	case *draftNumber <= 30:
		return CategoryFirstRound
	default:
		return CategorySecondRound
	}
}

// QualityTier buckets a value score.
func QualityTier(value float64) string {
	switch {
	case value >= 200:
		return TierElite
	case value >= 100:
		return TierHigh
	case value >= 50:
		return TierSolid
	case value >= 20:
		return TierRole
	default:
		return TierLimited
	}
}

// ROIPerSeason is value_score / (career_length * draft_number).
func ROIPerSeason(r players.Record) (float64, bool) {
	if !r.Drafted() || r.CareerLength == nil || *r.CareerLength <= 0 {
		return 0, false
	}
	value, err := ValueScore(r)
	if err != nil {
		return 0, false
	}
	return value / float64(*r.CareerLength*(*r.DraftNumber)), true
}

// Efficiency is value_score against the expectation of the pick (100 - draft_number).
func Efficiency(r players.Record) (float64, bool) {
	if !r.Drafted() {
		return 0, false
	}
	expected := expectedValueCeiling - *r.DraftNumber
	if expected <= 0 {
		return 0, false
	}
	value, err := ValueScore(r)
	if err != nil {
		return 0, false
	}
	return value / float64(expected), true
}

// Derive computes every derived field for a record.
func Derive(r players.Record) (players.Valued, error) {
	value, err := ValueScore(r)
	if err != nil {
		return players.Valued{}, err
	}
	v := players.Valued{
		Record:        r,
		FullName:      r.Name(),
		ValueScore:    value,
		DraftCategory: DraftCategory(r.DraftNumber),
		QualityTier:   QualityTier(value),
	}
	if roi, ok, _ := ROI(r); ok {
		v.ROI = players.Float(roi)
	}
	if rps, ok := ROIPerSeason(r); ok {
		v.ROIPerSeason = players.Float(rps)
	}
	if eff, ok := Efficiency(r); ok {
		v.Efficiency = players.Float(eff)
	}
	return v, nil
}

// DeriveAll derives every record, skipping (and counting) those missing a stat.
func DeriveAll(records []players.Record) ([]players.Valued, int) {
	out := make([]players.Valued, 0, len(records))
	skipped := 0
	for _, r := range records {
		v, err := Derive(r)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}

// Records strips derived fields.
func Records(vals []players.Valued) []players.Record {
	out := make([]players.Record, len(vals))
	for i, v := range vals {
		out[i] = v.Record
	}
	return out
}
