// Package valuation derives value scores and draft ROI from player records
// and answers the ranking and filtering queries built on them.
package valuation

import "github.com/preston-bernstein/nba-draft-roi/internal/domain/players"

// Stat field names used in MissingStatError.
const (
	FieldPoints       = "points"
	FieldRebounds     = "rebounds"
	FieldAssists      = "assists"
	FieldCareerLength = "career_length"
)

// ValueScore returns (points + rebounds + assists) * career_length.
func ValueScore(r players.Record) (float64, error) {
	switch {
	case r.Points == nil:
		return 0, &MissingStatError{Player: r.Name(), Field: FieldPoints}
	case r.Rebounds == nil:
		return 0, &MissingStatError{Player: r.Name(), Field: FieldRebounds}
	case r.Assists == nil:
		return 0, &MissingStatError{Player: r.Name(), Field: FieldAssists}
	case r.CareerLength == nil:
		return 0, &MissingStatError{Player: r.Name(), Field: FieldCareerLength}
	}
	return (*r.Points + *r.Rebounds + *r.Assists) * float64(*r.CareerLength), nil
}

// ROI returns value_score / draft_number. ok is false when the record has no
// usable draft number; that is the "not rankable" outcome, not an error.
func ROI(r players.Record) (roi float64, ok bool, err error) {
	if !r.Drafted() {
		return 0, false, nil
	}
	value, err := ValueScore(r)
	if err != nil {
		return 0, false, err
	}
	return value / float64(*r.DraftNumber), true, nil
}

// eligibleROI is ROI collapsed to a single flag for ranking views.
func eligibleROI(r players.Record) (float64, float64, bool) {
	roi, ok, err := ROI(r)
	if err != nil || !ok {
		return 0, 0, false
	}
	value, _ := ValueScore(r)
	return roi, value, true
}
