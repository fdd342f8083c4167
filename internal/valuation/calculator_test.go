package valuation

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

func record(name string, pts, reb, ast float64, career int, draft *int) players.Record {
	return players.Record{
		FirstName:    name,
		Points:       players.Float(pts),
		Rebounds:     players.Float(reb),
		Assists:      players.Float(ast),
		CareerLength: players.Int(career),
		DraftNumber:  draft,
	}
}

func TestValueScore(t *testing.T) {
	got, err := ValueScore(record("A", 10, 5, 5, 2, players.Int(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 40 {
		t.Fatalf("expected value 40, got %v", got)
	}
}

func TestValueScoreMissingStat(t *testing.T) {
	r := record("A", 10, 5, 5, 2, nil)
	r.Rebounds = nil

	_, err := ValueScore(r)
	msErr, ok := AsMissingStatError(err)
	if !ok {
		t.Fatalf("expected MissingStatError, got %v", err)
	}
	if msErr.Field != FieldRebounds || msErr.Player != "A" {
		t.Fatalf("unexpected error fields %+v", msErr)
	}
}

func TestValueScoreMissingCareerLength(t *testing.T) {
	r := record("A", 10, 5, 5, 2, nil)
	r.CareerLength = nil

	_, err := ValueScore(r)
	if msErr, ok := AsMissingStatError(err); !ok || msErr.Field != FieldCareerLength {
		t.Fatalf("expected career length error, got %v", err)
	}
}

func TestROIDefinedForDraftedRecord(t *testing.T) {
	roi, ok, err := ROI(record("A", 10, 5, 5, 2, players.Int(4)))
	if err != nil || !ok {
		t.Fatalf("expected roi, got ok=%v err=%v", ok, err)
	}
	if roi != 10 {
		t.Fatalf("expected roi 10, got %v", roi)
	}
}

func TestROIAbsentWithoutDraftNumber(t *testing.T) {
	for _, draft := range []*int{nil, players.Int(0), players.Int(-3)} {
		roi, ok, err := ROI(record("B", 20, 10, 10, 1, draft))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok || roi != 0 {
			t.Fatalf("expected absent roi for draft %v, got %v", draft, roi)
		}
	}
}

func TestROIPropagatesMissingStat(t *testing.T) {
	r := record("C", 1, 1, 1, 1, players.Int(2))
	r.Points = nil

	_, ok, err := ROI(r)
	if ok {
		t.Fatalf("expected roi to be undefined")
	}
	var msErr *MissingStatError
	if !errors.As(err, &msErr) {
		t.Fatalf("expected MissingStatError, got %v", err)
	}
}

func TestMissingStatErrorMessage(t *testing.T) {
	err := &MissingStatError{Field: FieldAssists}
	if err.Error() != `missing stat "assists"` {
		t.Fatalf("unexpected message %q", err.Error())
	}
	err.Player = "Jane Doe"
	if err.Error() != `missing stat "assists" for Jane Doe` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestDeriveComputesEnrichedFields(t *testing.T) {
	r := record("Gem", 20, 10, 10, 10, players.Int(35))
	r.LastName = "Player"

	v, err := Derive(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.FullName != "Gem Player" {
		t.Fatalf("unexpected name %q", v.FullName)
	}
	if v.ValueScore != 400 {
		t.Fatalf("expected value 400, got %v", v.ValueScore)
	}
	if v.ROI == nil || *v.ROI != 400.0/35 {
		t.Fatalf("unexpected roi %v", v.ROI)
	}
	if v.ROIPerSeason == nil || *v.ROIPerSeason != 400.0/350 {
		t.Fatalf("unexpected roi per season %v", v.ROIPerSeason)
	}
	if v.Efficiency == nil || *v.Efficiency != 400.0/65 {
		t.Fatalf("unexpected efficiency %v", v.Efficiency)
	}
	if v.DraftCategory != CategorySecondRound {
		t.Fatalf("unexpected category %s", v.DraftCategory)
	}
	if v.QualityTier != TierElite {
		t.Fatalf("unexpected tier %s", v.QualityTier)
	}
}

func TestDeriveUndraftedLeavesROIFieldsAbsent(t *testing.T) {
	v, err := Derive(record("U", 1, 1, 1, 0, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ROI != nil || v.ROIPerSeason != nil || v.Efficiency != nil {
		t.Fatalf("expected absent roi fields, got %+v", v)
	}
	if v.DraftCategory != CategoryUndrafted || v.QualityTier != TierLimited {
		t.Fatalf("unexpected buckets %s / %s", v.DraftCategory, v.QualityTier)
	}
}

func TestEfficiencyUndefinedBeyondPickHundred(t *testing.T) {
	if _, ok := Efficiency(record("Late", 5, 5, 5, 5, players.Int(100))); ok {
		t.Fatalf("expected efficiency to be undefined at pick 100")
	}
}

func TestDeriveAllSkipsIncompleteRecords(t *testing.T) {
	bad := record("Bad", 1, 1, 1, 1, nil)
	bad.Assists = nil
	vals, skipped := DeriveAll([]players.Record{record("Good", 1, 1, 1, 1, nil), bad})
	if len(vals) != 1 || skipped != 1 {
		t.Fatalf("expected 1 derived and 1 skipped, got %d/%d", len(vals), skipped)
	}
	if got := Records(vals); len(got) != 1 || got[0].FirstName != "Good" {
		t.Fatalf("unexpected records %+v", got)
	}
}

func TestDraftCategoryBoundaries(t *testing.T) {
	cases := []struct {
		pick *int
		want string
	}{
		{nil, CategoryUndrafted},
		{players.Int(1), CategoryTopLottery},
		{players.Int(5), CategoryTopLottery},
		{players.Int(6), CategoryLottery},
		{players.Int(14), CategoryLottery},
		{players.Int(15), CategoryFirstRound},
		{players.Int(30), CategoryFirstRound},
		{players.Int(31), CategorySecondRound},
	}
	for _, tc := range cases {
		if got := DraftCategory(tc.pick); got != tc.want {
			t.Fatalf("pick %v: expected %s, got %s", tc.pick, tc.want, got)
		}
	}
}
