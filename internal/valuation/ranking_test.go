package valuation

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

func TestTopROIExcludesUndrafted(t *testing.T) {
	a := record("A", 10, 5, 5, 2, players.Int(1))
	b := record("B", 20, 10, 10, 1, nil)

	got := TopROI([]players.Record{a, b}, 5, "")
	if len(got) != 1 {
		t.Fatalf("expected 1 ranked record, got %d", len(got))
	}
	if got[0].Name != "A" || got[0].ROI == nil || *got[0].ROI != 40 || got[0].ValueScore != 40 {
		t.Fatalf("unexpected ranking %+v", got[0])
	}
}

func TestTopROITieBreaks(t *testing.T) {
	// High, Zed and Adam share ROI 10; High has the larger value score.
	high := record("High", 10, 10, 0, 2, players.Int(4))
	zed := record("Zed", 5, 5, 0, 1, players.Int(1))
	adam := record("Adam", 5, 5, 0, 1, players.Int(1))
	best := record("Best", 50, 0, 0, 1, players.Int(1))

	got := TopROI([]players.Record{zed, adam, high, best}, 10, "")
	want := []string{"Best", "High", "Adam", "Zed"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
}

func TestTopROITruncatesAndFiltersPosition(t *testing.T) {
	g1 := record("G1", 10, 0, 0, 1, players.Int(1))
	g1.Position = "Guard"
	g2 := record("G2", 8, 0, 0, 1, players.Int(1))
	g2.Position = "guard"
	c1 := record("C1", 30, 0, 0, 1, players.Int(1))
	c1.Position = "Center"

	got := TopROI([]players.Record{g1, g2, c1}, 1, "GUARD")
	if len(got) != 1 || got[0].Name != "G1" {
		t.Fatalf("expected only G1, got %+v", got)
	}

	if got := TopROI([]players.Record{g1, g2, c1}, 0, ""); len(got) != 0 {
		t.Fatalf("expected empty ranking for n=0, got %d", len(got))
	}
	if got := TopROI([]players.Record{g1}, 1, "Forward"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil ranking, got %+v", got)
	}
}

func TestTopValueIncludesUndrafted(t *testing.T) {
	a := record("A", 10, 5, 5, 2, players.Int(1))
	b := record("B", 20, 10, 10, 2, nil)

	got := TopValue([]players.Record{a, b}, 5)
	if len(got) != 2 || got[0].Name != "B" || got[0].ValueScore != 80 {
		t.Fatalf("unexpected value ranking %+v", got)
	}
	if got[0].ROI != nil {
		t.Fatalf("expected absent roi for undrafted entry, got %v", *got[0].ROI)
	}
	if got[1].ROI == nil || *got[1].ROI != 40 {
		t.Fatalf("expected roi 40 for drafted entry, got %v", got[1].ROI)
	}
}

func TestAverageROIByDraftRound(t *testing.T) {
	r1a := record("R1a", 10, 0, 0, 1, players.Int(1)) // roi 10
	r1a.DraftRound = players.Int(1)
	r1b := record("R1b", 40, 0, 0, 1, players.Int(2)) // roi 20
	r1b.DraftRound = players.Int(1)
	r2 := record("R2", 5, 0, 0, 1, players.Int(1)) // roi 5
	r2.DraftRound = players.Int(2)
	r3 := record("R3", 50, 0, 0, 1, nil) // no pick: not eligible
	r3.DraftRound = players.Int(3)

	got := AverageROIByDraftRound([]players.Record{r1a, r1b, r2, r3})
	if len(got) != 2 {
		t.Fatalf("expected 2 rounds, got %v", got)
	}
	if got[1] != 15 || got[2] != 5 {
		t.Fatalf("unexpected averages %v", got)
	}
	if _, ok := got[3]; ok {
		t.Fatalf("expected round without eligible records to be omitted")
	}
}

func TestFilterByPositionNoMatch(t *testing.T) {
	r := record("A", 1, 1, 1, 1, nil)
	r.Position = "Guard"

	got, err := FilterBy([]players.Record{r}, Filter{Position: "Center"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestFilterByDraftYearsRoundsAndQuery(t *testing.T) {
	in := record("Tim", 1, 1, 1, 1, players.Int(1))
	in.LastName = "Duncan"
	in.DraftYear = players.Int(1997)
	in.DraftRound = players.Int(1)
	out := record("Kobe", 1, 1, 1, 1, players.Int(13))
	out.LastName = "Bryant"
	out.DraftYear = players.Int(1996)
	out.DraftRound = players.Int(1)
	undrafted := record("Ben", 1, 1, 1, 1, nil)
	undrafted.LastName = "Wallace"

	records := []players.Record{in, out, undrafted}

	got, err := FilterBy(records, Filter{DraftYears: &YearRange{From: 1997, To: 2000}})
	if err != nil || len(got) != 1 || got[0].LastName != "Duncan" {
		t.Fatalf("unexpected year filter result %+v (err %v)", got, err)
	}

	got, err = FilterBy(records, Filter{Rounds: []int{1}})
	if err != nil || len(got) != 2 {
		t.Fatalf("expected 2 first-rounders, got %+v (err %v)", got, err)
	}

	got, err = FilterBy(records, Filter{Query: "WALL"})
	if err != nil || len(got) != 1 || got[0].FirstName != "Ben" {
		t.Fatalf("unexpected search result %+v (err %v)", got, err)
	}
}

func TestFilterValuedKeepsDerivedFields(t *testing.T) {
	spur := record("Tim", 10, 0, 0, 2, players.Int(1))
	spur.Team = "Spurs"
	laker := record("Kobe", 10, 0, 0, 2, players.Int(13))
	laker.Team = "Lakers"
	vals, skipped := DeriveAll([]players.Record{spur, laker})
	if skipped != 0 {
		t.Fatalf("expected clean derive, skipped %d", skipped)
	}

	got, err := FilterValued(vals, Filter{Team: "spurs"})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one spur, got %+v (err %v)", got, err)
	}
	if got[0].FirstName != "Tim" || got[0].ROI == nil || *got[0].ROI != 20 {
		t.Fatalf("expected derived roi to survive filtering, got %+v", got[0])
	}

	if _, err := FilterValued(vals, Filter{Rounds: []int{-1}}); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestFilterByRejectsInvalidRange(t *testing.T) {
	_, err := FilterBy(nil, Filter{DraftYears: &YearRange{From: 2010, To: 2000}})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	_, err = FilterBy(nil, Filter{Rounds: []int{0}})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter for round 0, got %v", err)
	}
}

func TestParseYearRange(t *testing.T) {
	rng, err := ParseYearRange("", "")
	if err != nil || rng != nil {
		t.Fatalf("expected nil range, got %+v (err %v)", rng, err)
	}

	rng, err = ParseYearRange("1990", "")
	if err != nil || rng == nil || rng.From != 1990 || rng.To != maxYear {
		t.Fatalf("unexpected open range %+v (err %v)", rng, err)
	}

	if _, err := ParseYearRange("abc", "2000"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected invalid filter for non-numeric year, got %v", err)
	}
	if _, err := ParseYearRange("2005", "2001"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected invalid filter for inverted range, got %v", err)
	}
}

func TestParseRounds(t *testing.T) {
	rounds, err := ParseRounds([]string{"1,2", " 3 "})
	if err != nil || len(rounds) != 3 || rounds[2] != 3 {
		t.Fatalf("unexpected rounds %v (err %v)", rounds, err)
	}
	if _, err := ParseRounds([]string{"first"}); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected invalid filter, got %v", err)
	}
}
