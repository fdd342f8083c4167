package loader

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/metrics"
)

const sampleCSV = `PLAYER_FIRST_NAME,PLAYER_LAST_NAME,POSITION,TEAM_NAME,COUNTRY,HEIGHT,WEIGHT,PTS,REB,AST,FROM_YEAR,TO_YEAR,DRAFT_YEAR,DRAFT_ROUND,DRAFT_NUMBER
Tim,Duncan,Forward-Center,Spurs,USA,6-11,250,19.0,10.8,3.0,1997,2016,1997,1,1
Ben,Wallace,Center,Pistons,USA,6-9,240,5.7,9.6,1.3,1996,2012,,,Undrafted
Nick,Nobody,Guard,Hawks,USA,6-2,190,,1.0,1.0,2001,2002,2001,2,45
,,Guard,Hawks,USA,6-2,190,1.0,1.0,1.0,2001,2002,2001,2,45
Back,Wards,Guard,Hawks,USA,6-2,190,1.0,1.0,1.0,2010,2002,2001,2,45
Neg,Stat,Guard,Hawks,USA,6-2,190,-1,1.0,1.0,2001,2002,2001,2,45
Zero,Pick,Guard,Hawks,USA,6-2,190,1.0,1.0,1.0,2001,2003,2001,0,0
`

func TestParseKeepsCompleteRowsAndCountsDrops(t *testing.T) {
	records, report, err := Parse(context.Background(), strings.NewReader(sampleCSV), ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Rows != 7 || report.Loaded != 3 || report.Dropped != 4 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Reasons[ReasonInvalidStat] != 2 || report.Reasons[ReasonMissingName] != 1 || report.Reasons[ReasonInvalidCareer] != 1 {
		t.Fatalf("unexpected drop reasons %+v", report.Reasons)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	duncan := records[0]
	if duncan.Name() != "Tim Duncan" || *duncan.CareerLength != 19 || *duncan.DraftNumber != 1 {
		t.Fatalf("unexpected first record %+v", duncan)
	}
	if duncan.HeightInches == nil || *duncan.HeightInches != 83 {
		t.Fatalf("expected 83 inches, got %v", duncan.HeightInches)
	}
	if duncan.Weight == nil || *duncan.Weight != 250 {
		t.Fatalf("expected weight 250, got %v", duncan.Weight)
	}

	wallace := records[1]
	if wallace.DraftNumber != nil || wallace.DraftRound != nil || wallace.DraftYear != nil {
		t.Fatalf("expected undrafted player to have absent draft fields, got %+v", wallace)
	}

	zero := records[2]
	if zero.DraftNumber != nil || zero.DraftRound != nil {
		t.Fatalf("expected zero draft values to be absent, got %+v", zero)
	}
}

func TestParsePrefersCareerLengthColumn(t *testing.T) {
	data := "player_first_name;player_last_name;pts;reb;ast;career_length;draft_number\nA;B;1;2;3;7.0;12.0\n"

	records, report, err := Parse(context.Background(), strings.NewReader(data), ';')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Loaded != 1 {
		t.Fatalf("expected 1 loaded record, got %+v", report)
	}
	if *records[0].CareerLength != 7 || *records[0].DraftNumber != 12 {
		t.Fatalf("unexpected record %+v", records[0])
	}
}

func TestParseMissingRequiredColumnFails(t *testing.T) {
	data := "PLAYER_FIRST_NAME,PLAYER_LAST_NAME,PTS,REB,FROM_YEAR,TO_YEAR\nA,B,1,2,2000,2001\n"
	if _, _, err := Parse(context.Background(), strings.NewReader(data), ','); err == nil || !strings.Contains(err.Error(), "AST") {
		t.Fatalf("expected missing AST column error, got %v", err)
	}
}

func TestParseMissingCareerColumnsFails(t *testing.T) {
	data := "PLAYER_FIRST_NAME,PLAYER_LAST_NAME,PTS,REB,AST\nA,B,1,2,3\n"
	if _, _, err := Parse(context.Background(), strings.NewReader(data), ','); err == nil {
		t.Fatalf("expected error when career length cannot be derived")
	}
}

func TestParseEmptyInputFails(t *testing.T) {
	if _, _, err := Parse(context.Background(), strings.NewReader(""), ','); err == nil {
		t.Fatalf("expected error for empty dataset")
	}
}

func TestParseHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Parse(ctx, strings.NewReader(sampleCSV), ','); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestHeightInches(t *testing.T) {
	cases := map[string]int{"6-10": 82, "7-0": 84, "80": 80}
	for raw, want := range cases {
		got := HeightInches(raw)
		if got == nil || *got != want {
			t.Fatalf("height %q: expected %d, got %v", raw, want, got)
		}
	}
	for _, raw := range []string{"", "tall", "6-x"} {
		if got := HeightInches(raw); got != nil {
			t.Fatalf("height %q: expected nil, got %d", raw, *got)
		}
	}
}

func TestCSVSourceLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NBAStats.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	records, report, err := NewCSVSource(path, 0).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 || report.Source != SourceCSV {
		t.Fatalf("unexpected load %d records, report %+v", len(records), report)
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, _, err := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), ',').Load(context.Background())
	if err == nil || !os.IsNotExist(unwrapAll(err)) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNewSelectsSource(t *testing.T) {
	src, err := New(Options{Source: "fixture"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*FixtureSource); !ok {
		t.Fatalf("expected fixture source, got %T", src)
	}

	src, err = New(Options{Source: "CSV", Path: "data.csv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*CSVSource); !ok {
		t.Fatalf("expected csv source, got %T", src)
	}

	if _, err := New(Options{Source: "csv"}); err == nil {
		t.Fatalf("expected error for csv without path")
	}
	if _, err := New(Options{Source: "parquet"}); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestFixtureSourceIsDeterministic(t *testing.T) {
	first, report, err := NewFixtureSource().Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := FixtureRecords()
	if len(first) != len(second) || report.Loaded != len(first) || report.Dropped != 0 {
		t.Fatalf("unexpected fixture load %d/%d, report %+v", len(first), len(second), report)
	}
	for i := range first {
		if first[i].Name() != second[i].Name() {
			t.Fatalf("fixture order changed at %d", i)
		}
	}
}

func TestLoadLogsAndRecordsMetrics(t *testing.T) {
	logger, buf := bufferLogger()
	rec := metrics.NewRecorder()

	records, report, err := Load(context.Background(), NewFixtureSource(), logger, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != report.Loaded {
		t.Fatalf("expected %d records, got %d", report.Loaded, len(records))
	}
	if snap := rec.Snapshot(SourceFixture); snap.Loads != 1 || snap.LastLoaded != len(records) {
		t.Fatalf("unexpected metrics snapshot %+v", snap)
	}
	if !strings.Contains(buf.String(), "dataset loaded") {
		t.Fatalf("expected load log line, got %q", buf.String())
	}
}

func TestLoadReportsErrors(t *testing.T) {
	logger, buf := bufferLogger()
	rec := metrics.NewRecorder()
	src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), ',')

	if _, _, err := Load(context.Background(), src, logger, rec); err == nil {
		t.Fatalf("expected error")
	}
	if snap := rec.Snapshot(SourceCSV); snap.Errors != 1 {
		t.Fatalf("expected recorded error, got %+v", snap)
	}
	if !strings.Contains(buf.String(), "dataset load failed") {
		t.Fatalf("expected failure log, got %q", buf.String())
	}
}

func TestReasonKeysSorted(t *testing.T) {
	r := Report{}
	r.drop("b")
	r.drop("a")
	r.drop("b")
	keys := r.ReasonKeys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" || r.Dropped != 3 {
		t.Fatalf("unexpected keys %v (dropped %d)", keys, r.Dropped)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
