package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// Column names of the NBA player index export.
const (
	colFirstName    = "player_first_name"
	colLastName     = "player_last_name"
	colPosition     = "position"
	colTeam         = "team_name"
	colCountry      = "country"
	colCollege      = "college"
	colHeight       = "height"
	colWeight       = "weight"
	colPoints       = "pts"
	colRebounds     = "reb"
	colAssists      = "ast"
	colFromYear     = "from_year"
	colToYear       = "to_year"
	colCareerLength = "career_length"
	colDraftYear    = "draft_year"
	colDraftRound   = "draft_round"
	colDraftNumber  = "draft_number"
)

// Drop reasons reported for rows that fail validation.
const (
	ReasonMissingName   = "missing_name"
	ReasonInvalidStat   = "invalid_stat"
	ReasonInvalidCareer = "invalid_career_length"
	ReasonMalformedRow  = "malformed_row"
)

var requiredColumns = []string{colFirstName, colLastName, colPoints, colRebounds, colAssists}

// CSVSource loads records from a delimited file.
type CSVSource struct {
	path      string
	delimiter rune
}

// NewCSVSource constructs a CSVSource; a zero delimiter means ','.
func NewCSVSource(path string, delimiter rune) *CSVSource {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVSource{path: path, delimiter: delimiter}
}

// Load opens the file and parses it.
func (s *CSVSource) Load(ctx context.Context) ([]players.Record, Report, error) {
	report := Report{Source: SourceCSV}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, report, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Parse(ctx, f, s.delimiter)
}

// Parse reads records from r. Rows missing a required value are dropped and
// counted; a missing required column fails the whole load.
func Parse(ctx context.Context, r io.Reader, delimiter rune) ([]players.Record, Report, error) {
	report := Report{Source: SourceCSV}
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, report, errors.New("dataset is empty")
		}
		return nil, report, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(header)
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, report, fmt.Errorf("dataset missing required column %q", strings.ToUpper(name))
		}
	}
	_, hasCareer := cols[colCareerLength]
	_, hasFrom := cols[colFromYear]
	_, hasTo := cols[colToYear]
	if !hasCareer && !(hasFrom && hasTo) {
		return nil, report, errors.New("dataset needs career_length or FROM_YEAR and TO_YEAR columns")
	}

	var records []players.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		report.Rows++
		if err != nil {
			report.drop(ReasonMalformedRow)
			continue
		}
		rec, reason := parseRow(row, cols)
		if reason != "" {
			report.drop(reason)
			continue
		}
		records = append(records, rec)
	}
	report.Loaded = len(records)
	return records, report, nil
}

type columns map[string]int

func indexColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, cols columns) (players.Record, string) {
	rec := players.Record{
		FirstName: cols.get(row, colFirstName),
		LastName:  cols.get(row, colLastName),
		Position:  cols.get(row, colPosition),
		Team:      cols.get(row, colTeam),
		Country:   cols.get(row, colCountry),
		College:   cols.get(row, colCollege),
		Height:    cols.get(row, colHeight),
	}
	if rec.Name() == "" {
		return players.Record{}, ReasonMissingName
	}

	pts, ok := parseStat(cols.get(row, colPoints))
	if !ok {
		return players.Record{}, ReasonInvalidStat
	}
	reb, ok := parseStat(cols.get(row, colRebounds))
	if !ok {
		return players.Record{}, ReasonInvalidStat
	}
	ast, ok := parseStat(cols.get(row, colAssists))
	if !ok {
		return players.Record{}, ReasonInvalidStat
	}
	rec.Points, rec.Rebounds, rec.Assists = &pts, &reb, &ast

	rec.FromYear = parseOptionalInt(cols.get(row, colFromYear))
	rec.ToYear = parseOptionalInt(cols.get(row, colToYear))
	career, ok := careerLength(cols.get(row, colCareerLength), rec.FromYear, rec.ToYear)
	if !ok {
		return players.Record{}, ReasonInvalidCareer
	}
	rec.CareerLength = &career

	rec.DraftYear = parsePositiveInt(cols.get(row, colDraftYear))
	rec.DraftRound = parsePositiveInt(cols.get(row, colDraftRound))
	rec.DraftNumber = parsePositiveInt(cols.get(row, colDraftNumber))
	rec.HeightInches = HeightInches(rec.Height)
	rec.Weight = parsePositiveInt(cols.get(row, colWeight))
	return rec, ""
}

func parseStat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func careerLength(raw string, from, to *int) (int, bool) {
	if raw != "" {
		v, ok := parseWhole(raw)
		if !ok || v < 0 {
			return 0, false
		}
		return v, true
	}
	if from == nil || to == nil || *to < *from {
		return 0, false
	}
	return *to - *from, true
}

// parseWhole accepts "12" and "12.0" (pandas writes integer columns with NaNs as floats).
func parseWhole(raw string) (int, bool) {
	if v, err := strconv.Atoi(raw); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func parseOptionalInt(raw string) *int {
	v, ok := parseWhole(raw)
	if !ok {
		return nil
	}
	return &v
}

func parsePositiveInt(raw string) *int {
	v := parseOptionalInt(raw)
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

// HeightInches converts "feet-inches" (e.g. "6-10") or plain inches to inches.
func HeightInches(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if feet, inches, found := strings.Cut(raw, "-"); found {
		f, errF := strconv.Atoi(strings.TrimSpace(feet))
		i, errI := strconv.Atoi(strings.TrimSpace(inches))
		if errF != nil || errI != nil || f < 0 || i < 0 {
			return nil
		}
		total := f*12 + i
		return &total
	}
	return parsePositiveInt(raw)
}
