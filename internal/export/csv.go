// Package export writes the derived player table to files other tools can read.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

// Header is the CSV column order. The player columns keep the dataset's names
// so the file can be fed back to the loader.
var Header = []string{
	"PLAYER_FIRST_NAME", "PLAYER_LAST_NAME", "POSITION", "TEAM_NAME", "COUNTRY", "COLLEGE",
	"HEIGHT", "WEIGHT", "PTS", "REB", "AST", "FROM_YEAR", "TO_YEAR", "career_length",
	"DRAFT_YEAR", "DRAFT_ROUND", "DRAFT_NUMBER",
	"value_score", "draft_value_ratio", "roi_per_season", "efficiency_score", "draft_category", "quality_tier",
}

// WriteCSV writes a header and one row per derived record. Absent values are empty cells.
func WriteCSV(w io.Writer, vals []players.Valued) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range vals {
		if err := cw.Write(row(v)); err != nil {
			return fmt.Errorf("write csv row for %s: %w", v.FullName, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func row(v players.Valued) []string {
	return []string{
		v.FirstName, v.LastName, v.Position, v.Team, v.Country, v.College,
		v.Height, formatInt(v.Weight),
		formatFloat(v.Points), formatFloat(v.Rebounds), formatFloat(v.Assists),
		formatInt(v.FromYear), formatInt(v.ToYear), formatInt(v.CareerLength),
		formatInt(v.DraftYear), formatInt(v.DraftRound), formatInt(v.DraftNumber),
		strconv.FormatFloat(v.ValueScore, 'f', -1, 64),
		formatFloat(v.ROI), formatFloat(v.ROIPerSeason), formatFloat(v.Efficiency),
		v.DraftCategory, v.QualityTier,
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
