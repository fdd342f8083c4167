package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	// registers the "sqlite" driver
	_ "github.com/glebarez/go-sqlite"

	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
)

var schema = []string{`
CREATE TABLE player_values (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    position TEXT,
    team TEXT,
    points REAL NOT NULL,
    rebounds REAL NOT NULL,
    assists REAL NOT NULL,
    career_length INTEGER NOT NULL,
    draft_year INTEGER,
    draft_round INTEGER,
    draft_number INTEGER,
    value_score REAL NOT NULL,
    roi REAL,
    roi_per_season REAL,
    efficiency REAL,
    draft_category TEXT NOT NULL,
    quality_tier TEXT NOT NULL
)`, `
CREATE TABLE round_roi (
    draft_round INTEGER PRIMARY KEY,
    average_roi REAL NOT NULL
)`,
}

const insertPlayer = `
INSERT INTO player_values (
    first_name, last_name, position, team, points, rebounds, assists, career_length,
    draft_year, draft_round, draft_number, value_score, roi, roi_per_season, efficiency,
    draft_category, quality_tier
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// WriteSQLite writes the derived table and the per-round averages to a new
// SQLite file at path, replacing any file already there. The database is
// built under a temporary name and renamed once complete.
func WriteSQLite(ctx context.Context, path string, vals []players.Valued, rounds map[int]float64) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.db")
	if err != nil {
		return fmt.Errorf("create sqlite export: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("create sqlite export: %w", err)
	}

	if err = writeDatabase(ctx, tmpPath, vals, rounds); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("finalize sqlite export: %w", err)
	}
	return nil
}

// closeDatabase is swapped in tests.
var closeDatabase = (*sql.DB).Close

// writeDatabase returns the close error when nothing else failed.
func writeDatabase(ctx context.Context, path string, vals []players.Valued, rounds map[int]float64) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite export: %w", err)
	}
	defer func() {
		if cerr := closeDatabase(db); cerr != nil && err == nil {
			err = fmt.Errorf("close sqlite export: %w", cerr)
		}
	}()

	for _, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create export schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertPlayer)
	if err != nil {
		return fmt.Errorf("prepare player insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range vals {
		if _, err := stmt.ExecContext(ctx,
			v.FirstName, v.LastName, v.Position, v.Team,
			deref(v.Points), deref(v.Rebounds), deref(v.Assists), derefInt(v.CareerLength),
			nullInt(v.DraftYear), nullInt(v.DraftRound), nullInt(v.DraftNumber),
			v.ValueScore, nullFloat(v.ROI), nullFloat(v.ROIPerSeason), nullFloat(v.Efficiency),
			v.DraftCategory, v.QualityTier,
		); err != nil {
			return fmt.Errorf("insert %s: %w", v.FullName, err)
		}
	}

	keys := make([]int, 0, len(rounds))
	for round := range rounds {
		keys = append(keys, round)
	}
	sort.Ints(keys)
	for _, round := range keys {
		if _, err := tx.ExecContext(ctx, `INSERT INTO round_roi (draft_round, average_roi) VALUES (?, ?)`, round, rounds[round]); err != nil {
			return fmt.Errorf("insert round %d: %w", round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
