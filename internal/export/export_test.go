package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-draft-roi/internal/loader"
	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

func TestWriteCSV(t *testing.T) {
	vals, _ := valuation.DeriveAll(loader.FixtureRecords())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, vals))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(vals)+1)
	assert.Equal(t, Header, rows[0])

	duncan := rows[1]
	assert.Equal(t, "Tim", duncan[0])
	assert.Equal(t, "Duncan", duncan[1])
	assert.Equal(t, "19", duncan[13])
	assert.Equal(t, "1", duncan[16])
	assert.InDelta(t, 623.2, parseFloat(t, duncan[17]), 1e-9)
	assert.InDelta(t, 623.2, parseFloat(t, duncan[18]), 1e-9)
	assert.Equal(t, valuation.CategoryTopLottery, duncan[21])
	assert.Equal(t, valuation.TierElite, duncan[22])

	wallace := rows[11]
	assert.Equal(t, "Wallace", wallace[1])
	assert.Empty(t, wallace[16], "undrafted players have no draft number")
	assert.Empty(t, wallace[18], "undrafted players have no ratio")
	assert.Equal(t, valuation.CategoryUndrafted, wallace[21])
}

func TestWriteCSVIsReadableByLoader(t *testing.T) {
	vals, _ := valuation.DeriveAll(loader.FixtureRecords())
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, vals))

	records, report, err := loader.Parse(context.Background(), &buf, ',')
	require.NoError(t, err)
	assert.Zero(t, report.Dropped)
	require.Len(t, records, len(vals))
	for i, r := range records {
		value, err := valuation.ValueScore(r)
		require.NoError(t, err)
		assert.InDelta(t, vals[i].ValueScore, value, 1e-9, r.Name())
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteSQLite(t *testing.T) {
	records := loader.FixtureRecords()
	vals, _ := valuation.DeriveAll(records)
	rounds := valuation.AverageROIByDraftRound(records)
	path := filepath.Join(t.TempDir(), "draft_roi.db")

	require.NoError(t, WriteSQLite(context.Background(), path, vals, rounds))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count, drafted int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), COUNT(draft_number) FROM player_values`).Scan(&count, &drafted))
	assert.Equal(t, len(vals), count)
	assert.Equal(t, 10, drafted)

	var roi float64
	require.NoError(t, db.QueryRow(`SELECT roi FROM player_values WHERE last_name = 'Duncan'`).Scan(&roi))
	assert.InDelta(t, 623.2, roi, 1e-9)

	var roundRows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM round_roi`).Scan(&roundRows))
	assert.Equal(t, len(rounds), roundRows)

	var avg float64
	require.NoError(t, db.QueryRow(`SELECT average_roi FROM round_roi WHERE draft_round = 1`).Scan(&avg))
	assert.InDelta(t, rounds[1], avg, 1e-9)
}

func TestWriteSQLiteReplacesExistingFile(t *testing.T) {
	vals, _ := valuation.DeriveAll(loader.FixtureRecords())
	path := filepath.Join(t.TempDir(), "draft_roi.db")

	require.NoError(t, WriteSQLite(context.Background(), path, vals, nil))
	require.NoError(t, WriteSQLite(context.Background(), path, vals[:2], nil))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM player_values`).Scan(&count))
	assert.Equal(t, 2, count)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestWriteSQLiteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "draft_roi.db")
	assert.Error(t, WriteSQLite(context.Background(), path, nil, nil))
}

func TestWriteSQLiteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	vals, _ := valuation.DeriveAll(loader.FixtureRecords())

	require.Error(t, WriteSQLite(ctx, filepath.Join(dir, "draft_roi.db"), vals, nil))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteSQLiteCloseFailureLeavesNoFile(t *testing.T) {
	orig := closeDatabase
	t.Cleanup(func() { closeDatabase = orig })
	closeDatabase = func(db *sql.DB) error {
		_ = orig(db)
		return errors.New("disk full")
	}
	dir := t.TempDir()
	vals, _ := valuation.DeriveAll(loader.FixtureRecords())

	err := WriteSQLite(context.Background(), filepath.Join(dir, "draft_roi.db"), vals, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close sqlite export")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func parseFloat(t *testing.T, raw string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	return v
}
