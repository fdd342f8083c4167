package main

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATASET_SOURCE", "fixture")
	t.Setenv("DATASET_PATH", "")
}

func TestRunPrintsReportSections(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"-n", "3", "-min-picks", "2"}, &stdout, &stderr))

	out := stdout.String()
	for _, want := range []string{
		"Loaded 12 players from fixture",
		"Top players by draft ROI",
		"Top players by value score",
		"Average ROI by draft round",
		"Team drafting (at least 2 picks)",
		"Summary",
	} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "Tim Duncan")
	assert.Contains(t, out, "Spurs")
	assert.Contains(t, stderr.String(), "dataset loaded")
}

func TestRunPositionFilter(t *testing.T) {
	isolate(t)
	var stdout bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"-n", "1", "-position", "Center"}, &stdout, &bytes.Buffer{}))

	roi := strings.SplitN(stdout.String(), "Top players by value score", 2)[0]
	assert.Contains(t, roi, "(Center)")
	assert.Contains(t, roi, "Greg Oden")
	assert.NotContains(t, roi, "Tim Duncan")
}

func TestRunValueTableLeavesUndraftedROIAbsent(t *testing.T) {
	isolate(t)
	var stdout bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"-n", "12"}, &stdout, &bytes.Buffer{}))

	value := strings.SplitN(stdout.String(), "Top players by value score", 2)[1]
	value = strings.SplitN(value, "Average ROI by draft round", 2)[0]
	var wallace string
	for _, line := range strings.Split(value, "\n") {
		if strings.Contains(line, "Ben Wallace") {
			wallace = line
		}
	}
	require.NotEmpty(t, wallace)
	assert.Contains(t, wallace, "n/a")
}

func TestRunWritesExports(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	dbPath := filepath.Join(dir, "out.db")
	var stdout bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"-csv", csvPath, "-sqlite", dbPath}, &stdout, &bytes.Buffer{}))

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 13, strings.Count(string(data), "\n"))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM player_values`).Scan(&n))
	assert.Equal(t, 12, n)
	assert.Contains(t, stdout.String(), "Wrote 12 rows to "+csvPath)
}

func TestRunRejectsBadFlags(t *testing.T) {
	isolate(t)

	assert.Error(t, run(context.Background(), []string{"-n", "-1"}, &bytes.Buffer{}, &bytes.Buffer{}))
	assert.Error(t, run(context.Background(), []string{"-unknown"}, &bytes.Buffer{}, &bytes.Buffer{}))
}

func TestRunMissingDatasetFails(t *testing.T) {
	isolate(t)

	err := run(context.Background(), []string{"-dataset", filepath.Join(t.TempDir(), "none.csv")}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}
