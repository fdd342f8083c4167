package main

import (
	"path/filepath"
	"testing"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestRunFailsOnBadConfig(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATASET_SOURCE", "parquet")

	if err := run(); err == nil {
		t.Fatalf("expected config error for unknown dataset source")
	}
}

func TestRunFailsOnMissingDataset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATASET_SOURCE", "csv")
	t.Setenv("DATASET_PATH", filepath.Join(dir, "missing.csv"))
	t.Setenv("METRICS_ENABLED", "false")

	if err := run(); err == nil {
		t.Fatalf("expected dataset load error")
	}
}
