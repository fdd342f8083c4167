package server

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-draft-roi/internal/config"
	"github.com/preston-bernstein/nba-draft-roi/internal/loader"
	"github.com/preston-bernstein/nba-draft-roi/internal/testutil"
)

func TestLoadDatasetDerivesFixture(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()

	vals, report, err := LoadDataset(context.Background(), config.DatasetConfig{Source: "fixture"}, logger, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != report.Loaded || report.Source != loader.SourceFixture {
		t.Fatalf("expected %d rows, got %d (report %+v)", report.Loaded, len(vals), report)
	}
	if vals[0].FullName != "Tim Duncan" || vals[0].ROI == nil {
		t.Fatalf("unexpected first row %+v", vals[0])
	}
	if buf.Len() == 0 {
		t.Fatalf("expected load to be logged")
	}
}

func TestLoadDatasetRejectsUnknownSource(t *testing.T) {
	if _, _, err := LoadDataset(context.Background(), config.DatasetConfig{Source: "parquet"}, nil, nil); err == nil {
		t.Fatalf("expected unknown source error")
	}
}
