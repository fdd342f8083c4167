package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksDatasetLoads(t *testing.T) {
	rec := NewRecorder()
	rec.RecordDatasetLoad("csv", 120, 3, 10*time.Millisecond, nil)
	rec.RecordDatasetLoad("csv", 0, 0, 15*time.Millisecond, errors.New("boom"))

	snap := rec.Snapshot("csv")
	if snap.Loads != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastLoaded != 120 || snap.LastDropped != 3 {
		t.Fatalf("expected failed load to keep previous counts, got %+v", snap)
	}
	if snap.LastDuration != 15*time.Millisecond {
		t.Fatalf("expected last duration 15ms, got %s", snap.LastDuration)
	}
}

func TestRecorderTracksQueries(t *testing.T) {
	rec := NewRecorder()
	rec.RecordQuery("top_roi", 10)
	rec.RecordQuery("top_roi", 3)
	rec.RecordQuery("summary", 1)

	if got := rec.QueryCount("top_roi"); got != 2 {
		t.Fatalf("expected 2 top_roi queries, got %d", got)
	}
	if got := rec.QueryCount("missing"); got != 0 {
		t.Fatalf("expected 0 for unknown query, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordDatasetLoad("csv", 1, 0, time.Millisecond, nil)
	rec.RecordQuery("q", 1)
	rec.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	if snap := rec.Snapshot("csv"); snap.Loads != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if rec.QueryCount("q") != 0 {
		t.Fatalf("expected zero query count")
	}
}
