package records

import (
	"path/filepath"
	"testing"
	"time"
)

func initStore(t *testing.T) {
	t.Helper()
	if err := Init(filepath.Join(t.TempDir(), "records.db")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Close() })
}

func TestStoreAndGet(t *testing.T) {
	initStore(t)

	rec := RenderRecord{
		Key:         "abc123",
		Path:        "/kbd/A/A/1.webp",
		Status:      StatusDegraded,
		ContentType: "image/png",
		DurationMS:  42,
		Events:      []string{"font unavailable, using fallback family"},
	}
	if err := Store(rec); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected record, got nil")
	}
	if got.Status != StatusDegraded || got.Path != rec.Path {
		t.Errorf("Unexpected record %+v", got)
	}
	if len(got.Events) != 1 {
		t.Errorf("Expected 1 diagnostics event, got %d", len(got.Events))
	}
	if got.Timestamp.IsZero() {
		t.Error("Store should stamp a zero timestamp")
	}
}

func TestGetMissingIsNotError(t *testing.T) {
	initStore(t)

	got, err := Get("never-stored")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing record, got %+v", got)
	}
}

func TestList(t *testing.T) {
	initStore(t)

	for _, key := range []string{"k1", "k2", "k3"} {
		if err := Store(RenderRecord{Key: key, Status: StatusOK}); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	recs, err := List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("Expected 3 records, got %d", len(recs))
	}
}

func TestCleanupOldRecords(t *testing.T) {
	initStore(t)

	old := RenderRecord{Key: "old", Status: StatusFailed, Timestamp: time.Now().Add(-48 * time.Hour)}
	fresh := RenderRecord{Key: "fresh", Status: StatusOK, Timestamp: time.Now()}
	if err := Store(old); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := Store(fresh); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if err := CleanupOldRecords(24 * time.Hour); err != nil {
		t.Fatalf("CleanupOldRecords failed: %v", err)
	}

	gotOld, _ := Get("old")
	if gotOld != nil {
		t.Error("Old record should have been cleaned up")
	}
	gotFresh, _ := Get("fresh")
	if gotFresh == nil {
		t.Error("Fresh record should survive cleanup")
	}
}

func TestCheckHealth(t *testing.T) {
	initStore(t)
	if err := CheckHealth(); err != nil {
		t.Errorf("CheckHealth failed: %v", err)
	}
}

func TestUninitializedStore(t *testing.T) {
	Close()
	db = nil

	if err := Store(RenderRecord{Key: "x"}); err == nil {
		t.Error("Store should fail when uninitialized")
	}
	if _, err := Get("x"); err == nil {
		t.Error("Get should fail when uninitialized")
	}
}
