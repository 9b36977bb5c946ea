// Package records persists the outcome of every render: whether it
// succeeded cleanly, which degradations fired (font fallback, filter
// skipped, encode fallback), or why it failed. One store covers both
// outcomes so operators can query a request key and see what happened.
package records

import (
	"encoding/json"
	"fmt"
	"time"

	pebble "github.com/cockroachdb/pebble"
)

// Status classifies a render outcome.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
)

// RenderRecord is one persisted render outcome.
type RenderRecord struct {
	Key         string    `json:"key"` // md5 of path + query
	Path        string    `json:"path"`
	Timestamp   time.Time `json:"timestamp"`
	Status      Status    `json:"status"`
	ContentType string    `json:"content_type"`
	DurationMS  int64     `json:"duration_ms"`
	Events      []string  `json:"events,omitempty"` // diagnostics event log
	Error       string    `json:"error,omitempty"`
}

var db *pebble.DB

// Init initializes the render record store.
func Init(dbPath string) error {
	var err error
	db, err = pebble.Open(dbPath, &pebble.Options{})
	if err != nil {
		return fmt.Errorf("failed to open render record store: %w", err)
	}
	return nil
}

// Close closes the render record store.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Store persists a render record keyed by its request key.
func Store(rec RenderRecord) error {
	if db == nil {
		return fmt.Errorf("render record store not initialized")
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal render record: %w", err)
	}

	return db.Set([]byte(rec.Key), data, pebble.Sync)
}

// Get retrieves a render record by key. Not found is not an error.
func Get(key string) (*RenderRecord, error) {
	if db == nil {
		return nil, fmt.Errorf("render record store not initialized")
	}

	data, closer, err := db.Get([]byte(key))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()

	var rec RenderRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal render record: %w", err)
	}
	return &rec, nil
}

// List returns all render records (for admin/debugging).
func List() ([]RenderRecord, error) {
	if db == nil {
		return nil, fmt.Errorf("render record store not initialized")
	}

	var recs []RenderRecord
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var rec RenderRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			continue // Skip invalid records
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// CleanupOldRecords removes records older than the specified duration.
func CleanupOldRecords(maxAge time.Duration) error {
	if db == nil {
		return fmt.Errorf("render record store not initialized")
	}

	cutoff := time.Now().Add(-maxAge)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return err
	}
	defer iter.Close()

	var keysToDelete [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		var rec RenderRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			continue
		}
		if rec.Timestamp.Before(cutoff) {
			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			keysToDelete = append(keysToDelete, key)
		}
	}

	for _, key := range keysToDelete {
		if err := db.Delete(key, pebble.Sync); err != nil {
			return fmt.Errorf("failed to delete old render record: %w", err)
		}
	}
	return nil
}

// CheckHealth performs a basic health check on the record store.
func CheckHealth() error {
	if db == nil {
		return fmt.Errorf("render record store not initialized")
	}

	_, closer, err := db.Get([]byte("__health_check__"))
	if err != nil && err != pebble.ErrNotFound {
		return fmt.Errorf("record store health check failed: %w", err)
	}
	if closer != nil {
		closer.Close()
	}
	return nil
}
