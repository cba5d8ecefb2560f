// Package journal writes an append-only audit trail of session events
// (price commits, history commits, clears) to a WAL. The dashboard replays
// it as a live event stream.
package journal

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
)

const (
	segmentLimit = 100
	maxSegments  = 10
)

// Event kinds written to the journal.
const (
	KindPricesCommit  = "prices_commit"
	KindHistoryAppend = "history_append"
	KindHistoryClear  = "history_clear"
	KindGateReset     = "gate_reset"
)

// Record is one journaled event.
type Record struct {
	// ID correlates the event with log lines.
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IndexedRecord pairs a record with its WAL index for stream resumption.
type IndexedRecord struct {
	Index  uint64
	Record Record
}

// Journal persists audit events in a WAL.
type Journal struct {
	wal *gowal.Wal
	mu  sync.RWMutex
	now func() time.Time
}

// New initializes a WAL-backed journal under dir.
func New(dir string) (*Journal, error) {
	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "journal_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init journal WAL")
	}

	return &Journal{wal: wal, now: time.Now}, nil
}

// Append journals an event of the given kind. The payload may be nil.
func (j *Journal) Append(kind string, payload any) error {
	if j == nil || j.wal == nil {
		return errors.New("journal is not initialized")
	}

	record := Record{
		ID:   uuid.NewString(),
		Kind: kind,
		At:   j.now(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "marshal journal payload")
		}
		record.Payload = raw
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal journal record")
	}

	key := fmt.Sprintf("%s_%s", kind, record.ID)

	j.mu.Lock()
	defer j.mu.Unlock()

	nextIndex := j.wal.CurrentIndex() + 1
	return j.wal.Write(nextIndex, key, encoded)
}

// EventsAfter returns all records written after the provided WAL index.
func (j *Journal) EventsAfter(index uint64) ([]IndexedRecord, error) {
	if j == nil || j.wal == nil {
		return nil, errors.New("journal is not initialized")
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	current := j.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]IndexedRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		_, payload, err := j.wal.Get(idx)
		if err != nil {
			continue
		}

		var record Record
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, errors.Wrap(err, "decode journal record")
		}
		records = append(records, IndexedRecord{Index: idx, Record: record})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (j *Journal) CurrentIndex() uint64 {
	if j == nil || j.wal == nil {
		return 0
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (j *Journal) Close() error {
	if j == nil || j.wal == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	return j.wal.Close()
}
