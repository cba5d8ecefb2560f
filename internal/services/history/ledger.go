// Package history keeps the log of committed calculations, newest first.
package history

import (
	"time"

	"go.uber.org/zap"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/storage"
)

const timestampLayout = "2006-01-02 15:04:05"

// Ledger is an append-only record of computed prices. Records are prepended,
// never edited; the only removal is clear-all.
type Ledger struct {
	store   *storage.Store
	logger  *zap.Logger
	records []domain.HistoryRecord
	now     func() time.Time
}

// NewLedger loads the persisted history.
func NewLedger(store *storage.Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Ledger{store: store, logger: logger, now: time.Now}
	for _, stored := range storage.Load(store, storage.KeyHistory, []storage.StoredHistoryRecord(nil)) {
		record, err := stored.ToHistoryRecord()
		if err != nil {
			logger.Warn("skipping undecodable history record", zap.Int64("id", stored.ID), zap.Error(err))
			continue
		}
		l.records = append(l.records, record)
	}

	return l
}

// Append stamps the result with a time-based id and the current local time,
// inserts it at the head and persists the full sequence.
func (l *Ledger) Append(result domain.CalculationResult) domain.HistoryRecord {
	now := l.now()
	id := now.UnixMilli()
	// two commits inside one millisecond must still get distinct ids
	if len(l.records) > 0 && id <= l.records[0].ID {
		id = l.records[0].ID + 1
	}

	record := domain.HistoryRecord{
		ID:                id,
		Timestamp:         now.Format(timestampLayout),
		CalculationResult: result,
	}

	l.records = append([]domain.HistoryRecord{record}, l.records...)
	l.persist()

	l.logger.Info("calculation saved to history", zap.Int64("id", record.ID), zap.String("total", record.Total.String()))
	return record
}

// List returns a copy of the records, most recent first.
func (l *Ledger) List() []domain.HistoryRecord {
	out := make([]domain.HistoryRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Clear empties the log and persists the empty state.
func (l *Ledger) Clear() {
	l.records = nil
	l.persist()
	l.logger.Info("history cleared")
}

func (l *Ledger) persist() {
	stored := make([]storage.StoredHistoryRecord, 0, len(l.records))
	for _, r := range l.records {
		stored = append(stored, storage.NewStoredHistoryRecord(r))
	}
	storage.Save(l.store, storage.KeyHistory, stored)
}
