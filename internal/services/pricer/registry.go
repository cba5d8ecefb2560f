// Package pricer keeps the four active per-gram metal prices and the
// once-daily re-entry gate.
package pricer

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/storage"
)

// DefaultGateCutoffHour is the local hour after which the gate re-arms on a
// day whose prices have not been entered yet.
const DefaultGateCutoffHour = 8

const dateLayout = "2006-01-02"

// Registry holds the active price set and the date prices were last entered.
type Registry struct {
	store         *storage.Store
	logger        *zap.Logger
	active        domain.PriceSet
	lastInputDate string
	cutoffHour    int
}

// NewRegistry loads the persisted prices, falling back to an all-zero set
// when nothing usable is on disk.
func NewRegistry(store *storage.Store, cutoffHour int, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cutoffHour <= 0 {
		cutoffHour = DefaultGateCutoffHour
	}

	stored := storage.Load(store, storage.KeyDailyPrices, storage.StoredPriceSet{})
	active, err := stored.ToPriceSet()
	if err != nil {
		logger.Warn("stored prices undecodable, starting from zero", zap.Error(err))
		active = domain.PriceSet{}
	}

	return &Registry{
		store:         store,
		logger:        logger,
		active:        active,
		lastInputDate: storage.Load(store, storage.KeyLastInputDate, ""),
		cutoffHour:    cutoffHour,
	}
}

// Active returns the current price set.
func (r *Registry) Active() domain.PriceSet {
	return r.active
}

// NeedsDailyRefresh reports whether the forced price-entry gate must be
// shown: prices were never entered, or not entered today. The cutoff-hour
// clause re-checks the same date comparison, so a day whose prices went in
// before the cutoff stays closed after it.
func (r *Registry) NeedsDailyRefresh(now time.Time) bool {
	today := now.Format(dateLayout)
	return r.lastInputDate == "" ||
		r.lastInputDate != today ||
		(now.Hour() >= r.cutoffHour && r.lastInputDate != today)
}

// Commit validates and persists a new price set and stamps today as the last
// input date, closing the gate for the rest of the day.
func (r *Registry) Commit(ps domain.PriceSet, now time.Time) error {
	if err := ps.Validate(); err != nil {
		return errors.Wrap(err, "commit prices")
	}

	r.active = ps
	r.lastInputDate = now.Format(dateLayout)

	storage.Save(r.store, storage.KeyDailyPrices, storage.NewStoredPriceSet(ps))
	storage.Save(r.store, storage.KeyLastInputDate, r.lastInputDate)

	r.logger.Info("daily prices committed", zap.String("date", r.lastInputDate))
	return nil
}

// ResetGate clears the last input date so the gate shows on the next check
// regardless of today's date. Manual override behind "Reset Daily Prices".
func (r *Registry) ResetGate() {
	r.lastInputDate = ""
	storage.Save(r.store, storage.KeyLastInputDate, r.lastInputDate)
	r.logger.Info("daily price gate reset")
}
