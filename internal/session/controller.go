// Package session orchestrates the calculator: it decides when the daily
// price gate is shown, wires UI actions to state mutations and keeps the
// audit journal fed. Presentation layers render from the snapshots the
// command handlers return.
package session

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/services/calculator"
	"github.com/LegitNotT/SSS/internal/services/history"
	"github.com/LegitNotT/SSS/internal/services/journal"
	"github.com/LegitNotT/SSS/internal/services/pricer"
	"github.com/LegitNotT/SSS/internal/services/wages"
)

type journalWriter interface {
	Append(kind string, payload any) error
}

// State is the ephemeral per-session UI state. WeightText is kept raw so
// intermediate entries like a trailing "." survive between keypresses.
type State struct {
	WeightText string
	Material   domain.Material
	IncludeGST bool
	Result     *domain.CalculationResult
	GateActive bool
}

// Snapshot is the full view the presentation layer renders from.
type Snapshot struct {
	State
	Prices       domain.PriceSet
	Wages        []domain.WageEntry
	SelectedWage domain.WageEntry
	History      []domain.HistoryRecord
}

// Controller owns the session state and the underlying services.
type Controller struct {
	registry *pricer.Registry
	catalog  *wages.Catalog
	ledger   *history.Ledger
	journal  journalWriter
	logger   *zap.Logger
	state    State
	now      func() time.Time
}

// NewController builds a controller over loaded services. The gate state is
// derived from the registry at construction time.
func NewController(registry *pricer.Registry, catalog *wages.Catalog, ledger *history.Ledger,
	jw journalWriter, logger *zap.Logger) *Controller {

	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		registry: registry,
		catalog:  catalog,
		ledger:   ledger,
		journal:  jw,
		logger:   logger,
		now:      time.Now,
	}
	c.state = State{
		Material:   domain.MaterialGold,
		IncludeGST: true,
		GateActive: registry.NeedsDailyRefresh(c.now()),
	}
	return c
}

// Snapshot returns the current view of the whole session.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:        c.state,
		Prices:       c.registry.Active(),
		Wages:        c.catalog.List(),
		SelectedWage: c.catalog.Selected(),
		History:      c.ledger.List(),
	}
}

// ActivePrices returns the active price set.
func (c *Controller) ActivePrices() domain.PriceSet {
	return c.registry.Active()
}

// IsDailyGateActive reports whether the forced price-entry screen must be
// shown. The registry is re-consulted so the gate re-arms when the calendar
// day rolls over mid-session.
func (c *Controller) IsDailyGateActive(now time.Time) bool {
	if c.registry.NeedsDailyRefresh(now) {
		c.state.GateActive = true
	}
	return c.state.GateActive
}

// CommitPrices validates and stores a new price set. On success the gate
// closes and the session moves to normal operation.
func (c *Controller) CommitPrices(ps domain.PriceSet) (Snapshot, error) {
	if err := c.registry.Commit(ps, c.now()); err != nil {
		return c.Snapshot(), err
	}

	c.state.GateActive = false
	c.journalEvent(journal.KindPricesCommit, ps)
	return c.Snapshot(), nil
}

// ResetDailyGate forces the price-entry screen on the next render.
func (c *Controller) ResetDailyGate() Snapshot {
	c.registry.ResetGate()
	c.state.GateActive = true
	c.journalEvent(journal.KindGateReset, nil)
	return c.Snapshot()
}

// ListWages returns the wage catalog in display order.
func (c *Controller) ListWages() []domain.WageEntry {
	return c.catalog.List()
}

// AddWage appends a default wage entry.
func (c *Controller) AddWage() (domain.WageEntry, Snapshot) {
	entry := c.catalog.Add()
	return entry, c.Snapshot()
}

// UpdateWage edits a wage entry's label or rate.
func (c *Controller) UpdateWage(id int64, patch wages.Patch) (Snapshot, error) {
	if err := c.catalog.Update(id, patch); err != nil {
		return c.Snapshot(), err
	}
	return c.Snapshot(), nil
}

// RemoveWage deletes a wage entry.
func (c *Controller) RemoveWage(id int64) (Snapshot, error) {
	if err := c.catalog.Remove(id); err != nil {
		return c.Snapshot(), err
	}
	return c.Snapshot(), nil
}

// SelectWage makes the entry the one used by subsequent calculations.
func (c *Controller) SelectWage(id int64) (domain.WageEntry, error) {
	return c.catalog.Select(id)
}

// Compute prices the given weight against the active prices and selected
// wage. The inputs become the new session state; on validation failure the
// displayed result is cleared, never left partial.
func (c *Controller) Compute(weightText string, material domain.Material, includeGST bool) (Snapshot, error) {
	c.state.WeightText = weightText
	c.state.Material = material
	c.state.IncludeGST = includeGST

	result, err := calculator.ComputeTotal(weightText, material, includeGST, c.registry.Active(), c.catalog.Selected())
	if err != nil {
		c.state.Result = nil
		return c.Snapshot(), err
	}

	c.state.Result = &result
	return c.Snapshot(), nil
}

// CommitToHistory saves the displayed result to the ledger and clears the
// entry for the next customer.
func (c *Controller) CommitToHistory() (domain.HistoryRecord, error) {
	if c.state.Result == nil {
		return domain.HistoryRecord{}, errors.Wrap(domain.ErrInvalidOperation, "nothing to save, compute a price first")
	}

	record := c.ledger.Append(*c.state.Result)
	c.journalEvent(journal.KindHistoryAppend, record)

	c.state.WeightText = ""
	c.state.Result = nil
	return record, nil
}

// ListHistory returns saved calculations, most recent first.
func (c *Controller) ListHistory() []domain.HistoryRecord {
	return c.ledger.List()
}

// ClearHistory wipes the ledger.
func (c *Controller) ClearHistory() Snapshot {
	c.ledger.Clear()
	c.journalEvent(journal.KindHistoryClear, nil)
	return c.Snapshot()
}

// journalEvent writes an audit record; a journal failure never fails the
// user operation.
func (c *Controller) journalEvent(kind string, payload any) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Append(kind, payload); err != nil {
		c.logger.Warn("journal append failed", zap.String("kind", kind), zap.Error(err))
	}
}

// PressDigit appends a digit to the weight entry. A lone "0" is replaced by
// the first non-zero digit instead of growing into "01".
func (c *Controller) PressDigit(d byte) Snapshot {
	if d < '0' || d > '9' {
		return c.Snapshot()
	}
	switch {
	case c.state.WeightText == "0" && d != '0':
		c.state.WeightText = string(d)
	case c.state.WeightText == "0" && d == '0':
		// stays "0"
	default:
		c.state.WeightText += string(d)
	}
	return c.Snapshot()
}

// PressDecimalPoint appends a decimal point unless one is already present.
func (c *Controller) PressDecimalPoint() Snapshot {
	if !strings.Contains(c.state.WeightText, ".") {
		c.state.WeightText += "."
	}
	return c.Snapshot()
}

// Backspace removes the last character of the weight entry.
func (c *Controller) Backspace() Snapshot {
	if len(c.state.WeightText) > 1 {
		c.state.WeightText = c.state.WeightText[:len(c.state.WeightText)-1]
	} else {
		c.state.WeightText = ""
	}
	return c.Snapshot()
}

// ClearEntry resets the weight entry and the displayed result.
func (c *Controller) ClearEntry() Snapshot {
	c.state.WeightText = ""
	c.state.Result = nil
	return c.Snapshot()
}
