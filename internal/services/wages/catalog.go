// Package wages manages the ordered list of making-charge rates and the
// currently selected one.
package wages

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/storage"
)

// Fallback defaults used when the constructor is given none.
var (
	fallbackLabel = "Default"
	fallbackRate  = decimal.NewFromInt(1000)
)

// Patch carries the fields of a wage entry to change. Nil means keep.
type Patch struct {
	Label *string
	Rate  *decimal.Decimal
}

// Catalog is the ordered wage list. The catalog is never empty: deleting the
// last remaining entry is rejected, and an empty store seeds a default entry.
//
// Selection is a value snapshot, not a live reference. Edits to an entry leak
// into the selection only through the explicit re-sync on matching ids.
type Catalog struct {
	store        *storage.Store
	logger       *zap.Logger
	entries      []domain.WageEntry
	selected     domain.WageEntry
	defaultLabel string
	defaultRate  decimal.Decimal
}

// NewCatalog loads the persisted wage list and selects its first entry.
// defaultLabel and defaultRate seed new entries and the initial catalog.
func NewCatalog(store *storage.Store, defaultLabel string, defaultRate decimal.Decimal, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLabel == "" {
		defaultLabel = fallbackLabel
	}
	if defaultRate.LessThan(domain.MinWageRate) {
		defaultRate = fallbackRate
	}

	c := &Catalog{store: store, logger: logger, defaultLabel: defaultLabel, defaultRate: defaultRate}
	for _, stored := range storage.Load(store, storage.KeyWagesList, []storage.StoredWageEntry(nil)) {
		entry, err := stored.ToWageEntry()
		if err != nil {
			logger.Warn("skipping undecodable wage entry", zap.Int64("id", stored.ID), zap.Error(err))
			continue
		}
		c.entries = append(c.entries, entry)
	}

	if len(c.entries) == 0 {
		c.entries = []domain.WageEntry{{ID: 1, SrNo: 1, Label: c.defaultLabel, Rate: c.defaultRate}}
	}
	c.renumber()
	c.selected = c.entries[0]

	return c
}

// List returns a copy of the entries in display order.
func (c *Catalog) List() []domain.WageEntry {
	out := make([]domain.WageEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Selected returns the current selection snapshot.
func (c *Catalog) Selected() domain.WageEntry {
	return c.selected
}

// Add appends a new entry named after its position, with the default rate.
func (c *Catalog) Add() domain.WageEntry {
	var maxID int64
	for _, e := range c.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	entry := domain.WageEntry{
		ID:    maxID + 1,
		SrNo:  len(c.entries) + 1,
		Label: fmt.Sprintf("Item %d", len(c.entries)+1),
		Rate:  c.defaultRate,
	}
	c.entries = append(c.entries, entry)
	c.persist()

	c.logger.Info("wage entry added", zap.Int64("id", entry.ID))
	return entry
}

// Update edits an entry in place. When the edited entry is the selected one,
// the selection snapshot is re-synced so the calculator sees the change.
func (c *Catalog) Update(id int64, patch Patch) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return errors.Wrapf(domain.ErrNotFound, "wage entry %d", id)
	}

	updated := c.entries[idx]
	if patch.Label != nil {
		updated.Label = *patch.Label
	}
	if patch.Rate != nil {
		updated.Rate = *patch.Rate
	}

	validated, err := domain.NewWageEntry(updated.ID, updated.SrNo, updated.Label, updated.Rate)
	if err != nil {
		return err
	}

	c.entries[idx] = validated
	if c.selected.ID == id {
		c.selected = validated
	}
	c.persist()

	return nil
}

// Remove deletes an entry and renumbers the rest. The last remaining entry
// cannot be removed. When the selected entry is removed, selection falls
// back to the new first entry.
func (c *Catalog) Remove(id int64) error {
	if len(c.entries) <= 1 {
		return errors.Wrap(domain.ErrInvalidOperation, "cannot delete the last wage entry")
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return errors.Wrapf(domain.ErrNotFound, "wage entry %d", id)
	}

	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	c.renumber()
	if c.selected.ID == id {
		c.selected = c.entries[0]
	}
	c.persist()

	c.logger.Info("wage entry removed", zap.Int64("id", id))
	return nil
}

// Select marks the entry as current and returns an independent copy of it.
func (c *Catalog) Select(id int64) (domain.WageEntry, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return domain.WageEntry{}, errors.Wrapf(domain.ErrNotFound, "wage entry %d", id)
	}

	c.selected = c.entries[idx]
	return c.selected, nil
}

func (c *Catalog) indexOf(id int64) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// renumber recomputes SrNo as 1..N preserving relative order.
func (c *Catalog) renumber() {
	for i := range c.entries {
		c.entries[i].SrNo = i + 1
	}
}

func (c *Catalog) persist() {
	stored := make([]storage.StoredWageEntry, 0, len(c.entries))
	for _, e := range c.entries {
		stored = append(stored, storage.NewStoredWageEntry(e))
	}
	storage.Save(c.store, storage.KeyWagesList, stored)
}
