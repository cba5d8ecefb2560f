package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// MinWageRate is the lowest allowed making charge. Zero or negative labor
// charges are rejected.
var MinWageRate = decimal.NewFromInt(1)

// WageEntry is a single making-charge (labor) rate in the catalog.
type WageEntry struct {
	// ID is a stable identifier that survives reordering.
	ID int64
	// SrNo is the 1-based display rank, recomputed whenever the list changes.
	SrNo int
	// Label is the display name shown in the wages tab.
	Label string
	// Rate is the fixed labor fee added per calculation, independent of weight.
	Rate decimal.Decimal
}

// NewWageEntry constructs a validated wage entry.
func NewWageEntry(id int64, srNo int, label string, rate decimal.Decimal) (WageEntry, error) {
	if label == "" {
		return WageEntry{}, errors.Wrap(ErrInvalidInput, "wage label must not be empty")
	}
	if rate.LessThan(MinWageRate) {
		return WageEntry{}, errors.Wrapf(ErrInvalidInput, "wage rate must be at least %s, got %s", MinWageRate.String(), rate.String())
	}
	return WageEntry{ID: id, SrNo: srNo, Label: label, Rate: rate}, nil
}
