package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PriceSet holds the four active per-gram metal prices for the day.
// All amounts are in the shop currency per gram.
type PriceSet struct {
	GoldWithoutGST   decimal.Decimal
	GoldWithGST      decimal.Decimal
	SilverWithoutGST decimal.Decimal
	SilverWithGST    decimal.Decimal
}

// PricePerGram selects the price matching the material and GST choice.
func (p PriceSet) PricePerGram(material Material, includeGST bool) decimal.Decimal {
	if material == MaterialGold {
		if includeGST {
			return p.GoldWithGST
		}
		return p.GoldWithoutGST
	}
	if includeGST {
		return p.SilverWithGST
	}
	return p.SilverWithoutGST
}

// Validate checks that every price is strictly positive. The daily gate
// refuses to close until this passes.
func (p PriceSet) Validate() error {
	for _, d := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"gold price without GST", p.GoldWithoutGST},
		{"gold price with GST", p.GoldWithGST},
		{"silver price without GST", p.SilverWithoutGST},
		{"silver price with GST", p.SilverWithGST},
	} {
		if d.value.LessThanOrEqual(decimal.Zero) {
			return errors.Wrapf(ErrInvalidInput, "%s must be positive, got %s", d.name, d.value.String())
		}
	}
	return nil
}
