package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculationResult is a priced-out piece of jewelry. It is a snapshot:
// price and wage are copied at calculation time, so later edits to the
// registry or catalog do not change an already computed result.
type CalculationResult struct {
	Weight       decimal.Decimal `json:"weight"`
	Material     Material        `json:"material"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	WageAmount   decimal.Decimal `json:"wage_amount"`
	Total        decimal.Decimal `json:"total"`
	IncludeGST   bool            `json:"include_gst"`
}

// Preview renders the arithmetic behind the total, e.g.
// "(10g × ₹6000/g) + ₹500 = ₹60500".
func (r CalculationResult) Preview(currency string) string {
	return fmt.Sprintf("(%sg × %s%s/g) + %s%s = %s%s",
		r.Weight.String(), currency, r.PricePerGram.String(),
		currency, r.WageAmount.String(), currency, r.Total.String())
}

// HistoryRecord is a committed calculation. Immutable once created;
// records are removed only via clear-all.
type HistoryRecord struct {
	// ID is derived from the commit time (unix milliseconds).
	ID int64 `json:"id"`
	// Timestamp is the local commit time, formatted "2006-01-02 15:04:05".
	Timestamp string `json:"timestamp"`

	CalculationResult
}
