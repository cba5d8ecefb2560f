// Package calculator computes the sale price of a piece of jewelry.
package calculator

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/LegitNotT/SSS/internal/domain"
)

// ComputeTotal prices a piece from its weight text, material and GST choice
// against the given price set and selected wage. Pure: the caller decides
// whether to commit the result to history.
//
// The making charge is added once per piece, not multiplied by weight:
// total = weight * pricePerGram + wage.
func ComputeTotal(weightText string, material domain.Material, includeGST bool,
	prices domain.PriceSet, wage domain.WageEntry) (domain.CalculationResult, error) {

	weightText = strings.TrimSpace(weightText)
	if weightText == "" {
		return domain.CalculationResult{}, errors.Wrap(domain.ErrInvalidInput, "weight is empty")
	}

	// a trailing decimal point is a valid intermediate entry, read it as whole
	weight, err := decimal.NewFromString(strings.TrimSuffix(weightText, "."))
	if err != nil {
		return domain.CalculationResult{}, errors.Wrapf(domain.ErrInvalidInput, "weight %q is not a number", weightText)
	}
	if weight.IsNegative() {
		return domain.CalculationResult{}, errors.Wrapf(domain.ErrInvalidInput, "weight %s is negative", weight.String())
	}

	pricePerGram := prices.PricePerGram(material, includeGST)
	total := weight.Mul(pricePerGram).Add(wage.Rate)

	return domain.CalculationResult{
		Weight:       weight,
		Material:     material,
		PricePerGram: pricePerGram,
		WageAmount:   wage.Rate,
		Total:        total,
		IncludeGST:   includeGST,
	}, nil
}
