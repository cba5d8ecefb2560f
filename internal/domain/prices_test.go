package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testPriceSet() PriceSet {
	return PriceSet{
		GoldWithoutGST:   decimal.NewFromInt(5600),
		GoldWithGST:      decimal.NewFromInt(6000),
		SilverWithoutGST: decimal.NewFromInt(70),
		SilverWithGST:    decimal.NewFromInt(75),
	}
}

func TestPricePerGramSelectsMatchingField(t *testing.T) {
	ps := testPriceSet()

	tests := []struct {
		name       string
		material   Material
		includeGST bool
		want       decimal.Decimal
	}{
		{"gold with GST", MaterialGold, true, ps.GoldWithGST},
		{"gold without GST", MaterialGold, false, ps.GoldWithoutGST},
		{"silver with GST", MaterialSilver, true, ps.SilverWithGST},
		{"silver without GST", MaterialSilver, false, ps.SilverWithoutGST},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.want.Equal(ps.PricePerGram(tt.material, tt.includeGST)))
		})
	}
}

func TestPriceSetValidate(t *testing.T) {
	require.NoError(t, testPriceSet().Validate())

	zeroed := testPriceSet()
	zeroed.SilverWithGST = decimal.Zero
	err := zeroed.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidInput))

	negative := testPriceSet()
	negative.GoldWithoutGST = decimal.NewFromInt(-1)
	require.True(t, errors.Is(negative.Validate(), ErrInvalidInput))
}

func TestParseMaterial(t *testing.T) {
	m, err := ParseMaterial("gold")
	require.NoError(t, err)
	require.Equal(t, MaterialGold, m)

	m, err = ParseMaterial("silver")
	require.NoError(t, err)
	require.Equal(t, MaterialSilver, m)

	_, err = ParseMaterial("platinum")
	require.True(t, errors.Is(err, ErrInvalidInput))
}

func TestNewWageEntry(t *testing.T) {
	entry, err := NewWageEntry(1, 1, "Ring", decimal.NewFromInt(500))
	require.NoError(t, err)
	require.Equal(t, "Ring", entry.Label)

	_, err = NewWageEntry(1, 1, "", decimal.NewFromInt(500))
	require.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewWageEntry(1, 1, "Ring", decimal.Zero)
	require.True(t, errors.Is(err, ErrInvalidInput))

	// rate exactly at the minimum is allowed
	_, err = NewWageEntry(1, 1, "Ring", decimal.NewFromInt(1))
	require.NoError(t, err)
}
