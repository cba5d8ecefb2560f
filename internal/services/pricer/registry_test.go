package pricer

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/storage"
)

func newTestRegistry(t *testing.T) (*Registry, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return NewRegistry(store, DefaultGateCutoffHour, zap.NewNop()), store
}

func validPrices() domain.PriceSet {
	return domain.PriceSet{
		GoldWithoutGST:   decimal.NewFromInt(5600),
		GoldWithGST:      decimal.NewFromInt(6000),
		SilverWithoutGST: decimal.NewFromInt(70),
		SilverWithGST:    decimal.NewFromInt(75),
	}
}

func TestNeedsDailyRefresh(t *testing.T) {
	r, _ := newTestRegistry(t)

	morning := time.Date(2024, 3, 15, 7, 0, 0, 0, time.Local)
	afternoon := time.Date(2024, 3, 15, 14, 0, 0, 0, time.Local)
	nextDay := time.Date(2024, 3, 16, 9, 0, 0, 0, time.Local)

	// never entered
	require.True(t, r.NeedsDailyRefresh(morning))

	require.NoError(t, r.Commit(validPrices(), morning))

	// entered before the cutoff still counts for the whole day
	require.False(t, r.NeedsDailyRefresh(morning))
	require.False(t, r.NeedsDailyRefresh(afternoon))

	// calendar day rolls over, the gate re-arms
	require.True(t, r.NeedsDailyRefresh(nextDay))
}

func TestCommitRejectsNonPositivePrices(t *testing.T) {
	r, _ := newTestRegistry(t)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	bad := validPrices()
	bad.GoldWithGST = decimal.Zero
	err := r.Commit(bad, now)
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	// a failed commit neither updates prices nor closes the gate
	require.True(t, r.Active().GoldWithGST.IsZero())
	require.True(t, r.NeedsDailyRefresh(now))
}

func TestCommitStoresActivePrices(t *testing.T) {
	r, _ := newTestRegistry(t)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	require.NoError(t, r.Commit(validPrices(), now))
	require.True(t, decimal.NewFromInt(6000).Equal(r.Active().GoldWithGST))
}

func TestResetGateForcesRefresh(t *testing.T) {
	r, _ := newTestRegistry(t)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	require.NoError(t, r.Commit(validPrices(), now))
	require.False(t, r.NeedsDailyRefresh(now))

	r.ResetGate()
	require.True(t, r.NeedsDailyRefresh(now))
}

func TestRegistryPersistsAcrossReload(t *testing.T) {
	r, store := newTestRegistry(t)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	require.NoError(t, r.Commit(validPrices(), now))

	reloaded := NewRegistry(store, DefaultGateCutoffHour, zap.NewNop())
	require.True(t, validPrices().GoldWithoutGST.Equal(reloaded.Active().GoldWithoutGST))
	require.False(t, reloaded.NeedsDailyRefresh(now))
	require.True(t, reloaded.NeedsDailyRefresh(now.AddDate(0, 0, 1)))
}

func TestRegistryStartsFromZeroOnEmptyStore(t *testing.T) {
	r, _ := newTestRegistry(t)

	ps := r.Active()
	require.True(t, ps.GoldWithoutGST.IsZero())
	require.True(t, ps.SilverWithGST.IsZero())
}
