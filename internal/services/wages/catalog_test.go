package wages

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LegitNotT/SSS/internal/domain"
	"github.com/LegitNotT/SSS/internal/storage"
)

func newTestCatalog(t *testing.T) (*Catalog, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return NewCatalog(store, "Default", decimal.NewFromInt(1000), zap.NewNop()), store
}

func TestCatalogSeedsDefaultEntry(t *testing.T) {
	c, _ := newTestCatalog(t)

	entries := c.List()
	require.Len(t, entries, 1)
	require.Equal(t, int64(1), entries[0].ID)
	require.Equal(t, 1, entries[0].SrNo)
	require.Equal(t, "Default", entries[0].Label)
	require.True(t, decimal.NewFromInt(1000).Equal(entries[0].Rate))
	require.Equal(t, entries[0].ID, c.Selected().ID)
}

func TestCatalogAddAssignsFreshIDs(t *testing.T) {
	c, _ := newTestCatalog(t)

	second := c.Add()
	third := c.Add()

	require.Equal(t, int64(2), second.ID)
	require.Equal(t, int64(3), third.ID)
	require.Equal(t, 2, second.SrNo)
	require.Equal(t, 3, third.SrNo)
	require.Equal(t, "Item 2", second.Label)
	require.Equal(t, "Item 3", third.Label)
}

func TestCatalogRemoveLastEntryRejected(t *testing.T) {
	c, _ := newTestCatalog(t)

	err := c.Remove(1)
	require.True(t, errors.Is(err, domain.ErrInvalidOperation))
	require.Len(t, c.List(), 1)
	require.Equal(t, int64(1), c.List()[0].ID)
}

func TestCatalogRemoveRenumbers(t *testing.T) {
	c, _ := newTestCatalog(t)
	second := c.Add()
	third := c.Add()

	require.NoError(t, c.Remove(second.ID))

	entries := c.List()
	require.Len(t, entries, 2)
	require.Equal(t, []int{1, 2}, []int{entries[0].SrNo, entries[1].SrNo})
	// relative order of survivors is preserved
	require.Equal(t, int64(1), entries[0].ID)
	require.Equal(t, third.ID, entries[1].ID)
}

func TestCatalogRemoveUnknownID(t *testing.T) {
	c, _ := newTestCatalog(t)
	c.Add()

	require.True(t, errors.Is(c.Remove(99), domain.ErrNotFound))
}

func TestCatalogRemoveSelectedFallsBackToFirst(t *testing.T) {
	c, _ := newTestCatalog(t)
	second := c.Add()

	_, err := c.Select(second.ID)
	require.NoError(t, err)

	require.NoError(t, c.Remove(second.ID))
	require.Equal(t, int64(1), c.Selected().ID)
}

func TestCatalogSelectionIsValueCopy(t *testing.T) {
	c, _ := newTestCatalog(t)
	second := c.Add()

	selected, err := c.Select(int64(1))
	require.NoError(t, err)
	require.Equal(t, "Default", selected.Label)

	// edit to a non-selected entry must not leak into the selection
	label := "Bangle"
	require.NoError(t, c.Update(second.ID, Patch{Label: &label}))
	require.Equal(t, "Default", c.Selected().Label)

	// edit to the selected entry re-syncs the snapshot
	rate := decimal.NewFromInt(750)
	require.NoError(t, c.Update(int64(1), Patch{Rate: &rate}))
	require.True(t, rate.Equal(c.Selected().Rate))
}

func TestCatalogSelectUnknownID(t *testing.T) {
	c, _ := newTestCatalog(t)

	_, err := c.Select(42)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCatalogUpdateValidatesRate(t *testing.T) {
	c, _ := newTestCatalog(t)

	zero := decimal.Zero
	err := c.Update(1, Patch{Rate: &zero})
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	// entry unchanged after a rejected update
	require.True(t, decimal.NewFromInt(1000).Equal(c.List()[0].Rate))
}

func TestCatalogUpdateUnknownID(t *testing.T) {
	c, _ := newTestCatalog(t)

	label := "x"
	require.True(t, errors.Is(c.Update(7, Patch{Label: &label}), domain.ErrNotFound))
}

func TestCatalogPersistsAcrossReload(t *testing.T) {
	c, store := newTestCatalog(t)
	added := c.Add()
	rate := decimal.NewFromInt(2500)
	require.NoError(t, c.Update(added.ID, Patch{Rate: &rate}))

	reloaded := NewCatalog(store, "Default", decimal.NewFromInt(1000), zap.NewNop())
	entries := reloaded.List()
	require.Len(t, entries, 2)
	require.True(t, rate.Equal(entries[1].Rate))
	// selection defaults to the first entry after restart
	require.Equal(t, entries[0].ID, reloaded.Selected().ID)
}
