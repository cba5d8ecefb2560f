package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	doc := StoredPriceSet{
		GoldWithoutGST:   "5600",
		GoldWithGST:      "6000",
		SilverWithoutGST: "70",
		SilverWithGST:    "75.5",
	}
	Save(store, KeyDailyPrices, doc)

	loaded := Load(store, KeyDailyPrices, StoredPriceSet{})
	require.Equal(t, doc, loaded)
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	store := newTestStore(t)

	def := []StoredWageEntry{{ID: 1, SrNo: 1, Label: "Default", Rate: "1000"}}
	loaded := Load(store, KeyWagesList, def)
	require.Equal(t, def, loaded)

	// the default must be a value copy, not an alias of the caller's slice
	loaded[0].Label = "changed"
	require.Equal(t, "Default", def[0].Label)
}

func TestLoadCorruptDocumentReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyHistory+".json"), []byte("{not json"), 0o644))

	def := []StoredHistoryRecord{}
	loaded := Load(store, KeyHistory, def)
	require.Equal(t, def, loaded)
}

func TestSaveOverwritesWholeDocument(t *testing.T) {
	store := newTestStore(t)

	Save(store, KeyLastInputDate, "2024-01-01")
	Save(store, KeyLastInputDate, "2024-01-02")

	require.Equal(t, "2024-01-02", Load(store, KeyLastInputDate, ""))
}

func TestLoadEmptyFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyLastInputDate+".json"), nil, 0o644))
	require.Equal(t, "never", Load(store, KeyLastInputDate, "never"))
}
