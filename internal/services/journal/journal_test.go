package journal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestAppendAndReplay(t *testing.T) {
	j := newTestJournal(t)

	require.NoError(t, j.Append(KindPricesCommit, map[string]string{"gold_with_gst": "6000"}))
	require.NoError(t, j.Append(KindHistoryClear, nil))

	records, err := j.EventsAfter(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, KindPricesCommit, records[0].Record.Kind)
	require.NotEmpty(t, records[0].Record.ID)
	require.False(t, records[0].Record.At.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(records[0].Record.Payload, &payload))
	require.Equal(t, "6000", payload["gold_with_gst"])

	require.Equal(t, KindHistoryClear, records[1].Record.Kind)
	require.Empty(t, records[1].Record.Payload)
}

func TestEventsAfterSkipsConsumed(t *testing.T) {
	j := newTestJournal(t)

	require.NoError(t, j.Append(KindGateReset, nil))
	first, err := j.EventsAfter(0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, j.Append(KindHistoryAppend, nil))
	rest, err := j.EventsAfter(first[0].Index)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, KindHistoryAppend, rest[0].Record.Kind)
}

func TestEventsAfterCurrentIndexIsEmpty(t *testing.T) {
	j := newTestJournal(t)

	require.NoError(t, j.Append(KindGateReset, nil))
	records, err := j.EventsAfter(j.CurrentIndex())
	require.NoError(t, err)
	require.Empty(t, records)
}
