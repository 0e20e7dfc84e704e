package imagecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTier_AddGetRoundtrip(t *testing.T) {
	tr, err := newTier(4, 1<<20)
	require.NoError(t, err)

	tr.add("a", []byte("payload"), 7)

	data, ok := tr.get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, int64(7), tr.currentCost())

	_, ok = tr.get("missing")
	assert.False(t, ok)
}

func TestTier_EntryCountCapEvictsOldest(t *testing.T) {
	tr, err := newTier(2, 1<<20)
	require.NoError(t, err)

	tr.add("a", []byte("a"), 1)
	tr.add("b", []byte("b"), 1)
	tr.add("c", []byte("c"), 1)

	assert.Equal(t, 2, tr.len())
	_, ok := tr.get("a")
	assert.False(t, ok, "oldest entry must be evicted by the count cap")
	assert.Equal(t, int64(2), tr.currentCost(), "evicted cost must leave the ledger")
}

func TestTier_CostBudgetEvictsFromColdEnd(t *testing.T) {
	tr, err := newTier(10, 700)
	require.NoError(t, err)

	tr.add("a", []byte("a"), 400)
	tr.add("b", []byte("b"), 400)

	// 800 > 700: холодный конец (a) должен уйти
	assert.Equal(t, 1, tr.len())
	_, ok := tr.get("a")
	assert.False(t, ok)
	_, ok = tr.get("b")
	assert.True(t, ok)
	assert.Equal(t, int64(400), tr.currentCost())
}

func TestTier_SingleOversizedEntryStays(t *testing.T) {
	tr, err := newTier(10, 100)
	require.NoError(t, err)

	// одна запись может превышать бюджет, иначе большие превью
	// никогда бы не кэшировались
	tr.add("big", []byte("big"), 500)

	assert.Equal(t, 1, tr.len())
	_, ok := tr.get("big")
	assert.True(t, ok)
}

func TestTier_ReplaceSettlesOldCost(t *testing.T) {
	tr, err := newTier(4, 1<<20)
	require.NoError(t, err)

	tr.add("a", []byte("v1"), 100)
	tr.add("a", []byte("v2"), 40)

	assert.Equal(t, 1, tr.len())
	assert.Equal(t, int64(40), tr.currentCost())

	data, _ := tr.get("a")
	assert.Equal(t, []byte("v2"), data)
}

func TestTier_Remove(t *testing.T) {
	tr, err := newTier(4, 1<<20)
	require.NoError(t, err)

	tr.add("a", []byte("a"), 10)
	tr.remove("a")

	_, ok := tr.get("a")
	assert.False(t, ok)
	assert.Equal(t, int64(0), tr.currentCost())
}

func TestTier_RemovePrefix(t *testing.T) {
	tr, err := newTier(8, 1<<20)
	require.NoError(t, err)

	tr.add("preview_x_100x100", []byte("a"), 1)
	tr.add("preview_x_200x200", []byte("b"), 1)
	tr.add("preview_y_100x100", []byte("c"), 1)

	tr.removePrefix("preview_x_")

	assert.Equal(t, 1, tr.len())
	_, ok := tr.get("preview_y_100x100")
	assert.True(t, ok)
}

func TestTier_PurgeResetsCost(t *testing.T) {
	tr, err := newTier(4, 1<<20)
	require.NoError(t, err)

	tr.add("a", []byte("a"), 10)
	tr.add("b", []byte("b"), 20)
	tr.purge()

	assert.Equal(t, 0, tr.len())
	assert.Equal(t, int64(0), tr.currentCost())
}

func TestNewTier_RejectsNonPositiveEntries(t *testing.T) {
	_, err := newTier(0, 100)
	assert.Error(t, err)
}
