package documentstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CommitBatchMerges(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return fixed })

	store.Seed(CollectionInventory, Document{ID: "acc_US_SKU-1", Fields: map[string]any{
		"sku":   "SKU-1",
		"price": 10.0,
		"cogs":  4.2,
	}})

	err := store.CommitBatch(ctx, CollectionInventory, []Document{
		{ID: "acc_US_SKU-1", Fields: map[string]any{"sku": "SKU-1", "price": 12.5}},
		{ID: "acc_US_SKU-2", Fields: map[string]any{"sku": "SKU-2", "price": 3.0}},
	})
	require.NoError(t, err)

	snap := store.Snapshot(CollectionInventory)
	assert.Equal(t, map[string]any{"sku": "SKU-1", "price": 12.5, "cogs": 4.2}, snap["acc_US_SKU-1"])
	assert.Equal(t, map[string]any{"sku": "SKU-2", "price": 3.0}, snap["acc_US_SKU-2"])
	assert.Equal(t, []int{2}, store.Commits(CollectionInventory))

	docs, err := store.Find(ctx, CollectionInventory, Eq("sku", "SKU-2"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, fixed, docs[0].Fields[FieldUpdatedAt])
}

func TestMemoryStore_OnCommitFailure(t *testing.T) {
	store := NewMemoryStore()
	store.OnCommit = func(collection string, batch int, docs []Document) error {
		return errors.New("quota exceeded")
	}

	err := store.CommitBatch(context.Background(), CollectionOrders, []Document{{ID: "o1", Fields: map[string]any{"a": 1}}})
	assert.EqualError(t, err, "quota exceeded")
	assert.Empty(t, store.Snapshot(CollectionOrders))
	assert.Empty(t, store.Commits(CollectionOrders))
}

func TestMemoryStore_FindFilters(t *testing.T) {
	store := NewMemoryStore()
	store.Seed(CollectionOrders,
		Document{ID: "b", Fields: map[string]any{"account_id": "acc", "marketplace": "US"}},
		Document{ID: "a", Fields: map[string]any{"account_id": "acc", "marketplace": "US"}},
		Document{ID: "c", Fields: map[string]any{"account_id": "acc", "marketplace": "UK"}},
	)

	docs, err := store.Find(context.Background(), CollectionOrders, Eq("account_id", "acc"), Eq("marketplace", "US"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}
