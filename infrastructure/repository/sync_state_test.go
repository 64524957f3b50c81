package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/internal/domain"
)

func TestSyncStateRepository_BackfillState(t *testing.T) {
	store := documentstore.NewMemoryStore()
	repo := NewSyncStateRepository(store)
	ctx := context.Background()
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	through := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	state, err := repo.BackfillState(ctx, "acc-1", "US")
	require.NoError(t, err)
	assert.Nil(t, state)
	assert.Equal(t, epoch, state.ResumeFrom(epoch), "sem estado começa na epoch")

	require.NoError(t, repo.SaveBackfillState(ctx, &domain.BackfillState{
		AccountID: "acc-1", Marketplace: "US", CompletedThrough: through,
	}))
	require.NoError(t, repo.SaveBackfillState(ctx, &domain.BackfillState{
		AccountID: "acc-1", Marketplace: "UK", CompletedThrough: through, Complete: true,
	}))

	state, err = repo.BackfillState(ctx, "acc-1", "US")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, through, state.CompletedThrough)
	assert.False(t, state.Complete)
	assert.Equal(t, through, state.ResumeFrom(epoch))
	assert.Equal(t, through, state.ResumeFrom(epoch.Add(-time.Hour)))

	assert.Contains(t, store.Snapshot(documentstore.CollectionSyncState), "acc-1_US")

	uk, err := repo.BackfillState(ctx, "acc-1", "UK")
	require.NoError(t, err)
	assert.True(t, uk.Complete)
}

func TestBackfillState_ResumeFromNeverBeforeEpoch(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	state := &domain.BackfillState{CompletedThrough: epoch.Add(-24 * time.Hour)}

	assert.Equal(t, epoch, state.ResumeFrom(epoch))
}
