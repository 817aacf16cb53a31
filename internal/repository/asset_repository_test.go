package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetRepository(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewAssetRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.AssetBarcode{
		Model:    "DHJLO",
		Volume:   20,
		Validity: time.Now().Add(365 * 24 * time.Hour),
		Status:   "active",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	t.Run("find by model", func(t *testing.T) {
		got, err := repo.FindByModel(ctx, "DHJLO")
		require.NoError(t, err)
		assert.Equal(t, 20.0, got.Volume)
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := repo.FindByModel(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := repo.Update(ctx, created.ID, &model.AssetBarcode{
			Model:    "DHJLO",
			Volume:   25,
			Validity: created.Validity,
			Status:   "active",
		})
		require.NoError(t, err)
		assert.Equal(t, 25.0, updated.Volume)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
	})
}
