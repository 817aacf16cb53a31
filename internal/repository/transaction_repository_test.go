package repository

import (
	"context"
	"testing"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("create tank snapshot without transaction id", func(t *testing.T) {
		tx := &model.Transaction{
			DeviceID:    "TANK567890",
			Type:        model.DeviceTypeTank,
			TankID:      strPtr("TK01"),
			TotalVolume: f64Ptr(4312.7),
			Temperature: f64Ptr(28.4),
			Humidity:    f64Ptr(61.0),
		}

		created, err := repo.Create(ctx, tx)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "TANK567890", created.DeviceID)
		assert.Equal(t, 4312.7, *created.TotalVolume)
		assert.NotZero(t, created.CreatedAt)
	})
}

func TestTransactionRepository_Upsert(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("first delivery inserts", func(t *testing.T) {
		tx := &model.Transaction{
			DeviceID:      "BWSR123456",
			Type:          model.DeviceTypeBowser,
			TransactionID: strPtr("TX100"),
			Volume:        f64Ptr(10.5),
			VehicleNumber: strPtr("KA01AB1234"),
		}

		saved, inserted, err := repo.Upsert(ctx, tx)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NotZero(t, saved.ID)
		assert.Equal(t, 10.5, *saved.Volume)
	})

	t.Run("redelivery with same id updates in place", func(t *testing.T) {
		tx := &model.Transaction{
			DeviceID:      "BWSR123456",
			Type:          model.DeviceTypeBowser,
			TransactionID: strPtr("TX100"),
			Volume:        f64Ptr(12.0),
			Amount:        f64Ptr(1080.0),
		}

		saved, inserted, err := repo.Upsert(ctx, tx)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, 12.0, *saved.Volume)
		assert.Equal(t, 1080.0, *saved.Amount)

		// Fields absent from the redelivery keep their stored values.
		require.NotNil(t, saved.VehicleNumber)
		assert.Equal(t, "KA01AB1234", *saved.VehicleNumber)

		var total int64
		require.NoError(t, repo.Read(ctx).Model(&TransactionEntity{}).Count(&total).Error)
		assert.Equal(t, int64(1), total)
	})

	t.Run("missing transaction id falls back to insert", func(t *testing.T) {
		tx := &model.Transaction{
			DeviceID: "TANK567890",
			Type:     model.DeviceTypeTank,
			TankID:   strPtr("TK01"),
		}

		_, inserted, err := repo.Upsert(ctx, tx)
		require.NoError(t, err)
		assert.True(t, inserted)
	})
}

func TestTransactionRepository_GetByTransactionID(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, &model.Transaction{
		DeviceID:      "STAN111111",
		Type:          model.DeviceTypeStationary,
		TransactionID: strPtr("TX200"),
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		got, err := repo.GetByTransactionID(ctx, "TX200")
		require.NoError(t, err)
		assert.Equal(t, "STAN111111", got.DeviceID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByTransactionID(ctx, "TX999")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransactionRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	stationID := "ST001"
	for i, id := range []string{"TX301", "TX302", "TX303"} {
		typ := model.DeviceTypeBowser
		if i == 2 {
			typ = model.DeviceTypeStationary
		}
		_, _, err := repo.Upsert(ctx, &model.Transaction{
			DeviceID:      "BWSR123456",
			StationID:     &stationID,
			Type:          typ,
			TransactionID: strPtr(id),
		})
		require.NoError(t, err)
	}

	t.Run("filter by station", func(t *testing.T) {
		txs, total, err := repo.List(ctx, model.TransactionFilter{StationID: &stationID})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, txs, 3)
	})

	t.Run("filter by type", func(t *testing.T) {
		typ := model.DeviceTypeStationary
		txs, total, err := repo.List(ctx, model.TransactionFilter{Type: &typ})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, txs, 1)
	})

	t.Run("pagination", func(t *testing.T) {
		txs, total, err := repo.List(ctx, model.TransactionFilter{StationID: &stationID, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, txs, 2)
	})
}
