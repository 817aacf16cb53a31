package repository

import (
	"context"
	"testing"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationRepository_CRUD(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewStationRepository(db)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Station{
			Name:      "Depot East",
			StationID: "ST001",
			Location:  "East yard",
			Category:  "depot",
			Status:    model.StationStatusActive,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		got, err := repo.GetByStationID(ctx, "ST001")
		require.NoError(t, err)
		assert.Equal(t, "Depot East", got.Name)
	})

	t.Run("update partial", func(t *testing.T) {
		loc := "West yard"
		updated, err := repo.Update(ctx, "ST001", model.StationUpdateRequest{Location: &loc})
		require.NoError(t, err)
		assert.Equal(t, "West yard", updated.Location)
		assert.Equal(t, "Depot East", updated.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByStationID(ctx, "ST404")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStationRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	stations := NewStationRepository(db.DB)
	devices := NewDeviceRepository(db.DB)
	assignments := NewAssignmentRepository(db.DB)
	ctx := context.Background()

	_, err := stations.Create(ctx, &model.Station{
		Name:      "Depot East",
		StationID: "ST001",
		Location:  "East yard",
		Status:    model.StationStatusActive,
	})
	require.NoError(t, err)

	_, err = devices.CreateBowser(ctx, &model.Bowser{
		StationID: "ST001", BowserID: "BW01", Name: "b", MqttID: "BWSR123456",
		Status: model.DeviceStatusActive,
	})
	require.NoError(t, err)
	_, err = devices.CreateTank(ctx, &model.Tank{
		StationID: "ST001", TankID: "TK01", Name: "t", MqttID: "TANK567890",
		PumpCount: 1, Status: model.DeviceStatusActive,
	})
	require.NoError(t, err)
	_, err = assignments.Replace(ctx, &model.Assignment{
		UserID: 7, AdminID: 3, StationID: "ST001",
	})
	require.NoError(t, err)

	require.NoError(t, stations.Delete(ctx, "ST001"))

	_, err = stations.GetByStationID(ctx, "ST001")
	assert.ErrorIs(t, err, ErrNotFound)

	bowsers, err := devices.ListBowsersByStation(ctx, "ST001")
	require.NoError(t, err)
	assert.Empty(t, bowsers)

	tanks, err := devices.ListTanksByStation(ctx, "ST001")
	require.NoError(t, err)
	assert.Empty(t, tanks)

	_, err = assignments.GetByStation(ctx, "ST001")
	assert.ErrorIs(t, err, ErrNotFound)
}
