package services

import (
	"context"
	"testing"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverService_Resolve(t *testing.T) {
	db := setupTestDB(t)
	devices := repository.NewDeviceRepository(db)
	resolver := NewResolverService(devices)
	ctx := context.Background()

	mustCreateBowser := func(stationID, bowserID, mqttID string, status model.DeviceStatus) {
		_, err := devices.CreateBowser(ctx, &model.Bowser{
			StationID: stationID, BowserID: bowserID, Name: "b", MqttID: mqttID, Status: status,
		})
		require.NoError(t, err)
	}
	mustCreateStationary := func(stationID, stationaryID, mqttID string, status model.DeviceStatus) {
		_, err := devices.CreateStationary(ctx, &model.Stationary{
			StationID: stationID, StationaryID: stationaryID, Name: "s", MqttID: mqttID, Status: status,
		})
		require.NoError(t, err)
	}

	t.Run("bowser wins over stationary for the same channel id", func(t *testing.T) {
		mustCreateBowser("ST-B", "BW01", "SHARED0001", model.DeviceStatusActive)
		mustCreateStationary("ST-S", "SU01", "SHARED0001", model.DeviceStatusActive)

		res, err := resolver.Resolve(ctx, "SHARED0001")
		require.NoError(t, err)
		assert.Equal(t, "ST-B", res.StationID)
		assert.Equal(t, "BW01", res.SubID)
		assert.Equal(t, model.DeviceKindBowser, res.Kind)
	})

	t.Run("inactive bowser falls through to stationary", func(t *testing.T) {
		mustCreateBowser("ST-B2", "BW02", "SHARED0002", model.DeviceStatusInactive)
		mustCreateStationary("ST-S2", "SU02", "SHARED0002", model.DeviceStatusActive)

		res, err := resolver.Resolve(ctx, "SHARED0002")
		require.NoError(t, err)
		assert.Equal(t, "ST-S2", res.StationID)
		assert.Equal(t, "SU02", res.SubID)
		assert.Equal(t, model.DeviceKindStationary, res.Kind)
	})

	t.Run("tank is the last resort", func(t *testing.T) {
		_, err := devices.CreateTank(ctx, &model.Tank{
			StationID: "ST-T", TankID: "TK01", Name: "t", MqttID: "TANKONLY01",
			PumpCount: 1, Status: model.DeviceStatusActive,
		})
		require.NoError(t, err)

		res, err := resolver.Resolve(ctx, "TANKONLY01")
		require.NoError(t, err)
		assert.Equal(t, "ST-T", res.StationID)
		assert.Equal(t, "TK01", res.SubID)
	})

	t.Run("miss returns empty fields, not an error", func(t *testing.T) {
		res, err := resolver.Resolve(ctx, "UNKNOWN001")
		require.NoError(t, err)
		assert.Empty(t, res.StationID)
		assert.Empty(t, res.SubID)
	})

	t.Run("all categories inactive reads as a miss", func(t *testing.T) {
		mustCreateBowser("ST-X", "BW03", "ALLOFF0001", model.DeviceStatusInactive)
		mustCreateStationary("ST-X", "SU03", "ALLOFF0001", model.DeviceStatusInactive)

		res, err := resolver.Resolve(ctx, "ALLOFF0001")
		require.NoError(t, err)
		assert.Empty(t, res.StationID)
	})
}
