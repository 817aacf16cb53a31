package repository

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"gorm.io/gorm"
)

type DeviceRepository struct {
	*pg.DB
}

func NewDeviceRepository(db *pg.DB) *DeviceRepository {
	return &DeviceRepository{
		db,
	}
}

func (r *DeviceRepository) CreateBowser(ctx context.Context, b *model.Bowser) (*model.Bowser, error) {
	entity := toBowserEntity(b)
	entity.ID = 0
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toBowserModel(entity), nil
}

func (r *DeviceRepository) GetBowser(ctx context.Context, bowserID string) (*model.Bowser, error) {
	var entity BowserEntity
	err := r.Read(ctx).WithContext(ctx).Where("bowser_id = ?", bowserID).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toBowserModel(&entity), nil
}

// FindActiveBowserByMqttID resolves a messaging channel id to an active
// bowser. Inactive devices are invisible here so the caller falls through
// to the next device category.
func (r *DeviceRepository) FindActiveBowserByMqttID(ctx context.Context, mqttID string) (*model.Bowser, error) {
	var entity BowserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("mqtt_id = ? AND status = ?", mqttID, string(model.DeviceStatusActive)).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toBowserModel(&entity), nil
}

func (r *DeviceRepository) ListBowsersByStation(ctx context.Context, stationID string) ([]*model.Bowser, error) {
	var entities []*BowserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_on ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toBowserModels(entities), nil
}

func (r *DeviceRepository) UpdateBowser(ctx context.Context, bowserID string, req model.DeviceUpdateRequest) (*model.Bowser, error) {
	updates := deviceUpdates(req)
	if len(updates) > 0 {
		res := r.Write(ctx).WithContext(ctx).
			Model(&BowserEntity{}).
			Where("bowser_id = ?", bowserID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetBowser(ctx, bowserID)
}

func (r *DeviceRepository) DeleteBowser(ctx context.Context, bowserID string) error {
	res := r.Write(ctx).WithContext(ctx).Where("bowser_id = ?", bowserID).Delete(&BowserEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DeviceRepository) CreateStationary(ctx context.Context, s *model.Stationary) (*model.Stationary, error) {
	entity := toStationaryEntity(s)
	entity.ID = 0
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toStationaryModel(entity), nil
}

func (r *DeviceRepository) GetStationary(ctx context.Context, stationaryID string) (*model.Stationary, error) {
	var entity StationaryEntity
	err := r.Read(ctx).WithContext(ctx).Where("stationary_id = ?", stationaryID).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toStationaryModel(&entity), nil
}

func (r *DeviceRepository) FindActiveStationaryByMqttID(ctx context.Context, mqttID string) (*model.Stationary, error) {
	var entity StationaryEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("mqtt_id = ? AND status = ?", mqttID, string(model.DeviceStatusActive)).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toStationaryModel(&entity), nil
}

func (r *DeviceRepository) ListStationariesByStation(ctx context.Context, stationID string) ([]*model.Stationary, error) {
	var entities []*StationaryEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_on ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toStationaryModels(entities), nil
}

func (r *DeviceRepository) UpdateStationary(ctx context.Context, stationaryID string, req model.DeviceUpdateRequest) (*model.Stationary, error) {
	updates := deviceUpdates(req)
	if len(updates) > 0 {
		res := r.Write(ctx).WithContext(ctx).
			Model(&StationaryEntity{}).
			Where("stationary_id = ?", stationaryID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetStationary(ctx, stationaryID)
}

func (r *DeviceRepository) DeleteStationary(ctx context.Context, stationaryID string) error {
	res := r.Write(ctx).WithContext(ctx).Where("stationary_id = ?", stationaryID).Delete(&StationaryEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DeviceRepository) CreateTank(ctx context.Context, t *model.Tank) (*model.Tank, error) {
	entity := toTankEntity(t)
	entity.ID = 0
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toTankModel(entity), nil
}

func (r *DeviceRepository) GetTank(ctx context.Context, tankID string) (*model.Tank, error) {
	var entity TankEntity
	err := r.Read(ctx).WithContext(ctx).Where("tank_id = ?", tankID).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toTankModel(&entity), nil
}

func (r *DeviceRepository) FindActiveTankByMqttID(ctx context.Context, mqttID string) (*model.Tank, error) {
	var entity TankEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("mqtt_id = ? AND status = ?", mqttID, string(model.DeviceStatusActive)).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toTankModel(&entity), nil
}

func (r *DeviceRepository) ListTanksByStation(ctx context.Context, stationID string) ([]*model.Tank, error) {
	var entities []*TankEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_on ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toTankModels(entities), nil
}

func (r *DeviceRepository) UpdateTank(ctx context.Context, tankID string, req model.DeviceUpdateRequest) (*model.Tank, error) {
	updates := deviceUpdates(req)
	if len(updates) > 0 {
		res := r.Write(ctx).WithContext(ctx).
			Model(&TankEntity{}).
			Where("tank_id = ?", tankID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetTank(ctx, tankID)
}

func (r *DeviceRepository) DeleteTank(ctx context.Context, tankID string) error {
	res := r.Write(ctx).WithContext(ctx).Where("tank_id = ?", tankID).Delete(&TankEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func deviceUpdates(req model.DeviceUpdateRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.MqttID != nil {
		updates["mqtt_id"] = *req.MqttID
	}
	if req.Status != nil {
		updates["status"] = string(*req.Status)
	}
	if req.PumpCount != nil {
		updates["pump_count"] = *req.PumpCount
	}
	return updates
}
