package repository

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"gorm.io/gorm"
)

type StationRepository struct {
	*pg.DB
}

func NewStationRepository(db *pg.DB) *StationRepository {
	return &StationRepository{
		db,
	}
}

func (r *StationRepository) Create(ctx context.Context, s *model.Station) (*model.Station, error) {
	entity := toStationEntity(s)
	entity.ID = 0
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toStationModel(entity), nil
}

func (r *StationRepository) GetByStationID(ctx context.Context, stationID string) (*model.Station, error) {
	var entity StationEntity
	err := r.Read(ctx).WithContext(ctx).Where("station_id = ?", stationID).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toStationModel(&entity), nil
}

func (r *StationRepository) List(ctx context.Context) ([]*model.Station, error) {
	var entities []*StationEntity
	if err := r.Read(ctx).WithContext(ctx).Order("created_on ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toStationModels(entities), nil
}

func (r *StationRepository) ListByAdmin(ctx context.Context, adminID int64) ([]*model.Station, error) {
	var entities []*StationEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("created_by_admin_id = ?", adminID).
		Order("created_on ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toStationModels(entities), nil
}

func (r *StationRepository) ListByIDs(ctx context.Context, stationIDs []string) ([]*model.Station, error) {
	if len(stationIDs) == 0 {
		return nil, nil
	}
	var entities []*StationEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("station_id IN ?", stationIDs).
		Order("created_on ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toStationModels(entities), nil
}

func (r *StationRepository) Update(ctx context.Context, stationID string, req model.StationUpdateRequest) (*model.Station, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Status != nil {
		updates["status"] = string(*req.Status)
	}
	if len(updates) > 0 {
		res := r.Write(ctx).WithContext(ctx).
			Model(&StationEntity{}).
			Where("station_id = ?", stationID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByStationID(ctx, stationID)
}

// Delete removes the station together with its devices and assignment in a
// single transaction.
func (r *StationRepository) Delete(ctx context.Context, stationID string) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		res := r.Write(ctx).Where("station_id = ?", stationID).Delete(&StationEntity{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := r.Write(ctx).Where("station_id = ?", stationID).Delete(&BowserEntity{}).Error; err != nil {
			return err
		}
		if err := r.Write(ctx).Where("station_id = ?", stationID).Delete(&StationaryEntity{}).Error; err != nil {
			return err
		}
		if err := r.Write(ctx).Where("station_id = ?", stationID).Delete(&TankEntity{}).Error; err != nil {
			return err
		}
		return r.Write(ctx).Where("station_id = ?", stationID).Delete(&AssignmentEntity{}).Error
	})
}
