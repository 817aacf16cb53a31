package repository

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	*pg.DB
}

func NewAssignmentRepository(db *pg.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db,
	}
}

// Replace assigns the station to a user, dropping any prior assignment for
// that station. A station carries at most one assignment, so reassignment is
// delete-then-insert inside one transaction.
func (r *AssignmentRepository) Replace(ctx context.Context, a *model.Assignment) (*model.Assignment, error) {
	entity := toAssignmentEntity(a)
	entity.ID = 0

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).
			Where("station_id = ?", a.StationID).
			Delete(&AssignmentEntity{}).Error; err != nil {
			return err
		}
		return r.Write(ctx).Create(entity).Error
	})
	if err != nil {
		return nil, err
	}
	return toAssignmentModel(entity), nil
}

func (r *AssignmentRepository) GetByStation(ctx context.Context, stationID string) (*model.Assignment, error) {
	var entity AssignmentEntity
	err := r.Read(ctx).WithContext(ctx).Where("station_id = ?", stationID).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAssignmentModel(&entity), nil
}

func (r *AssignmentRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Assignment, error) {
	var entities []*AssignmentEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assigned_on ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toAssignmentModels(entities), nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, stationID string) error {
	res := r.Write(ctx).WithContext(ctx).Where("station_id = ?", stationID).Delete(&AssignmentEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsForUserStation reports whether the user currently holds the station.
func (r *AssignmentRepository) ExistsForUserStation(ctx context.Context, userID int64, stationID string) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&AssignmentEntity{}).
		Where("user_id = ? AND station_id = ?", userID, stationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasActiveAdmin reports whether the station's assignment row links to an
// admin whose account is still active. No assignment row means no admin,
// regardless of who registered the station. Stored status is matched
// case-insensitively.
func (r *AssignmentRepository) HasActiveAdmin(ctx context.Context, stationID string) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Table("user_assignments AS ua").
		Joins("JOIN admins AS a ON a.id = ua.admin_id").
		Where("ua.station_id = ? AND LOWER(a.status) = ?", stationID, string(model.AccountStatusActive)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasActiveUser reports whether the station is assigned to a user whose
// account is still active. Stored status is matched case-insensitively.
func (r *AssignmentRepository) HasActiveUser(ctx context.Context, stationID string) (bool, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Table("user_assignments AS ua").
		Joins("JOIN users AS u ON u.id = ua.user_id").
		Where("ua.station_id = ? AND LOWER(u.status) = ?", stationID, string(model.AccountStatusActive)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
