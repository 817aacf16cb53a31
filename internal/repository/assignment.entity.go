package repository

import (
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
)

type AssignmentEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	UserID     int64     `db:"user_id"     gorm:"column:user_id;not null;index"`
	AdminID    int64     `db:"admin_id"    gorm:"column:admin_id;not null;index"`
	AdminName  *string   `db:"admin_name"  gorm:"column:admin_name"`
	StationID  string    `db:"station_id"  gorm:"column:station_id;not null;uniqueIndex"`
	AssignedOn time.Time `db:"assigned_on" gorm:"column:assigned_on;autoCreateTime"`
}

func (AssignmentEntity) TableName() string { return "user_assignments" }

func toAssignmentEntity(a *model.Assignment) *AssignmentEntity {
	if a == nil {
		return nil
	}
	return &AssignmentEntity{
		ID:         a.ID,
		UserID:     a.UserID,
		AdminID:    a.AdminID,
		AdminName:  a.AdminName,
		StationID:  a.StationID,
		AssignedOn: a.AssignedOn,
	}
}

func toAssignmentModel(e *AssignmentEntity) *model.Assignment {
	if e == nil {
		return nil
	}
	return &model.Assignment{
		ID:         e.ID,
		UserID:     e.UserID,
		AdminID:    e.AdminID,
		AdminName:  e.AdminName,
		StationID:  e.StationID,
		AssignedOn: e.AssignedOn,
	}
}

func toAssignmentModels(entities []*AssignmentEntity) []*model.Assignment {
	models := make([]*model.Assignment, len(entities))
	for i, e := range entities {
		models[i] = toAssignmentModel(e)
	}
	return models
}
