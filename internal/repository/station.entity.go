package repository

import (
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
)

type StationEntity struct {
	ID               int64     `db:"id"                  gorm:"primaryKey;autoIncrement;column:id"`
	Name             string    `db:"name"                gorm:"column:name;not null"`
	StationID        string    `db:"station_id"          gorm:"column:station_id;not null;uniqueIndex"`
	Location         string    `db:"location"            gorm:"column:location;not null"`
	Description      string    `db:"description"         gorm:"column:description"`
	Category         string    `db:"category"            gorm:"column:category"`
	CreatedByAdminID *int64    `db:"created_by_admin_id" gorm:"column:created_by_admin_id;index"`
	Status           string    `db:"status"              gorm:"column:status;not null;default:active"`
	CreatedOn        time.Time `db:"created_on"          gorm:"column:created_on;autoCreateTime"`
}

func (StationEntity) TableName() string { return "stations" }

func toStationEntity(s *model.Station) *StationEntity {
	if s == nil {
		return nil
	}
	return &StationEntity{
		ID:               s.ID,
		Name:             s.Name,
		StationID:        s.StationID,
		Location:         s.Location,
		Description:      s.Description,
		Category:         s.Category,
		CreatedByAdminID: s.CreatedByAdminID,
		Status:           string(s.Status),
		CreatedOn:        s.CreatedOn,
	}
}

func toStationModel(e *StationEntity) *model.Station {
	if e == nil {
		return nil
	}
	return &model.Station{
		ID:               e.ID,
		Name:             e.Name,
		StationID:        e.StationID,
		Location:         e.Location,
		Description:      e.Description,
		Category:         e.Category,
		CreatedByAdminID: e.CreatedByAdminID,
		Status:           model.StationStatus(e.Status),
		CreatedOn:        e.CreatedOn,
	}
}

func toStationModels(entities []*StationEntity) []*model.Station {
	models := make([]*model.Station, len(entities))
	for i, e := range entities {
		models[i] = toStationModel(e)
	}
	return models
}
