package repository

import (
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
)

type BowserEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	StationID   string    `db:"station_id"  gorm:"column:station_id;not null;index"`
	BowserID    string    `db:"bowser_id"   gorm:"column:bowser_id;not null;uniqueIndex"`
	Name        string    `db:"name"        gorm:"column:name;not null"`
	Description string    `db:"description" gorm:"column:description"`
	MqttID      string    `db:"mqtt_id"     gorm:"column:mqtt_id;not null;index"`
	Status      string    `db:"status"      gorm:"column:status;not null;default:active"`
	CreatedOn   time.Time `db:"created_on"  gorm:"column:created_on;autoCreateTime"`
}

func (BowserEntity) TableName() string { return "bowsers" }

type StationaryEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	StationID    string    `db:"station_id"    gorm:"column:station_id;not null;index"`
	StationaryID string    `db:"stationary_id" gorm:"column:stationary_id;not null;uniqueIndex"`
	Name         string    `db:"name"          gorm:"column:name;not null"`
	Description  string    `db:"description"   gorm:"column:description"`
	MqttID       string    `db:"mqtt_id"       gorm:"column:mqtt_id;not null;index"`
	Status       string    `db:"status"        gorm:"column:status;not null;default:active"`
	CreatedOn    time.Time `db:"created_on"    gorm:"column:created_on;autoCreateTime"`
}

func (StationaryEntity) TableName() string { return "stationaries" }

type TankEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	StationID   string    `db:"station_id"  gorm:"column:station_id;not null;index"`
	TankID      string    `db:"tank_id"     gorm:"column:tank_id;not null;uniqueIndex"`
	Name        string    `db:"name"        gorm:"column:name;not null"`
	Description string    `db:"description" gorm:"column:description"`
	MqttID      string    `db:"mqtt_id"     gorm:"column:mqtt_id;not null;index"`
	PumpCount   int       `db:"pump_count"  gorm:"column:pump_count;not null;default:1"`
	Status      string    `db:"status"      gorm:"column:status;not null;default:active"`
	CreatedOn   time.Time `db:"created_on"  gorm:"column:created_on;autoCreateTime"`
}

func (TankEntity) TableName() string { return "tanks" }

func toBowserEntity(b *model.Bowser) *BowserEntity {
	if b == nil {
		return nil
	}
	return &BowserEntity{
		ID:          b.ID,
		StationID:   b.StationID,
		BowserID:    b.BowserID,
		Name:        b.Name,
		Description: b.Description,
		MqttID:      b.MqttID,
		Status:      string(b.Status),
		CreatedOn:   b.CreatedOn,
	}
}

func toBowserModel(e *BowserEntity) *model.Bowser {
	if e == nil {
		return nil
	}
	return &model.Bowser{
		ID:          e.ID,
		StationID:   e.StationID,
		BowserID:    e.BowserID,
		Name:        e.Name,
		Description: e.Description,
		MqttID:      e.MqttID,
		Status:      model.DeviceStatus(e.Status),
		CreatedOn:   e.CreatedOn,
	}
}

func toBowserModels(entities []*BowserEntity) []*model.Bowser {
	models := make([]*model.Bowser, len(entities))
	for i, e := range entities {
		models[i] = toBowserModel(e)
	}
	return models
}

func toStationaryEntity(s *model.Stationary) *StationaryEntity {
	if s == nil {
		return nil
	}
	return &StationaryEntity{
		ID:           s.ID,
		StationID:    s.StationID,
		StationaryID: s.StationaryID,
		Name:         s.Name,
		Description:  s.Description,
		MqttID:       s.MqttID,
		Status:       string(s.Status),
		CreatedOn:    s.CreatedOn,
	}
}

func toStationaryModel(e *StationaryEntity) *model.Stationary {
	if e == nil {
		return nil
	}
	return &model.Stationary{
		ID:           e.ID,
		StationID:    e.StationID,
		StationaryID: e.StationaryID,
		Name:         e.Name,
		Description:  e.Description,
		MqttID:       e.MqttID,
		Status:       model.DeviceStatus(e.Status),
		CreatedOn:    e.CreatedOn,
	}
}

func toStationaryModels(entities []*StationaryEntity) []*model.Stationary {
	models := make([]*model.Stationary, len(entities))
	for i, e := range entities {
		models[i] = toStationaryModel(e)
	}
	return models
}

func toTankEntity(t *model.Tank) *TankEntity {
	if t == nil {
		return nil
	}
	return &TankEntity{
		ID:          t.ID,
		StationID:   t.StationID,
		TankID:      t.TankID,
		Name:        t.Name,
		Description: t.Description,
		MqttID:      t.MqttID,
		PumpCount:   t.PumpCount,
		Status:      string(t.Status),
		CreatedOn:   t.CreatedOn,
	}
}

func toTankModel(e *TankEntity) *model.Tank {
	if e == nil {
		return nil
	}
	return &model.Tank{
		ID:          e.ID,
		StationID:   e.StationID,
		TankID:      e.TankID,
		Name:        e.Name,
		Description: e.Description,
		MqttID:      e.MqttID,
		PumpCount:   e.PumpCount,
		Status:      model.DeviceStatus(e.Status),
		CreatedOn:   e.CreatedOn,
	}
}

func toTankModels(entities []*TankEntity) []*model.Tank {
	models := make([]*model.Tank, len(entities))
	for i, e := range entities {
		models[i] = toTankModel(e)
	}
	return models
}
