package model

import (
	"errors"
	"time"
)

type DeviceStatus string

const (
	DeviceStatusActive   DeviceStatus = "active"
	DeviceStatusInactive DeviceStatus = "inactive"
)

// DeviceKind identifies the physical device category. The config codes are a
// firmware contract: BU (bowser unit), SU (stationary unit), SUT (tank).
type DeviceKind string

const (
	DeviceKindBowser     DeviceKind = "bowser"
	DeviceKindStationary DeviceKind = "stationary"
	DeviceKindTank       DeviceKind = "tank"
)

func (k DeviceKind) ConfigCode() string {
	switch k {
	case DeviceKindBowser:
		return "BU"
	case DeviceKindStationary:
		return "SU"
	case DeviceKindTank:
		return "SUT"
	}
	return ""
}

var ErrInvalidMqttID = errors.New("mqtt_id must be exactly 10 alphanumeric characters")

// ValidateMqttID enforces the messaging-channel id format shared by all
// device categories.
func ValidateMqttID(v string) error {
	if len(v) != 10 {
		return ErrInvalidMqttID
	}
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return ErrInvalidMqttID
		}
	}
	return nil
}

type Bowser struct {
	ID          int64        `json:"id"`
	StationID   string       `json:"station_id"`
	BowserID    string       `json:"bowser_id"`
	Name        string       `json:"bowser_name"`
	Description string       `json:"bowser_description"`
	MqttID      string       `json:"mqtt_id"`
	Status      DeviceStatus `json:"status"`
	CreatedOn   time.Time    `json:"created_on"`
}

type Stationary struct {
	ID           int64        `json:"id"`
	StationID    string       `json:"station_id"`
	StationaryID string       `json:"stationary_id"`
	Name         string       `json:"stationary_name"`
	Description  string       `json:"stationary_description"`
	MqttID       string       `json:"mqtt_id"`
	Status       DeviceStatus `json:"status"`
	CreatedOn    time.Time    `json:"created_on"`
}

type Tank struct {
	ID          int64        `json:"id"`
	StationID   string       `json:"station_id"`
	TankID      string       `json:"tank_id"`
	Name        string       `json:"tank_name"`
	Description string       `json:"tank_description"`
	MqttID      string       `json:"mqtt_id"`
	PumpCount   int          `json:"pump_count"`
	Status      DeviceStatus `json:"status"`
	CreatedOn   time.Time    `json:"created_on"`
}

// DeviceUpdateRequest is the mutable subset of a device record. Nil fields
// are left unchanged (partial update).
type DeviceUpdateRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	MqttID      *string       `json:"mqtt_id"`
	Status      *DeviceStatus `json:"status"`
	PumpCount   *int          `json:"pump_count"`
}

func (r DeviceUpdateRequest) Validate() error {
	if r.MqttID != nil {
		if err := ValidateMqttID(*r.MqttID); err != nil {
			return err
		}
	}
	if r.Status != nil && *r.Status != DeviceStatusActive && *r.Status != DeviceStatusInactive {
		return errors.New("status must be active or inactive")
	}
	if r.PumpCount != nil && (*r.PumpCount < 1 || *r.PumpCount > 4) {
		return errors.New("pump_count must be between 1 and 4")
	}
	return nil
}
