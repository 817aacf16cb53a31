package model

import (
	"errors"
	"time"
)

type StationStatus string

const (
	StationStatusActive   StationStatus = "active"
	StationStatusInactive StationStatus = "inactive"
)

// Station owns its devices; deleting a station hard-deletes its devices and
// assignments.
type Station struct {
	ID               int64         `json:"id"`
	Name             string        `json:"station_name"`
	StationID        string        `json:"station_id"`
	Location         string        `json:"location"`
	Description      string        `json:"description"`
	Category         string        `json:"category"`
	CreatedByAdminID *int64        `json:"created_by_admin_id,omitempty"`
	Status           StationStatus `json:"status"`
	CreatedOn        time.Time     `json:"created_on"`
}

type StationCreateRequest struct {
	Name        string `json:"station_name"`
	StationID   string `json:"station_id"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (r StationCreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("station_name is required")
	}
	if r.StationID == "" {
		return errors.New("station_id is required")
	}
	if r.Location == "" {
		return errors.New("location is required")
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	if r.Category == "" {
		return errors.New("category is required")
	}
	return nil
}

type StationUpdateRequest struct {
	Name        *string        `json:"station_name"`
	Location    *string        `json:"location"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Status      *StationStatus `json:"status"`
}
