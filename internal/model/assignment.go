package model

import "time"

// Assignment is the current binding of a station to an operating user and the
// admin who made the binding. A station has at most one assignment;
// reassigning replaces the prior row (no history).
type Assignment struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	AdminID    int64     `json:"admin_id"`
	AdminName  *string   `json:"admin_name,omitempty"`
	StationID  string    `json:"station_id"`
	AssignedOn time.Time `json:"assigned_on"`
}
