package model

import "time"

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

type SuperAdmin struct {
	ID        int64         `json:"super_admin_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Password  string        `json:"-"`
	Status    AccountStatus `json:"status"`
	CreatedOn time.Time     `json:"created_on"`
}

type Admin struct {
	ID           int64         `json:"admin_id"`
	SuperAdminID *int64        `json:"super_admin_id,omitempty"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Password     string        `json:"-"`
	PortalID     string        `json:"portal_id"`
	Status       AccountStatus `json:"status"`
	CreatedOn    time.Time     `json:"created_on"`
}

type User struct {
	ID        int64         `json:"id"`
	AdminID   *int64        `json:"admin_id,omitempty"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Password  string        `json:"-"`
	PortalID  string        `json:"portal_id"`
	Status    AccountStatus `json:"status"`
	CreatedOn time.Time     `json:"created_on"`
}

// AuthToken is a bearer token bound to exactly one actor, depending on Role.
type AuthToken struct {
	ID           int64     `json:"id"`
	Token        string    `json:"token"`
	Role         Role      `json:"role"`
	SuperAdminID *int64    `json:"super_admin_id,omitempty"`
	AdminID      *int64    `json:"admin_id,omitempty"`
	UserID       *int64    `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
