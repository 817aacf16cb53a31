package repository

import (
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
)

type SuperAdminEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	Email     string    `db:"email"      gorm:"column:email;not null;uniqueIndex"`
	Password  string    `db:"password"   gorm:"column:password;not null"`
	Status    string    `db:"status"     gorm:"column:status;not null;default:active"`
	CreatedOn time.Time `db:"created_on" gorm:"column:created_on;autoCreateTime"`
}

func (SuperAdminEntity) TableName() string { return "super_admins" }

type AdminEntity struct {
	ID           int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	SuperAdminID *int64    `db:"super_admin_id" gorm:"column:super_admin_id;index"`
	Name         string    `db:"name"           gorm:"column:name;not null"`
	Email        string    `db:"email"          gorm:"column:email;not null;uniqueIndex"`
	Password     string    `db:"password"       gorm:"column:password;not null"`
	PortalID     string    `db:"portal_id"      gorm:"column:portal_id;not null;uniqueIndex"`
	Status       string    `db:"status"         gorm:"column:status;not null;default:active"`
	CreatedOn    time.Time `db:"created_on"     gorm:"column:created_on;autoCreateTime"`
}

func (AdminEntity) TableName() string { return "admins" }

type UserEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	AdminID   *int64    `db:"admin_id"   gorm:"column:admin_id;index"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	Email     string    `db:"email"      gorm:"column:email;not null;uniqueIndex"`
	Password  string    `db:"password"   gorm:"column:password;not null"`
	PortalID  string    `db:"portal_id"  gorm:"column:portal_id;not null;uniqueIndex"`
	Status    string    `db:"status"     gorm:"column:status;not null;default:active"`
	CreatedOn time.Time `db:"created_on" gorm:"column:created_on;autoCreateTime"`
}

func (UserEntity) TableName() string { return "users" }

type AuthTokenEntity struct {
	ID           int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Token        string    `db:"token"          gorm:"column:token;not null;uniqueIndex"`
	Role         string    `db:"role"           gorm:"column:role;not null"`
	SuperAdminID *int64    `db:"super_admin_id" gorm:"column:super_admin_id"`
	AdminID      *int64    `db:"admin_id"       gorm:"column:admin_id"`
	UserID       *int64    `db:"user_id"        gorm:"column:user_id"`
	CreatedAt    time.Time `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
}

func (AuthTokenEntity) TableName() string { return "auth_tokens" }

func toSuperAdminModel(e *SuperAdminEntity) *model.SuperAdmin {
	if e == nil {
		return nil
	}
	return &model.SuperAdmin{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Password:  e.Password,
		Status:    model.AccountStatus(e.Status),
		CreatedOn: e.CreatedOn,
	}
}

func toAdminModel(e *AdminEntity) *model.Admin {
	if e == nil {
		return nil
	}
	return &model.Admin{
		ID:           e.ID,
		SuperAdminID: e.SuperAdminID,
		Name:         e.Name,
		Email:        e.Email,
		Password:     e.Password,
		PortalID:     e.PortalID,
		Status:       model.AccountStatus(e.Status),
		CreatedOn:    e.CreatedOn,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:        e.ID,
		AdminID:   e.AdminID,
		Name:      e.Name,
		Email:     e.Email,
		Password:  e.Password,
		PortalID:  e.PortalID,
		Status:    model.AccountStatus(e.Status),
		CreatedOn: e.CreatedOn,
	}
}

func toAuthTokenModel(e *AuthTokenEntity) *model.AuthToken {
	if e == nil {
		return nil
	}
	return &model.AuthToken{
		ID:           e.ID,
		Token:        e.Token,
		Role:         model.Role(e.Role),
		SuperAdminID: e.SuperAdminID,
		AdminID:      e.AdminID,
		UserID:       e.UserID,
		CreatedAt:    e.CreatedAt,
	}
}
