package repository

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"gorm.io/gorm"
)

type AccountRepository struct {
	*pg.DB
}

func NewAccountRepository(db *pg.DB) *AccountRepository {
	return &AccountRepository{
		db,
	}
}

func (r *AccountRepository) CreateSuperAdmin(ctx context.Context, a *model.SuperAdmin) (*model.SuperAdmin, error) {
	entity := &SuperAdminEntity{
		Name:     a.Name,
		Email:    a.Email,
		Password: a.Password,
		Status:   string(a.Status),
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toSuperAdminModel(entity), nil
}

func (r *AccountRepository) CreateAdmin(ctx context.Context, a *model.Admin) (*model.Admin, error) {
	entity := &AdminEntity{
		SuperAdminID: a.SuperAdminID,
		Name:         a.Name,
		Email:        a.Email,
		Password:     a.Password,
		PortalID:     a.PortalID,
		Status:       string(a.Status),
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toAdminModel(entity), nil
}

func (r *AccountRepository) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	entity := &UserEntity{
		AdminID:  u.AdminID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		PortalID: u.PortalID,
		Status:   string(u.Status),
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toUserModel(entity), nil
}

func (r *AccountRepository) FindSuperAdminByEmail(ctx context.Context, email string) (*model.SuperAdmin, error) {
	var entity SuperAdminEntity
	err := r.Read(ctx).WithContext(ctx).Where("email = ?", email).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toSuperAdminModel(&entity), nil
}

func (r *AccountRepository) FindAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var entity AdminEntity
	err := r.Read(ctx).WithContext(ctx).Where("email = ?", email).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAdminModel(&entity), nil
}

func (r *AccountRepository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).Where("email = ?", email).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUserModel(&entity), nil
}

func (r *AccountRepository) GetAdmin(ctx context.Context, id int64) (*model.Admin, error) {
	var entity AdminEntity
	err := r.Read(ctx).WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAdminModel(&entity), nil
}

func (r *AccountRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUserModel(&entity), nil
}

func (r *AccountRepository) CreateToken(ctx context.Context, t *model.AuthToken) (*model.AuthToken, error) {
	entity := &AuthTokenEntity{
		Token:        t.Token,
		Role:         string(t.Role),
		SuperAdminID: t.SuperAdminID,
		AdminID:      t.AdminID,
		UserID:       t.UserID,
	}
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toAuthTokenModel(entity), nil
}

func (r *AccountRepository) FindToken(ctx context.Context, token string) (*model.AuthToken, error) {
	var entity AuthTokenEntity
	err := r.Read(ctx).WithContext(ctx).Where("token = ?", token).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAuthTokenModel(&entity), nil
}

func (r *AccountRepository) DeleteToken(ctx context.Context, token string) error {
	res := r.Write(ctx).WithContext(ctx).Where("token = ?", token).Delete(&AuthTokenEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
