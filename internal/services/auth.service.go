package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AccountStore interface {
	FindSuperAdminByEmail(ctx context.Context, email string) (*model.SuperAdmin, error)
	FindAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateToken(ctx context.Context, t *model.AuthToken) (*model.AuthToken, error)
	DeleteToken(ctx context.Context, token string) error
}

type AuthService struct {
	accounts AccountStore
	resolver *access.TokenResolver
}

func NewAuthService(accounts AccountStore, resolver *access.TokenResolver) *AuthService {
	return &AuthService{
		accounts: accounts,
		resolver: resolver,
	}
}

// Login checks credentials for the given role and mints a bearer token.
// Unknown accounts, suspended accounts, and wrong passwords all come back as
// the same error.
func (s *AuthService) Login(ctx context.Context, role model.Role, email, password string) (*model.AuthToken, error) {
	token := &model.AuthToken{
		Token: uuid.NewString(),
		Role:  role,
	}

	switch role {
	case model.RoleSuperAdmin:
		sa, err := s.accounts.FindSuperAdminByEmail(ctx, email)
		if err != nil {
			return nil, loginErr(err)
		}
		if err := verify(password, sa.Password, sa.Status); err != nil {
			return nil, err
		}
		token.SuperAdminID = &sa.ID

	case model.RoleAdmin:
		admin, err := s.accounts.FindAdminByEmail(ctx, email)
		if err != nil {
			return nil, loginErr(err)
		}
		if err := verify(password, admin.Password, admin.Status); err != nil {
			return nil, err
		}
		token.AdminID = &admin.ID

	case model.RoleUser:
		user, err := s.accounts.FindUserByEmail(ctx, email)
		if err != nil {
			return nil, loginErr(err)
		}
		if err := verify(password, user.Password, user.Status); err != nil {
			return nil, err
		}
		token.UserID = &user.ID

	default:
		return nil, ErrInvalidCredentials
	}

	return s.accounts.CreateToken(ctx, token)
}

// Logout discards the token and its cached actor.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.resolver != nil {
		s.resolver.Invalidate(token)
	}
	err := s.accounts.DeleteToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// HashPassword prepares a password for storage.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func verify(password, hash string, status model.AccountStatus) error {
	if status != model.AccountStatusActive {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func loginErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidCredentials
	}
	return err
}
