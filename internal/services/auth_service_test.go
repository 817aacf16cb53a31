package services

import (
	"context"
	"testing"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	accounts := repository.NewAccountRepository(db)
	svc := NewAuthService(accounts, nil)
	ctx := context.Background()

	hash, err := HashPassword("secret")
	require.NoError(t, err)

	admin, err := accounts.CreateAdmin(ctx, &model.Admin{
		Name: "a", Email: "a@example.com", Password: hash, PortalID: "P001",
		Status: model.AccountStatusActive,
	})
	require.NoError(t, err)

	_, err = accounts.CreateUser(ctx, &model.User{
		Name: "u", Email: "u@example.com", Password: hash, PortalID: "U001",
		Status: model.AccountStatusInactive,
	})
	require.NoError(t, err)

	t.Run("valid credentials mint a token", func(t *testing.T) {
		token, err := svc.Login(ctx, model.RoleAdmin, "a@example.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.Equal(t, model.RoleAdmin, token.Role)
		require.NotNil(t, token.AdminID)
		assert.Equal(t, admin.ID, *token.AdminID)

		stored, err := accounts.FindToken(ctx, token.Token)
		require.NoError(t, err)
		assert.Equal(t, token.Token, stored.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, model.RoleAdmin, "a@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, model.RoleAdmin, "ghost@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("suspended account", func(t *testing.T) {
		_, err := svc.Login(ctx, model.RoleUser, "u@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong role namespace", func(t *testing.T) {
		_, err := svc.Login(ctx, model.RoleSuperAdmin, "a@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Logout(t *testing.T) {
	db := setupTestDB(t)
	accounts := repository.NewAccountRepository(db)
	svc := NewAuthService(accounts, nil)
	ctx := context.Background()

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	_, err = accounts.CreateAdmin(ctx, &model.Admin{
		Name: "a", Email: "a@example.com", Password: hash, PortalID: "P001",
		Status: model.AccountStatusActive,
	})
	require.NoError(t, err)

	token, err := svc.Login(ctx, model.RoleAdmin, "a@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token.Token))
	_, err = accounts.FindToken(ctx, token.Token)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Logging out twice is harmless.
	assert.NoError(t, svc.Logout(ctx, token.Token))
}
