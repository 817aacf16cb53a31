package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, role model.Role, email, password string) (*model.AuthToken, error) {
	args := m.Called(ctx, role, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthToken), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials answer a token", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, model.RoleAdmin, "asha@ssa.example", "pw").
			Return(&model.AuthToken{Token: "tok-1", Role: model.RoleAdmin}, nil)

		body, _ := json.Marshal(loginRequest{Role: model.RoleAdmin, Email: "asha@ssa.example", Password: "pw"})
		ctx := setupTestContext("POST", "/auth/login", body)
		h.Login(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var resp loginResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "tok-1", resp.Token)
		assert.Equal(t, model.RoleAdmin, resp.Role)
	})

	t.Run("bad credentials answer 401", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, model.RoleAdmin, "asha@ssa.example", "nope").
			Return(nil, services.ErrInvalidCredentials)

		body, _ := json.Marshal(loginRequest{Role: model.RoleAdmin, Email: "asha@ssa.example", Password: "nope"})
		ctx := setupTestContext("POST", "/auth/login", body)
		h.Login(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
	})

	t.Run("missing fields answer 400", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc)

		ctx := setupTestContext("POST", "/auth/login", []byte(`{"role":"admin"}`))
		h.Login(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Logout", mock.Anything, "tok-1").Return(nil)

	ctx := setupTestContext("POST", "/auth/logout", nil)
	ctx.Request.Header.Set("Authorization", "Bearer tok-1")
	h.Logout(ctx, adminActor())

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}
