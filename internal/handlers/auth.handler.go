package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
)

type AuthAPI interface {
	Login(ctx context.Context, role model.Role, email, password string) (*model.AuthToken, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	svc AuthAPI
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler, auth *Authenticator) {
	e.POST("/auth/login", h.Login)
	e.POST("/auth/logout", auth.Wrap(h.Logout))
}

func NewAuthHandler(authService AuthAPI) *AuthHandler {
	return &AuthHandler{
		svc: authService,
	}
}

type loginRequest struct {
	Role     model.Role `json:"role"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	Role  model.Role `json:"role"`
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(ctx, xhttp.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.svc.Login(ctx, req.Role, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, loginResponse{Token: token.Token, Role: token.Role})
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx, _ access.Actor) {
	if err := h.svc.Logout(ctx, bearerToken(ctx)); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "logged out"})
}
