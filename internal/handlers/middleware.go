package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/services"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
	"github.com/ssafuel/station-gateway/pkg/logger"
)

// ActorResolver turns a bearer token into the calling account.
type ActorResolver interface {
	Resolve(ctx context.Context, token string) (access.Actor, error)
}

// AuthedHandler is a route handler that requires an authenticated actor.
type AuthedHandler func(ctx *xhttp.RequestCtx, actor access.Actor)

// Authenticator wraps routes that need a resolved actor. Unauthenticated
// requests are rejected before the handler runs.
type Authenticator struct {
	resolver ActorResolver
}

func NewAuthenticator(resolver ActorResolver) *Authenticator {
	return &Authenticator{resolver: resolver}
}

func (a *Authenticator) Wrap(next AuthedHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		actor, err := a.resolver.Resolve(ctx, bearerToken(ctx))
		if errors.Is(err, access.ErrUnauthorized) {
			writeError(ctx, xhttp.StatusUnauthorized, err.Error())
			return
		}
		if err != nil {
			logger.Error("[handlers] token resolution failed", "error", err)
			writeError(ctx, xhttp.StatusInternalServerError, "internal error")
			return
		}
		next(ctx, actor)
	}
}

func bearerToken(ctx *xhttp.RequestCtx) string {
	h := string(ctx.Request.Header.Peek("Authorization"))
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps service-layer failures onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged with the request path.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case services.IsValidationError(err):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		writeError(ctx, xhttp.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(ctx, xhttp.StatusUnauthorized, err.Error())
	case errors.Is(err, access.ErrUnauthorized):
		writeError(ctx, xhttp.StatusUnauthorized, err.Error())
	default:
		logger.Error("[handlers] request failed", "path", string(ctx.Path()), "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
	}
}

func param(ctx *xhttp.RequestCtx, name string) string {
	if v, ok := ctx.UserValue(name).(string); ok {
		return v
	}
	return ""
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
