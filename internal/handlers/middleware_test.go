package handlers

import (
	"context"
	"testing"

	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
	"github.com/stretchr/testify/assert"
)

func adminActor() access.Actor {
	return access.Actor{
		Role:  model.RoleAdmin,
		Admin: &model.Admin{ID: 7, Name: "Asha", PortalID: "P1", Status: model.AccountStatusActive},
	}
}

func userActor() access.Actor {
	return access.Actor{
		Role: model.RoleUser,
		User: &model.User{ID: 3, Name: "Omar", Status: model.AccountStatusActive},
	}
}

type stubResolver struct {
	actor access.Actor
	err   error
	seen  string
}

func (r *stubResolver) Resolve(_ context.Context, token string) (access.Actor, error) {
	r.seen = token
	if r.err != nil {
		return access.Actor{}, r.err
	}
	return r.actor, nil
}

func TestAuthenticator_Wrap(t *testing.T) {
	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		resolver := &stubResolver{actor: adminActor()}
		auth := NewAuthenticator(resolver)

		var got access.Actor
		handler := auth.Wrap(func(ctx *xhttp.RequestCtx, actor access.Actor) {
			got = actor
			writeJSON(ctx, xhttp.StatusOK, map[string]string{"ok": "1"})
		})

		ctx := setupTestContext("GET", "/stations", nil)
		ctx.Request.Header.Set("Authorization", "Bearer tok-123")
		handler(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "tok-123", resolver.seen)
		assert.Equal(t, model.RoleAdmin, got.Role)
	})

	t.Run("missing token answers 401", func(t *testing.T) {
		resolver := &stubResolver{err: access.ErrUnauthorized}
		auth := NewAuthenticator(resolver)

		called := false
		handler := auth.Wrap(func(ctx *xhttp.RequestCtx, actor access.Actor) {
			called = true
		})

		ctx := setupTestContext("GET", "/stations", nil)
		handler(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
		assert.False(t, called)
	})

	t.Run("non-bearer authorization header is ignored", func(t *testing.T) {
		resolver := &stubResolver{actor: adminActor()}
		auth := NewAuthenticator(resolver)

		handler := auth.Wrap(func(ctx *xhttp.RequestCtx, actor access.Actor) {})

		ctx := setupTestContext("GET", "/stations", nil)
		ctx.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		handler(ctx)

		assert.Equal(t, "", resolver.seen)
	})
}
