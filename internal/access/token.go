package access

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/ssafuel/station-gateway/pkg/logger"
	"github.com/ssafuel/station-gateway/pkg/redis"
)

// TokenResolver turns a bearer token into an Actor. Resolved actors are
// cached in redis for the token TTL so the hot path skips three table
// lookups; the cache is read-through and failures degrade to the database.
type TokenResolver struct {
	accounts *repository.AccountRepository
	cache    redis.Adapter
	ttl      time.Duration
}

func NewTokenResolver(accounts *repository.AccountRepository, cache redis.Adapter, ttl time.Duration) *TokenResolver {
	return &TokenResolver{
		accounts: accounts,
		cache:    cache,
		ttl:      ttl,
	}
}

func (r *TokenResolver) Resolve(ctx context.Context, token string) (Actor, error) {
	if token == "" {
		return Actor{}, ErrUnauthorized
	}

	if r.cache != nil {
		if raw, err := r.cache.Get(cacheKey(token)); err == nil {
			var actor Actor
			if err := json.Unmarshal(raw, &actor); err == nil {
				return actor, nil
			}
			logger.Warn("token cache holds undecodable entry, falling back", "token_prefix", prefix(token))
		}
	}

	record, err := r.accounts.FindToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return Actor{}, ErrUnauthorized
	}
	if err != nil {
		return Actor{}, err
	}

	actor, err := r.load(ctx, record)
	if err != nil {
		return Actor{}, err
	}

	if r.cache != nil {
		if raw, err := json.Marshal(actor); err == nil {
			if err := r.cache.Set(cacheKey(token), raw, r.ttl); err != nil {
				logger.Warn("token cache write failed", "error", err)
			}
		}
	}

	return actor, nil
}

// Invalidate drops the cached actor for a token, used on logout.
func (r *TokenResolver) Invalidate(token string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(cacheKey(token)); err != nil && !errors.Is(err, redis.NilError) {
		logger.Warn("token cache invalidate failed", "error", err)
	}
}

func (r *TokenResolver) load(ctx context.Context, record *model.AuthToken) (Actor, error) {
	switch record.Role {
	case model.RoleSuperAdmin:
		if record.SuperAdminID == nil {
			return Actor{}, ErrUnauthorized
		}
		// Superadmin rows are few; no dedicated Get, reuse the token row.
		return Actor{Role: model.RoleSuperAdmin, SuperAdmin: &model.SuperAdmin{ID: *record.SuperAdminID}}, nil

	case model.RoleAdmin:
		if record.AdminID == nil {
			return Actor{}, ErrUnauthorized
		}
		admin, err := r.accounts.GetAdmin(ctx, *record.AdminID)
		if errors.Is(err, repository.ErrNotFound) {
			return Actor{}, ErrUnauthorized
		}
		if err != nil {
			return Actor{}, err
		}
		if admin.Status != model.AccountStatusActive {
			return Actor{}, ErrUnauthorized
		}
		return Actor{Role: model.RoleAdmin, Admin: admin}, nil

	case model.RoleUser:
		if record.UserID == nil {
			return Actor{}, ErrUnauthorized
		}
		user, err := r.accounts.GetUser(ctx, *record.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return Actor{}, ErrUnauthorized
		}
		if err != nil {
			return Actor{}, err
		}
		if user.Status != model.AccountStatusActive {
			return Actor{}, ErrUnauthorized
		}
		return Actor{Role: model.RoleUser, User: user}, nil
	}

	return Actor{}, ErrUnauthorized
}

func cacheKey(token string) string {
	return "auth:token:" + token
}

func prefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
