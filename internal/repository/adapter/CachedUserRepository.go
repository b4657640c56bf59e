package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cacheport "github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/cache/port"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	repository "github.com/LorisBarbisan/gig-event-connect-sub002/internal/repository/port"
)

// CachedUserRepository is a read-through cache over another UserRepository.
// Only identity data is cached; unread counts are always recomputed from the
// store and never pass through here.
type CachedUserRepository struct {
	next  repository.UserRepository
	cache cacheport.Cache
	ttl   time.Duration
}

var _ repository.UserRepository = (*CachedUserRepository)(nil)

func NewCachedUserRepository(next repository.UserRepository, cache cacheport.Cache, ttl time.Duration) *CachedUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedUserRepository{next: next, cache: cache, ttl: ttl}
}

func (r *CachedUserRepository) Get(ctx context.Context, id int64) (messaging.User, error) {
	key := userCacheKey(id)

	if raw, err := r.cache.Get(ctx, key); err == nil {
		var u messaging.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			return u, nil
		}
		// Corrupt entry: drop it and fall through to the source of truth.
		_, _ = r.cache.Del(ctx, key)
	} else if !errors.Is(err, cacheport.ErrMiss) {
		// Cache outage must not break message delivery; read the store.
		return r.next.Get(ctx, id)
	}

	u, err := r.next.Get(ctx, id)
	if err != nil {
		return messaging.User{}, err
	}

	if raw, err := json.Marshal(u); err == nil {
		_ = r.cache.Set(ctx, key, string(raw), r.ttl)
	}
	return u, nil
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}
