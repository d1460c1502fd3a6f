package options

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"storeboost/internal/settings"
)

// CachedStore is a read-through wrapper around another Store. Writes go
// through to the backend and refresh the cache, so a single process sees
// its own writes immediately; cross-process staleness is bounded by ttl.
type CachedStore struct {
	inner Store
	cache *gocache.Cache
}

func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) Get(ctx context.Context, name string) (settings.Map, error) {
	if cached, found := s.cache.Get(name); found {
		return settings.Clone(cached.(settings.Map)), nil
	}
	value, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, settings.Clone(value), gocache.DefaultExpiration)
	return value, nil
}

func (s *CachedStore) Set(ctx context.Context, name string, value settings.Map) error {
	if err := s.inner.Set(ctx, name, value); err != nil {
		return err
	}
	s.cache.Set(name, settings.Clone(value), gocache.DefaultExpiration)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, name string) error {
	if err := s.inner.Delete(ctx, name); err != nil {
		return err
	}
	s.cache.Delete(name)
	return nil
}
