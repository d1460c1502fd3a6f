package options

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storeboost/internal/settings"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.Get(ctx, "feature_order_bump")
	assert.NoError(t, err)
	assert.Equal(t, settings.Map{}, got)

	err = store.Set(ctx, "feature_order_bump", settings.Map{"enabled": true})
	assert.NoError(t, err)

	got, err = store.Get(ctx, "feature_order_bump")
	assert.NoError(t, err)
	assert.Equal(t, true, got["enabled"])

	err = store.Delete(ctx, "feature_order_bump")
	assert.NoError(t, err)

	got, _ = store.Get(ctx, "feature_order_bump")
	assert.Equal(t, settings.Map{}, got)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "opts", settings.Map{"limit": 3})

	first, _ := store.Get(ctx, "opts")
	first["limit"] = 99

	second, _ := store.Get(ctx, "opts")
	assert.Equal(t, float64(3), second["limit"])
}

// failingStore counts reads so cache hit behavior is observable.
type countingStore struct {
	inner Store
	reads int
	fail  bool
}

func (s *countingStore) Get(ctx context.Context, name string) (settings.Map, error) {
	s.reads++
	if s.fail {
		return nil, errors.New("backend down")
	}
	return s.inner.Get(ctx, name)
}

func (s *countingStore) Set(ctx context.Context, name string, value settings.Map) error {
	return s.inner.Set(ctx, name, value)
}

func (s *countingStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

func TestCachedStoreReadThrough(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore()}
	cached := NewCachedStore(backend, time.Minute)
	ctx := context.Background()

	_ = cached.Set(ctx, "opts", settings.Map{"enabled": true})

	for i := 0; i < 3; i++ {
		got, err := cached.Get(ctx, "opts")
		assert.NoError(t, err)
		assert.Equal(t, true, got["enabled"])
	}

	// Set primed the cache; reads never hit the backend.
	assert.Equal(t, 0, backend.reads)
}

func TestCachedStoreDeleteEvicts(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore()}
	cached := NewCachedStore(backend, time.Minute)
	ctx := context.Background()

	_ = cached.Set(ctx, "opts", settings.Map{"enabled": true})
	_ = cached.Delete(ctx, "opts")

	got, err := cached.Get(ctx, "opts")
	assert.NoError(t, err)
	assert.Equal(t, settings.Map{}, got)
	assert.Equal(t, 1, backend.reads)
}

func TestCachedStorePropagatesBackendError(t *testing.T) {
	backend := &countingStore{inner: NewMemoryStore(), fail: true}
	cached := NewCachedStore(backend, time.Minute)

	_, err := cached.Get(context.Background(), "opts")
	assert.Error(t, err)
}
