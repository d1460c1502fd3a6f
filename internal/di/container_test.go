package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type widget struct {
	serial int
}

func TestResolveSingletonReturnsSameInstance(t *testing.T) {
	c := New()
	calls := 0
	c.Register("widget", func(c *Container) any {
		calls++
		return &widget{serial: calls}
	}, true)

	first, err := c.Resolve("widget")
	assert.NoError(t, err)
	second, err := c.Resolve("widget")
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestResolveTransientBuildsEveryCall(t *testing.T) {
	c := New()
	calls := 0
	c.Register("widget", func(c *Container) any {
		calls++
		return &widget{serial: calls}
	}, false)

	first, _ := c.Resolve("widget")
	second, _ := c.Resolve("widget")

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, calls)
}

func TestMakeBypassesSingletonCache(t *testing.T) {
	c := New()
	calls := 0
	c.Register("widget", func(c *Container) any {
		calls++
		return &widget{serial: calls}
	}, true)

	cached, _ := c.Resolve("widget")

	fresh, err := c.Make("widget")
	assert.NoError(t, err)
	assert.NotSame(t, cached, fresh)

	// Make must not have polluted the cache.
	again, _ := c.Resolve("widget")
	assert.Same(t, cached, again)
	assert.Equal(t, 2, calls)
}

func TestResolveUnknownKey(t *testing.T) {
	c := New()

	_, err := c.Resolve("missing")
	assert.True(t, errors.Is(err, ErrServiceNotFound))

	_, err = c.Make("missing")
	assert.True(t, errors.Is(err, ErrServiceNotFound))
}

func TestInstanceSeedsCache(t *testing.T) {
	c := New()
	w := &widget{serial: 99}
	c.Instance("widget", w)

	got, err := c.Resolve("widget")
	assert.NoError(t, err)
	assert.Same(t, w, got)
}

func TestRegisterValueReturnsValueDirectly(t *testing.T) {
	c := New()
	w := &widget{serial: 7}
	c.RegisterValue("widget", w, true)

	got, _ := c.Resolve("widget")
	assert.Same(t, w, got)

	fresh, _ := c.Make("widget")
	assert.Same(t, w, fresh)
}

func TestReRegisterOverwritesAndDropsCache(t *testing.T) {
	c := New()
	c.Register("widget", func(c *Container) any { return &widget{serial: 1} }, true)
	original, _ := c.Resolve("widget")

	replacement := &widget{serial: 2}
	c.Register("widget", func(c *Container) any { return replacement }, true)

	got, _ := c.Resolve("widget")
	assert.NotSame(t, original, got)
	assert.Same(t, replacement, got)
}

func TestHas(t *testing.T) {
	c := New()
	assert.False(t, c.Has("widget"))
	c.Register("widget", func(c *Container) any { return &widget{} }, true)
	assert.True(t, c.Has("widget"))
}

func TestFactoryResolvesDependenciesReentrantly(t *testing.T) {
	c := New()
	c.Register("dep", func(c *Container) any { return &widget{serial: 1} }, true)
	c.Register("outer", func(c *Container) any {
		dep := c.MustResolve("dep").(*widget)
		return &widget{serial: dep.serial + 1}
	}, true)

	got, err := c.Resolve("outer")
	assert.NoError(t, err)
	assert.Equal(t, 2, got.(*widget).serial)
}
