package lru

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewCacheLRUInMemory[string, int](2, 0)

	require.NoError(t, c.Set(ctx, "a", 1))

	v, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewCacheLRUInMemory[string, int](2, 0)

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))

	// touch "a" so "b" becomes the oldest
	_, ok, _ := c.Get(ctx, "a")
	require.True(t, ok)

	require.NoError(t, c.Set(ctx, "c", 3))

	assert.Equal(t, 2, c.GetKeysAmount())
	_, ok, _ = c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestCache_OverwriteDoesNotGrow(t *testing.T) {
	ctx := context.Background()
	c := NewCacheLRUInMemory[string, int](2, 0)

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "a", 10))

	assert.Equal(t, 1, c.GetKeysAmount())
	v, ok, _ := c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestCache_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCacheLRUInMemory[string, string](4, time.Minute)
	c.now = clock.now

	require.NoError(t, c.Set(ctx, "k", "v"))

	clock.t = clock.t.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.GetKeysAmount())
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewCacheLRUInMemory[string, int](2, 0)

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "never-set"))

	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.GetKeysAmount())
}

func TestCache_MinimumCapacity(t *testing.T) {
	ctx := context.Background()
	c := NewCacheLRUInMemory[int, int](0, 0)

	require.NoError(t, c.Set(ctx, 1, 1))
	require.NoError(t, c.Set(ctx, 2, 2))

	assert.Equal(t, 1, c.GetKeysAmount())
	_, ok, _ := c.Get(ctx, 2)
	assert.True(t, ok)
}
