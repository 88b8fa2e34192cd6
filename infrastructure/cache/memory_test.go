package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_Expiry(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewInMemoryCache(0)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "AllCommentsQuery:all", "cached", 30))

	// Act / Assert
	v, ok := c.Get(ctx, "AllCommentsQuery:all")
	assert.True(t, ok)
	assert.Equal(t, "cached", v)

	now = now.Add(30 * time.Second)
	_, ok = c.Get(ctx, "AllCommentsQuery:all")
	assert.False(t, ok)

	c.sweep()
	assert.Zero(t, c.Len())
}

func TestInMemoryCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Minute)
	defer c.Close()

	_ = c.Set(ctx, "a", 1, 60)
	_ = c.Set(ctx, "b", 2, 60)

	require.NoError(t, c.Delete(ctx, "a"))
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, c.Len())
}

func TestInMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewInMemoryCache(time.Millisecond)
	c.Close()
	assert.NotPanics(t, c.Close)
}
