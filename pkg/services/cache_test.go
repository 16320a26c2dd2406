package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewQueryCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", []string{"a", "b"})

	var got []string
	assert.True(t, c.Get("k", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	now = now.Add(2 * time.Minute)
	assert.False(t, c.Get("k", &got))
	assert.Equal(t, 0, c.Len())
}

func TestQueryCacheDisabled(t *testing.T) {
	c := NewQueryCache(0)
	c.Set("k", 1)

	var got int
	assert.False(t, c.Get("k", &got))

	var nilCache *QueryCache
	assert.False(t, nilCache.Get("k", &got))
	nilCache.Set("k", 1)
	nilCache.Invalidate()
	assert.Zero(t, nilCache.Len())
}

func TestQueryCacheInvalidate(t *testing.T) {
	c := NewQueryCache(time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Len())

	c.Invalidate()
	assert.Equal(t, 0, c.Len())
}

func TestCacheKeyOrderIndependent(t *testing.T) {
	a := cacheKey("q", map[string]interface{}{"slug": "x", "limit": 3})
	b := cacheKey("q", map[string]interface{}{"limit": 3, "slug": "x"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, cacheKey("q", map[string]interface{}{"slug": "y", "limit": 3}))
	assert.Equal(t, "q", cacheKey("q", nil))
}
