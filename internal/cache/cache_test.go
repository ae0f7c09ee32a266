package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheGuardaERecupera(t *testing.T) {
	c := New[int](time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 42)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestCacheExpira(t *testing.T) {
	c := New[string](10 * time.Millisecond)
	c.Set("a", "x")

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("a", "x")
	c.Set("b", "y")

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.InvalidateAll()
	_, ok = c.Get("b")
	assert.False(t, ok)
}
