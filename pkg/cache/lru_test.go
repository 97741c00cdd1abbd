package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	evicted := c.Set("d", 4)
	assert.True(t, evicted)
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))
	assert.True(t, c.Has("c"))
	assert.True(t, c.Has("d"))
	assert.Equal(t, 3, c.Len())
}

func TestGetProtectsFromEviction(t *testing.T) {
	c := New[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("d", 4)
	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("b"))
}

func TestHasDoesNotPromote(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	assert.True(t, c.Has("a"))
	c.Set("c", 3)
	assert.False(t, c.Has("a"))
}

func TestOverwriteKeepsSize(t *testing.T) {
	c := New[string, float64](2)
	c.Set("k", 1)
	c.Set("k", 2)
	assert.Equal(t, 1, c.Len())
	v, _ := c.Get("k")
	assert.Equal(t, 2.0, v)
}

func TestStatsAndClear(t *testing.T) {
	c := New[string, int](0)
	assert.Equal(t, DefaultMaxSize, c.MaxSize())

	for i := 0; i < 123; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	assert.Equal(t, Stats{Size: 123, MaxSize: 500, UtilizationPercent: 25}, c.Stats())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Stats().UtilizationPercent)
}

func TestMaxSizePlusOne(t *testing.T) {
	const max = 50
	c := New[int, int](max)
	for i := 0; i <= max; i++ {
		c.Set(i, i)
	}
	assert.Equal(t, max, c.Len())
	assert.False(t, c.Has(0))
	for i := 1; i <= max; i++ {
		assert.True(t, c.Has(i))
	}
	assert.Equal(t, 1, c.Keys()[0])
}
