package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tune-fetch-go/internal/domain"
)

func TestRequestCache_PutGetDrop(t *testing.T) {
	cache := NewRequestCache(0)
	tracks := []domain.Track{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
	}

	token := cache.Put(tracks)
	require.NotEmpty(t, token)
	assert.Equal(t, 1, cache.Len())

	got, ok := cache.Get(token, 1)
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	_, ok = cache.Get(token, 5)
	assert.False(t, ok)

	_, ok = cache.Get("unknown", 0)
	assert.False(t, ok)

	cache.Drop(token)
	assert.Equal(t, 0, cache.Len())
	_, ok = cache.Get(token, 0)
	assert.False(t, ok)

	// Dropping an unknown token is a no-op
	cache.Drop("unknown")
}

func TestRequestCache_TokensAreUnique(t *testing.T) {
	cache := NewRequestCache(0)
	t1 := cache.Put([]domain.Track{{ID: "a"}})
	t2 := cache.Put([]domain.Track{{ID: "b"}})
	assert.NotEqual(t, t1, t2)
	assert.Equal(t, 2, cache.Len())
}

func TestRequestCache_ExpiredEntriesAreReclaimed(t *testing.T) {
	cache := NewRequestCache(time.Minute)
	clock := time.Now()
	cache.now = func() time.Time { return clock }

	stale := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		stale = append(stale, cache.Put([]domain.Track{{ID: "old"}}))
	}
	require.Equal(t, 100, cache.Len())

	clock = clock.Add(2 * time.Minute)
	fresh := cache.Put([]domain.Track{{ID: "new"}})

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get(fresh, 0)
	assert.True(t, ok)
	for _, token := range stale {
		_, ok := cache.Get(token, 0)
		assert.False(t, ok)
	}
}

func TestRequestCache_FreshEntriesSurviveSweep(t *testing.T) {
	cache := NewRequestCache(time.Minute)
	clock := time.Now()
	cache.now = func() time.Time { return clock }

	token := cache.Put([]domain.Track{{ID: "a"}})
	clock = clock.Add(30 * time.Second)

	got, ok := cache.Get(token, 0)
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 1, cache.Len())
}
