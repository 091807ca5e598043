package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/tune-fetch-go/internal/domain"
)

// defaultRequestTTL bounds how long an undelivered search result set is
// kept before it is reclaimed.
const defaultRequestTTL = 10 * time.Minute

type requestEntry struct {
	tracks  []domain.Track
	created time.Time
}

// RequestCache holds search results between the moment a user is shown
// choices and the moment one is delivered. Entries are dropped by the
// delivery cleanup guard; entries older than the TTL are reclaimed on
// the next cache access so abandoned searches cannot accumulate.
type RequestCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]requestEntry

	now func() time.Time
}

// NewRequestCache creates an empty request cache. A non-positive ttl
// selects the default.
func NewRequestCache(ttl time.Duration) *RequestCache {
	if ttl <= 0 {
		ttl = defaultRequestTTL
	}
	return &RequestCache{
		ttl:     ttl,
		entries: make(map[string]requestEntry),
		now:     time.Now,
	}
}

// Put stores tracks under a fresh request token and returns the token
func (c *RequestCache) Put(tracks []domain.Track) string {
	token := uuid.New().String()
	c.mu.Lock()
	c.sweepLocked()
	c.entries[token] = requestEntry{tracks: tracks, created: c.now()}
	c.mu.Unlock()
	return token
}

// Get returns the track at index for a token
func (c *RequestCache) Get(token string, index int) (domain.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	entry, ok := c.entries[token]
	if !ok || index < 0 || index >= len(entry.tracks) {
		return domain.Track{}, false
	}
	return entry.tracks[index], true
}

// Drop removes a token's entry. Safe to call for unknown tokens.
func (c *RequestCache) Drop(token string) {
	c.mu.Lock()
	delete(c.entries, token)
	c.mu.Unlock()
}

// Len returns the number of live entries
func (c *RequestCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	return len(c.entries)
}

// sweepLocked evicts expired entries. Callers hold c.mu.
func (c *RequestCache) sweepLocked() {
	cutoff := c.now().Add(-c.ttl)
	for token, entry := range c.entries {
		if entry.created.Before(cutoff) {
			delete(c.entries, token)
		}
	}
}
