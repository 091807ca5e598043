package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/tune-fetch-go/internal/domain"
)

// MediaCache is the content-addressed download cache: files named
// {id}.{ext} under a fixed directory, reused indefinitely. There is no
// eviction; cache size management is out of scope.
type MediaCache struct {
	dir string
}

// NewMediaCache creates a cache over the given downloads directory
func NewMediaCache(dir string) *MediaCache {
	return &MediaCache{dir: dir}
}

// Dir returns the cache directory
func (c *MediaCache) Dir() string {
	return c.dir
}

// Probe returns the first existing file for (mediaID, kind), trying the
// kind's extensions in order. It must run before any network call.
func (c *MediaCache) Probe(mediaID string, kind domain.MediaKind) (string, bool) {
	for _, ext := range kind.CacheExtensions() {
		path := filepath.Join(c.dir, fmt.Sprintf("%s.%s", mediaID, ext))
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// PathFor returns the cache path a file with the given format would use
func (c *MediaCache) PathFor(mediaID, format string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s.%s", mediaID, format))
}
