package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tune-fetch-go/internal/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestMediaCache_ProbeMiss(t *testing.T) {
	cache := NewMediaCache(t.TempDir())

	_, ok := cache.Probe("dQw4w9WgXcQ", domain.KindAudio)
	assert.False(t, ok)
}

func TestMediaCache_ProbeFindsAnyExtension(t *testing.T) {
	dir := t.TempDir()
	cache := NewMediaCache(dir)
	touch(t, filepath.Join(dir, "dQw4w9WgXcQ.m4a"))

	path, ok := cache.Probe("dQw4w9WgXcQ", domain.KindAudio)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "dQw4w9WgXcQ.m4a"), path)
}

func TestMediaCache_FirstExtensionWins(t *testing.T) {
	dir := t.TempDir()
	cache := NewMediaCache(dir)
	touch(t, filepath.Join(dir, "dQw4w9WgXcQ.mp3"))
	touch(t, filepath.Join(dir, "dQw4w9WgXcQ.m4a"))

	path, ok := cache.Probe("dQw4w9WgXcQ", domain.KindAudio)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "dQw4w9WgXcQ.mp3"), path)
}

func TestMediaCache_KindsDoNotOverlap(t *testing.T) {
	dir := t.TempDir()
	cache := NewMediaCache(dir)
	touch(t, filepath.Join(dir, "abc.mp4"))

	_, ok := cache.Probe("abc", domain.KindAudio)
	assert.False(t, ok)

	path, ok := cache.Probe("abc", domain.KindVideo)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "abc.mp4"), path)
}

func TestMediaCache_PathFor(t *testing.T) {
	cache := NewMediaCache("/data/downloads")
	assert.Equal(t, "/data/downloads/abc.mp3", cache.PathFor("abc", "mp3"))
}
