package domain

import "context"

// RemoteFetcher defines the interface for the remote conversion-service client
type RemoteFetcher interface {
	// Fetch attempts to obtain the media through the conversion service.
	// It never returns a Go error; all failure modes are encoded in the
	// outcome so the orchestrator can fall through to extraction.
	Fetch(ctx context.Context, mediaID string, kind MediaKind) RemoteOutcome
}

// Extractor defines the interface for the local extraction fallback
type Extractor interface {
	// Extract resolves and downloads the media locally. A returned error
	// is terminal for the acquisition.
	Extract(ctx context.Context, reference string, kind MediaKind) (string, error)
}

// CacheProber checks the content-addressed download cache
type CacheProber interface {
	// Probe returns the cached file path for (mediaID, kind), if any
	Probe(mediaID string, kind MediaKind) (string, bool)
}

// DeliveryChannel is the outward-facing transport the service hands
// finished files to. The messaging system behind it is out of scope.
type DeliveryChannel interface {
	// SendAudio delivers an audio file with caption metadata
	SendAudio(ctx context.Context, dest, path, caption, performer, title, thumbnail string) error

	// SendVideo delivers a video file with caption metadata
	SendVideo(ctx context.Context, dest, path, caption, thumbnail string, streamable bool) error

	// SendText delivers a plain text message, used for error reporting
	SendText(ctx context.Context, dest, text string) error
}

// SearchResolver turns a free-text query or reference into track metadata
type SearchResolver interface {
	// Search returns up to limit tracks matching the query
	Search(ctx context.Context, query string, limit int) ([]Track, error)
}

// PlaylistExpander resolves a playlist reference into its member video IDs
type PlaylistExpander interface {
	// Playlist returns the video IDs of a playlist URL or bare list ID
	Playlist(ctx context.Context, reference string) ([]string, error)
}

// Lyrics is the result of a lyrics lookup
type Lyrics struct {
	Title  string `json:"title"`
	Image  string `json:"image"`
	Lyrics string `json:"lyrics"`
}

// LyricsProvider looks up song lyrics by title and artist
type LyricsProvider interface {
	// Lyrics returns the best match for a song. ErrLyricsUnavailable
	// reports that no lyrics backend is configured.
	Lyrics(ctx context.Context, song, artist string) (*Lyrics, error)
}
