package domain

import "strings"

// MediaKind represents the kind of media being acquired
type MediaKind string

const (
	KindAudio MediaKind = "audio"
	KindVideo MediaKind = "video"
)

// ValidateKind checks if a media kind is valid
func ValidateKind(kind MediaKind) bool {
	return kind == KindAudio || kind == KindVideo
}

// CacheExtensions returns the ordered set of file extensions probed in the
// download cache for this kind. The first existing file wins.
func (k MediaKind) CacheExtensions() []string {
	if k == KindVideo {
		return []string{"mp4", "webm", "mkv"}
	}
	return []string{"mp3", "m4a", "webm"}
}

// DefaultFormat returns the format assumed when the conversion service
// reports none.
func (k MediaKind) DefaultFormat() string {
	if k == KindVideo {
		return "mp4"
	}
	return "mp3"
}

// WatchBase is the canonical YouTube watch URL prefix.
const WatchBase = "https://www.youtube.com/watch?v="

// ListBase is the canonical YouTube playlist URL prefix.
const ListBase = "https://youtube.com/playlist?list="

// ExtractVideoID extracts a YouTube video ID from the supported URL forms,
// or returns the input unchanged when it is already a bare ID (no scheme,
// no path separator) or matches no known form.
func ExtractVideoID(reference string) string {
	ref := strings.TrimSpace(reference)
	if !strings.Contains(ref, "http://") && !strings.Contains(ref, "https://") && !strings.Contains(ref, "/") {
		return ref
	}
	if idx := strings.LastIndex(ref, "v="); idx >= 0 {
		id := ref[idx+len("v="):]
		if amp := strings.Index(id, "&"); amp >= 0 {
			id = id[:amp]
		}
		return id
	}
	if idx := strings.Index(ref, "youtu.be/"); idx >= 0 {
		id := ref[idx+len("youtu.be/"):]
		if q := strings.Index(id, "?"); q >= 0 {
			id = id[:q]
		}
		return id
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

// WatchURL builds a canonical watch URL for a reference. Bare IDs are
// prefixed with the watch base; trailing parameters after "&" are dropped.
func WatchURL(reference string, bareID bool) string {
	link := strings.TrimSpace(reference)
	if bareID {
		link = WatchBase + link
	}
	if amp := strings.Index(link, "&"); amp >= 0 {
		link = link[:amp]
	}
	return link
}
