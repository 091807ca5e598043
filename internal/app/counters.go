package app

import (
	"fmt"
	"sync/atomic"

	"github.com/yourusername/tune-fetch-go/internal/domain"
)

// Counters tracks per-kind acquisition outcomes for the lifetime of the
// process. Counts reset on restart. All increments are atomic; many
// acquisitions run concurrently.
type Counters struct {
	audioTotal   atomic.Int64
	audioSuccess atomic.Int64
	audioFailed  atomic.Int64
	videoTotal   atomic.Int64
	videoSuccess atomic.Int64
	videoFailed  atomic.Int64
}

// NewCounters creates a zeroed counter set
func NewCounters() *Counters {
	return &Counters{}
}

// IncrTotal records a dispatched acquisition attempt. Cache hits are not
// counted; a hit is not a new attempt.
func (c *Counters) IncrTotal(kind domain.MediaKind) {
	if kind == domain.KindVideo {
		c.videoTotal.Add(1)
		return
	}
	c.audioTotal.Add(1)
}

// IncrSuccess records a completed acquisition
func (c *Counters) IncrSuccess(kind domain.MediaKind) {
	if kind == domain.KindVideo {
		c.videoSuccess.Add(1)
		return
	}
	c.audioSuccess.Add(1)
}

// IncrFailed records a terminally failed acquisition
func (c *Counters) IncrFailed(kind domain.MediaKind) {
	if kind == domain.KindVideo {
		c.videoFailed.Add(1)
		return
	}
	c.audioFailed.Add(1)
}

// CounterSnapshot is a point-in-time copy of the counters
type CounterSnapshot struct {
	AudioTotal   int64 `json:"audio_total"`
	AudioSuccess int64 `json:"audio_success"`
	AudioFailed  int64 `json:"audio_failed"`
	VideoTotal   int64 `json:"video_total"`
	VideoSuccess int64 `json:"video_success"`
	VideoFailed  int64 `json:"video_failed"`
}

// Snapshot returns a consistent-enough copy for reporting
func (c *Counters) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		AudioTotal:   c.audioTotal.Load(),
		AudioSuccess: c.audioSuccess.Load(),
		AudioFailed:  c.audioFailed.Load(),
		VideoTotal:   c.videoTotal.Load(),
		VideoSuccess: c.videoSuccess.Load(),
		VideoFailed:  c.videoFailed.Load(),
	}
}

// Format renders the snapshot as the stats table shown to operators
func (s CounterSnapshot) Format() string {
	totalRequests := s.AudioTotal + s.VideoTotal
	totalSuccess := s.AudioSuccess + s.VideoSuccess
	totalFailed := s.AudioFailed + s.VideoFailed

	return fmt.Sprintf(
		"Download Stats\n\n"+
			"Total Requests: %d\n"+
			"Total Success:  %d\n"+
			"Total Failed:   %d\n\n"+
			"Type  | Total | OK | Failed\n"+
			"------|-------|----|-------\n"+
			"Audio | %5d | %2d | %d\n"+
			"Video | %5d | %2d | %d\n\n"+
			"Counters reset on restart.",
		totalRequests, totalSuccess, totalFailed,
		s.AudioTotal, s.AudioSuccess, s.AudioFailed,
		s.VideoTotal, s.VideoSuccess, s.VideoFailed,
	)
}
