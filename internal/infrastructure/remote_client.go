package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

const (
	// maxPollRounds bounds status polling; exceeding it forfeits the
	// remote attempt rather than waiting forever.
	maxPollRounds = 5

	// downloadChunkSize is the streaming buffer for asset downloads.
	downloadChunkSize = 8192
)

// jobStatus is the conversion service's reply to a status request
type jobStatus struct {
	Status string `json:"status"`
	Link   string `json:"link,omitempty"`
	Format string `json:"format,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RemoteClient talks to the external job-based conversion service:
// GET {base}/{song|video}/{id}?api={key} returns job status; once done,
// the asset is streamed from the reported link into the download cache.
type RemoteClient struct {
	songURL  string
	videoURL string
	apiKey   string
	cache    *MediaCache
	client   *http.Client
	logger   *zap.Logger

	// pollDelay and requestTimeout are per-kind; video transcodes take
	// longer than audio. Overridable in tests.
	pollDelay      map[domain.MediaKind]time.Duration
	requestTimeout map[domain.MediaKind]time.Duration
}

// NewRemoteClient creates a new conversion-service client. Empty songURL
// or videoURL disables the remote path for that kind; an empty apiKey
// disables both. The configured timeout applies to audio requests; video
// requests get half again as long, transcodes being slower.
func NewRemoteClient(config *domain.RemoteConfig, cache *MediaCache, logger *zap.Logger) *RemoteClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteClient{
		songURL:  strings.TrimRight(config.SongURL, "/"),
		videoURL: strings.TrimRight(config.VideoURL, "/"),
		apiKey:   config.APIKey,
		cache:    cache,
		client:   &http.Client{},
		logger:   logger,
		pollDelay: map[domain.MediaKind]time.Duration{
			domain.KindAudio: 4 * time.Second,
			domain.KindVideo: 8 * time.Second,
		},
		requestTimeout: map[domain.MediaKind]time.Duration{
			domain.KindAudio: timeout,
			domain.KindVideo: timeout * 3 / 2,
		},
	}
}

// Fetch attempts the remote path for a media ID. Every failure mode is
// absorbed into the outcome; this client never aborts the acquisition.
func (c *RemoteClient) Fetch(ctx context.Context, mediaID string, kind domain.MediaKind) domain.RemoteOutcome {
	endpoint, ok := c.endpoint(mediaID, kind)
	if !ok {
		return domain.UnavailableOutcome()
	}

	var job *jobStatus
	for round := 0; round < maxPollRounds; round++ {
		status, err := c.poll(ctx, endpoint, kind)
		if err != nil {
			return domain.FailedOutcome(err)
		}

		switch strings.ToLower(status.Status) {
		case "done":
			if status.Link == "" {
				return domain.FailedOutcome(fmt.Errorf("job done but no asset link"))
			}
			job = status
		case "downloading":
			select {
			case <-time.After(c.pollDelay[kind]):
			case <-ctx.Done():
				return domain.FailedOutcome(ctx.Err())
			}
		default:
			return domain.FailedOutcome(fmt.Errorf("terminal job status %q: %s", status.Status, status.Error))
		}

		if job != nil {
			break
		}
	}

	if job == nil {
		return domain.FailedOutcome(fmt.Errorf("job still running after %d polls", maxPollRounds))
	}

	format := strings.ToLower(job.Format)
	if format == "" {
		format = kind.DefaultFormat()
	}

	path, err := c.download(ctx, job.Link, mediaID, format, kind)
	if err != nil {
		return domain.FailedOutcome(err)
	}

	c.logger.Info("Conversion service download complete",
		zap.String("media_id", mediaID),
		zap.String("kind", string(kind)),
		zap.String("path", path))
	return domain.FoundOutcome(path)
}

// endpoint builds the status URL for a kind, reporting capability absence
// when the kind's base URL or the API key is missing
func (c *RemoteClient) endpoint(mediaID string, kind domain.MediaKind) (string, bool) {
	base := c.songURL
	kindPath := "song"
	if kind == domain.KindVideo {
		base = c.videoURL
		kindPath = "video"
	}
	if base == "" || c.apiKey == "" {
		return "", false
	}
	return fmt.Sprintf("%s/%s/%s?api=%s", base, kindPath, mediaID, url.QueryEscape(c.apiKey)), true
}

// poll issues one status request with the kind's request timeout
func (c *RemoteClient) poll(ctx context.Context, endpoint string, kind domain.MediaKind) (*jobStatus, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout[kind])
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var status jobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("malformed status response: %w", err)
	}
	return &status, nil
}

// download streams the finished asset into the cache in fixed-size
// chunks. There is no partial-file resume; a transport error discards
// the partial file and forfeits the attempt.
func (c *RemoteClient) download(ctx context.Context, link, mediaID, format string, kind domain.MediaKind) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout[kind])
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build asset request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("asset request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected asset status code %d", resp.StatusCode)
	}

	if err := os.MkdirAll(c.cache.Dir(), 0755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	path := c.cache.PathFor(mediaID, format)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file: %w", err)
	}

	if _, err := io.CopyBuffer(file, resp.Body, make([]byte, downloadChunkSize)); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("asset streaming failed: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to finish asset file: %w", err)
	}

	return path, nil
}
