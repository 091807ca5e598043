package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPThumbnailFetcher downloads thumbnail images to local temp paths
type HTTPThumbnailFetcher struct {
	client *http.Client
}

// NewHTTPThumbnailFetcher creates a thumbnail fetcher with a short timeout
func NewHTTPThumbnailFetcher() *HTTPThumbnailFetcher {
	return &HTTPThumbnailFetcher{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads url to destPath, creating parent directories as needed
func (f *HTTPThumbnailFetcher) Fetch(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build thumbnail request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("thumbnail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected thumbnail status code %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail file: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(destPath)
		return fmt.Errorf("thumbnail download failed: %w", err)
	}
	return file.Close()
}
