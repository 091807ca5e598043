package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

const (
	audioFormat = "bestaudio/best"
	videoFormat = "(bestvideo[height<=?720][width<=?1280][ext=mp4])+(bestaudio[ext=m4a])"
)

// YtdlpExtractor is the local extraction fallback. It shells out to the
// yt-dlp binary with kind-specific option profiles and is the path of
// last resort when the conversion service is unavailable or failed.
type YtdlpExtractor struct {
	binary       string
	cookieFile   string
	downloadsDir string
	logger       *zap.Logger
}

// NewYtdlpExtractor creates a new extractor. The cookie file is injected
// into every invocation when present on disk; its absence is logged once
// here but is not fatal.
func NewYtdlpExtractor(config *domain.ExtractorConfig, downloadsDir string, logger *zap.Logger) *YtdlpExtractor {
	e := &YtdlpExtractor{
		binary:       config.Binary,
		cookieFile:   config.CookieFile,
		downloadsDir: downloadsDir,
		logger:       logger,
	}
	if e.cookieFile != "" {
		if _, err := os.Stat(e.cookieFile); err == nil {
			logger.Info("Extractor using cookies", zap.String("file", e.cookieFile))
		} else {
			logger.Warn("Extractor cookie file not found, running without cookies",
				zap.String("file", e.cookieFile))
		}
	}
	return e
}

// Extract resolves the media metadata, then downloads unless the target
// file already exists. The extractor's own error output is surfaced
// verbatim on failure.
func (e *YtdlpExtractor) Extract(ctx context.Context, reference string, kind domain.MediaKind) (string, error) {
	if err := os.MkdirAll(e.downloadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	info, err := e.resolve(ctx, reference, kind)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.downloadsDir, fmt.Sprintf("%s.%s", info.ID, info.Ext))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	args := e.buildArgs(kind, false, reference)
	cmdLine := ShellJoin(e.binary, args...)
	e.logger.Debug("Running extractor", zap.String("cmd", cmdLine))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w: %s", e.binary, err, strings.TrimSpace(stderr.String()))
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s produced no file at %s", e.binary, path)
	}
	return path, nil
}

// playlistDump is the subset of the flat playlist listing we act on
type playlistDump struct {
	Entries []struct {
		ID string `json:"id"`
	} `json:"entries"`
}

// Playlist expands a playlist reference into its member video IDs using
// the extractor's flat listing mode. A bare list ID resolves against the
// canonical playlist URL.
func (e *YtdlpExtractor) Playlist(ctx context.Context, reference string) ([]string, error) {
	link := strings.TrimSpace(reference)
	if !strings.Contains(link, "http://") && !strings.Contains(link, "https://") && !strings.Contains(link, "/") {
		link = domain.ListBase + link
	}

	args := []string{"--flat-playlist", "-J", "--no-warnings", "--quiet", link}
	e.logger.Debug("Listing playlist", zap.String("cmd", ShellJoin(e.binary, args...)))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s playlist listing failed: %w: %s", e.binary, err, strings.TrimSpace(stderr.String()))
	}

	var dump playlistDump
	if err := json.Unmarshal(stdout.Bytes(), &dump); err != nil {
		return nil, fmt.Errorf("%s returned malformed playlist metadata: %w", e.binary, err)
	}

	ids := make([]string, 0, len(dump.Entries))
	for _, entry := range dump.Entries {
		if entry.ID != "" {
			ids = append(ids, entry.ID)
		}
	}
	return ids, nil
}

// mediaInfo is the subset of the extractor's metadata probe we act on
type mediaInfo struct {
	ID  string `json:"id"`
	Ext string `json:"ext"`
}

// resolve runs the metadata-only probe to learn the final {id}.{ext}
func (e *YtdlpExtractor) resolve(ctx context.Context, reference string, kind domain.MediaKind) (*mediaInfo, error) {
	args := e.buildArgs(kind, true, reference)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s resolve failed: %w: %s", e.binary, err, strings.TrimSpace(stderr.String()))
	}

	var info mediaInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("%s returned malformed metadata: %w", e.binary, err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("%s resolved no media ID", e.binary)
	}
	if kind == domain.KindVideo {
		// Merged streams land in the container requested by the profile.
		info.Ext = "mp4"
	}
	if info.Ext == "" {
		info.Ext = kind.DefaultFormat()
	}
	return &info, nil
}

// buildArgs assembles the option profile for a kind. probe selects the
// metadata-only mode.
func (e *YtdlpExtractor) buildArgs(kind domain.MediaKind, probe bool, reference string) []string {
	var args []string
	if kind == domain.KindVideo {
		args = append(args, "-f", videoFormat, "--merge-output-format", "mp4")
	} else {
		args = append(args, "-f", audioFormat)
	}

	args = append(args,
		"-o", filepath.Join(e.downloadsDir, "%(id)s.%(ext)s"),
		"--geo-bypass",
		"--no-check-certificates",
		"--no-warnings",
		"--quiet",
	)

	if e.cookieFile != "" {
		if _, err := os.Stat(e.cookieFile); err == nil {
			args = append(args, "--cookies", e.cookieFile)
		}
	}

	if probe {
		args = append(args, "-J", "--no-download")
	}

	return append(args, reference)
}
