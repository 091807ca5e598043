package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalDeliveryChannel delivers media by copying it into a destination
// directory on the local filesystem. The delivery destination names a
// subdirectory under the channel's base directory; an empty destination
// delivers to the base directory itself. Text messages are appended to a
// messages.log in the destination.
type LocalDeliveryChannel struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalDeliveryChannel creates a filesystem-backed delivery channel
func NewLocalDeliveryChannel(baseDir string, logger *zap.Logger) *LocalDeliveryChannel {
	return &LocalDeliveryChannel{baseDir: baseDir, logger: logger}
}

// SendAudio copies the audio file to the destination directory
func (c *LocalDeliveryChannel) SendAudio(ctx context.Context, dest, path, caption, performer, title, thumbnail string) error {
	target, err := c.place(dest, path)
	if err != nil {
		return err
	}
	c.logger.Info("Delivered audio",
		zap.String("dest", dest),
		zap.String("title", title),
		zap.String("performer", performer),
		zap.String("path", target))
	return nil
}

// SendVideo copies the video file to the destination directory
func (c *LocalDeliveryChannel) SendVideo(ctx context.Context, dest, path, caption, thumbnail string, streamable bool) error {
	target, err := c.place(dest, path)
	if err != nil {
		return err
	}
	c.logger.Info("Delivered video",
		zap.String("dest", dest),
		zap.String("path", target))
	return nil
}

// SendText appends a message to the destination's messages.log
func (c *LocalDeliveryChannel) SendText(ctx context.Context, dest, text string) error {
	dir := c.destDir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create delivery directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(dir, "messages.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open message log: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, text); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// destDir resolves a destination to a directory under the base. The
// destination is treated as a relative path rooted at the base; it
// cannot escape it.
func (c *LocalDeliveryChannel) destDir(dest string) string {
	if dest == "" {
		return c.baseDir
	}
	return filepath.Join(c.baseDir, filepath.Clean("/"+dest))
}

// place copies a media file into the destination directory
func (c *LocalDeliveryChannel) place(dest, path string) (string, error) {
	dir := c.destDir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create delivery directory: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open media file: %w", err)
	}
	defer src.Close()

	target := filepath.Join(dir, filepath.Base(path))
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create delivery file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return "", fmt.Errorf("delivery copy failed: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to finish delivery file: %w", err)
	}
	return target, nil
}
