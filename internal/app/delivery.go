package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

// ThumbnailFetcher downloads a thumbnail image to a local path
type ThumbnailFetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// DeliverRequest identifies one cached track to deliver to a destination
type DeliverRequest struct {
	Token string
	Index int
	Kind  domain.MediaKind
	Dest  string
}

const apologyText = "Failed to fetch that track. Please try again later."

// DeliveryCoordinator hands resolved media files to the delivery channel
// and guarantees removal of transient artifacts on every exit path.
type DeliveryCoordinator struct {
	acquire   *AcquireService
	requests  *RequestCache
	channel   domain.DeliveryChannel
	thumbs    ThumbnailFetcher
	thumbDir  string
	performer string
	logger    *zap.Logger
}

// NewDeliveryCoordinator creates a new delivery coordinator
func NewDeliveryCoordinator(
	acquire *AcquireService,
	requests *RequestCache,
	channel domain.DeliveryChannel,
	thumbs ThumbnailFetcher,
	thumbDir string,
	performer string,
	logger *zap.Logger,
) *DeliveryCoordinator {
	return &DeliveryCoordinator{
		acquire:   acquire,
		requests:  requests,
		channel:   channel,
		thumbs:    thumbs,
		thumbDir:  thumbDir,
		performer: performer,
		logger:    logger,
	}
}

// Deliver acquires the selected track and sends it through the delivery
// channel with a freshly fetched thumbnail. The cleanup guard runs on
// every exit path: the request-cache entry is dropped, the thumbnail is
// removed, and the asset is removed only when delivery did not complete.
// Successful deliveries keep the asset so later requests hit the cache.
func (d *DeliveryCoordinator) Deliver(ctx context.Context, req DeliverRequest) error {
	var (
		thumbPath string
		assetPath string
		delivered bool
	)

	defer func() {
		d.requests.Drop(req.Token)
		if thumbPath != "" {
			if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
				d.logger.Warn("Failed to remove thumbnail", zap.String("path", thumbPath), zap.Error(err))
			}
		}
		if !delivered && assetPath != "" {
			if err := os.Remove(assetPath); err != nil && !os.IsNotExist(err) {
				d.logger.Warn("Failed to remove asset", zap.String("path", assetPath), zap.Error(err))
			}
		}
	}()

	track, ok := d.requests.Get(req.Token, req.Index)
	if !ok {
		return &domain.DeliveryError{Stage: "lookup", Err: fmt.Errorf("no cached track for token %s index %d", req.Token, req.Index)}
	}

	thumbPath = filepath.Join(d.thumbDir, fmt.Sprintf("%s-%d.jpg", track.ID, time.Now().UnixNano()))
	if err := d.thumbs.Fetch(ctx, track.Thumbnail, thumbPath); err != nil {
		thumbPath = ""
		return d.fail(ctx, req, "thumbnail", err)
	}

	path, err := d.acquire.Acquire(ctx, track.Link, req.Kind)
	if err != nil {
		return d.fail(ctx, req, "acquire", err)
	}
	assetPath = path

	caption := fmt.Sprintf("%s\n%s\nViews: %s | Duration: %s", track.Title, track.Link, track.Views, track.Duration)
	if req.Kind == domain.KindVideo {
		err = d.channel.SendVideo(ctx, req.Dest, assetPath, caption, thumbPath, true)
	} else {
		err = d.channel.SendAudio(ctx, req.Dest, assetPath, caption, d.performer, track.Title, thumbPath)
	}
	if err != nil {
		return d.fail(ctx, req, "send", err)
	}

	delivered = true
	d.logger.Info("Delivered",
		zap.String("media_id", track.ID),
		zap.String("kind", string(req.Kind)),
		zap.String("dest", req.Dest),
		zap.String("path", assetPath))
	return nil
}

// fail reports a generic apology to the requester and wraps the cause.
// The apology itself is best effort.
func (d *DeliveryCoordinator) fail(ctx context.Context, req DeliverRequest, stage string, cause error) error {
	d.logger.Error("Delivery failed",
		zap.String("stage", stage),
		zap.String("token", req.Token),
		zap.String("dest", req.Dest),
		zap.Error(cause))
	if err := d.channel.SendText(ctx, req.Dest, apologyText); err != nil {
		d.logger.Warn("Failed to send apology", zap.Error(err))
	}
	return &domain.DeliveryError{Stage: stage, Err: cause}
}
