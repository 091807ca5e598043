package app

import (
	"context"

	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

// AcquireService sequences the acquisition pipeline: cache probe, remote
// conversion service, local extraction fallback. It is the only entry
// point callers use to turn a media reference into a local file.
type AcquireService struct {
	cache     domain.CacheProber
	remote    domain.RemoteFetcher
	extractor domain.Extractor
	repo      domain.AcquisitionRepository
	counters  *Counters
	logger    *zap.Logger
}

// NewAcquireService creates a new acquisition service. repo may be nil
// when history persistence is disabled.
func NewAcquireService(
	cache domain.CacheProber,
	remote domain.RemoteFetcher,
	extractor domain.Extractor,
	repo domain.AcquisitionRepository,
	counters *Counters,
	logger *zap.Logger,
) *AcquireService {
	return &AcquireService{
		cache:     cache,
		remote:    remote,
		extractor: extractor,
		repo:      repo,
		counters:  counters,
		logger:    logger,
	}
}

// Acquire resolves a reference to a local media file path.
//
// A cache hit returns immediately and does not count as an acquisition
// attempt. Otherwise the total counter is incremented exactly once before
// dispatch, the remote path is tried first when configured, and the
// extractor runs whenever the remote path is unavailable or failed. Two
// concurrent calls for the same unseen ID both do the full cycle; the
// duplicate work is accepted rather than coordinated.
func (s *AcquireService) Acquire(ctx context.Context, reference string, kind domain.MediaKind) (string, error) {
	mediaID := domain.ExtractVideoID(reference)

	if path, ok := s.cache.Probe(mediaID, kind); ok {
		s.logger.Debug("Cache hit",
			zap.String("media_id", mediaID),
			zap.String("kind", string(kind)),
			zap.String("path", path))
		return path, nil
	}

	s.counters.IncrTotal(kind)
	record := domain.NewAcquisition(mediaID, kind)
	s.persistCreate(record)

	outcome := s.remote.Fetch(ctx, mediaID, kind)
	switch outcome.State {
	case domain.RemoteFound:
		s.counters.IncrSuccess(kind)
		record.MarkCompleted(domain.SourceRemote, outcome.Path)
		s.persistUpdate(record)
		s.logger.Info("Acquired via conversion service",
			zap.String("media_id", mediaID),
			zap.String("kind", string(kind)),
			zap.String("path", outcome.Path))
		return outcome.Path, nil
	case domain.RemoteFailed:
		s.logger.Warn("Conversion service attempt forfeited",
			zap.String("media_id", mediaID),
			zap.String("kind", string(kind)),
			zap.Error(outcome.Reason))
	case domain.RemoteUnavailable:
		s.logger.Debug("Conversion service not configured, using extractor",
			zap.String("kind", string(kind)))
	}

	path, err := s.extractor.Extract(ctx, reference, kind)
	if err != nil {
		s.counters.IncrFailed(kind)
		extractErr := &domain.ExtractionError{Reference: reference, Kind: kind, Err: err}
		record.MarkFailed(extractErr)
		s.persistUpdate(record)
		s.logger.Error("Acquisition failed",
			zap.String("media_id", mediaID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return "", extractErr
	}

	s.counters.IncrSuccess(kind)
	record.MarkCompleted(domain.SourceExtractor, path)
	s.persistUpdate(record)
	s.logger.Info("Acquired via extractor",
		zap.String("media_id", mediaID),
		zap.String("kind", string(kind)),
		zap.String("path", path))
	return path, nil
}

// Stats returns a snapshot of the process-lifetime counters
func (s *AcquireService) Stats() CounterSnapshot {
	return s.counters.Snapshot()
}

func (s *AcquireService) persistCreate(record *domain.Acquisition) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Warn("Failed to record acquisition", zap.Error(err))
	}
}

func (s *AcquireService) persistUpdate(record *domain.Acquisition) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Update(record); err != nil {
		s.logger.Warn("Failed to update acquisition record", zap.Error(err))
	}
}
