package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/tune-fetch-go/internal/app"
	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

// AcquireHandler handles acquisition-related HTTP requests
type AcquireHandler struct {
	acquire *app.AcquireService
	repo    domain.AcquisitionRepository
	logger  *zap.Logger
}

// NewAcquireHandler creates a new acquire handler
func NewAcquireHandler(acquire *app.AcquireService, repo domain.AcquisitionRepository, logger *zap.Logger) *AcquireHandler {
	return &AcquireHandler{acquire: acquire, repo: repo, logger: logger}
}

// AcquireRequest represents a request to resolve a media reference
type AcquireRequest struct {
	Reference string `json:"reference" binding:"required"`
	Kind      string `json:"kind,omitempty"`
}

// Acquire handles POST /api/v1/acquire
func (h *AcquireHandler) Acquire(c *gin.Context) {
	var req AcquireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := domain.MediaKind(req.Kind)
	if kind == "" {
		kind = domain.KindAudio
	}
	if !domain.ValidateKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be audio or video"})
		return
	}

	path, err := h.acquire.Acquire(c.Request.Context(), req.Reference, kind)
	if err != nil {
		var extractErr *domain.ExtractionError
		if errors.As(err, &extractErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": extractErr.Error()})
			return
		}
		h.logger.Error("Acquire failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media_id": domain.ExtractVideoID(req.Reference),
		"kind":     kind,
		"path":     path,
	})
}

// Stats handles GET /api/v1/stats
func (h *AcquireHandler) Stats(c *gin.Context) {
	snapshot := h.acquire.Stats()

	resp := gin.H{
		"counters": snapshot,
		"report":   snapshot.Format(),
	}

	if h.repo != nil {
		history, err := h.repo.GetStats()
		if err != nil {
			h.logger.Error("Failed to load history stats", zap.Error(err))
		} else {
			resp["history"] = history
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ListAcquisitions handles GET /api/v1/acquisitions
func (h *AcquireHandler) ListAcquisitions(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, []*domain.Acquisition{})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	if mediaID := c.Query("media_id"); mediaID != "" {
		acqs, err := h.repo.FindByMediaID(mediaID)
		if err != nil {
			h.logger.Error("Failed to list acquisitions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, acqs)
		return
	}

	acqs, err := h.repo.FindRecent(limit)
	if err != nil {
		h.logger.Error("Failed to list acquisitions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, acqs)
}
