package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

// LyricsHandler handles lyrics lookup requests
type LyricsHandler struct {
	provider domain.LyricsProvider
	logger   *zap.Logger
}

// NewLyricsHandler creates a new lyrics handler
func NewLyricsHandler(provider domain.LyricsProvider, logger *zap.Logger) *LyricsHandler {
	return &LyricsHandler{provider: provider, logger: logger}
}

// Lyrics handles GET /api/v1/lyrics?song=...&artist=...
func (h *LyricsHandler) Lyrics(c *gin.Context) {
	song := c.Query("song")
	if song == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "song is required"})
		return
	}
	artist := c.Query("artist")

	lyrics, err := h.provider.Lyrics(c.Request.Context(), song, artist)
	if err != nil {
		if errors.Is(err, domain.ErrLyricsUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Lyrics lookup failed", zap.String("song", song), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lyrics)
}
