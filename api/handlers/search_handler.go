package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/tune-fetch-go/internal/app"
	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	resolver  domain.SearchResolver
	playlists domain.PlaylistExpander
	requests  *app.RequestCache
	logger    *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(resolver domain.SearchResolver, playlists domain.PlaylistExpander, requests *app.RequestCache, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{resolver: resolver, playlists: playlists, requests: requests, logger: logger}
}

// Search handles GET /api/v1/search?q=...&limit=N. Results are cached
// under a request token so a later delivery can refer to a choice.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := 1
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	tracks, err := h.resolver.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.logger.Error("Search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	token := h.requests.Put(tracks)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"tracks": tracks,
	})
}

// Playlist handles GET /api/v1/playlist?link=...
func (h *SearchHandler) Playlist(c *gin.Context) {
	link := c.Query("link")
	if link == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link is required"})
		return
	}

	ids, err := h.playlists.Playlist(c.Request.Context(), link)
	if err != nil {
		h.logger.Error("Playlist expansion failed", zap.String("link", link), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(ids),
		"media_ids": ids,
	})
}
