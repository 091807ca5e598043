package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/tune-fetch-go/internal/app"
	"github.com/yourusername/tune-fetch-go/internal/domain"
	"go.uber.org/zap"
)

// DeliverHandler handles delivery requests for cached search results
type DeliverHandler struct {
	deliver *app.DeliveryCoordinator
	logger  *zap.Logger
}

// NewDeliverHandler creates a new deliver handler
func NewDeliverHandler(deliver *app.DeliveryCoordinator, logger *zap.Logger) *DeliverHandler {
	return &DeliverHandler{deliver: deliver, logger: logger}
}

// DeliverRequest represents a request to deliver one result of an
// earlier search
type DeliverRequest struct {
	Token string `json:"token" binding:"required"`
	Index int    `json:"index"`
	Kind  string `json:"kind,omitempty"`
	Dest  string `json:"dest,omitempty"`
}

// Deliver handles POST /api/v1/deliver
func (h *DeliverHandler) Deliver(c *gin.Context) {
	var req DeliverRequest
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

	err := h.deliver.Deliver(c.Request.Context(), app.DeliverRequest{
		Token: req.Token,
		Index: req.Index,
		Kind:  kind,
		Dest:  req.Dest,
	})
	if err != nil {
		var deliveryErr *domain.DeliveryError
		if errors.As(err, &deliveryErr) && deliveryErr.Stage == "lookup" {
			c.JSON(http.StatusNotFound, gin.H{"error": deliveryErr.Error()})
			return
		}
		h.logger.Error("Deliver failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "delivered"})
}
