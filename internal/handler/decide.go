package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"domainbid/internal/models"
	"domainbid/internal/pipeline"
)

type DecideHandler struct {
	Engine *pipeline.Engine
	Logger *zap.Logger
}

func (h *DecideHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/decisions", h.decide)
}

type decideRequest struct {
	models.AuctionContext
	// DeadlineMs bounds the whole call; zero uses the engine default.
	DeadlineMs int64 `json:"deadline_ms,omitempty"`
}

// @Summary Decide on one auction snapshot
// @Tags decisions
// @Accept json
// @Produce json
// @Param request body decideRequest true "auction context"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/decisions [post]
func (h *DecideHandler) decide(c *gin.Context) {
	if h.Engine == nil {
		Error(c, http.StatusInternalServerError, "engine unavailable", nil)
		return
	}
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if err := req.AuctionContext.Validate(); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	if req.DeadlineMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.DeadlineMs)*time.Millisecond)
		defer cancel()
	}

	final := h.Engine.Decide(ctx, req.AuctionContext)
	Ok(c, final, nil)
}
