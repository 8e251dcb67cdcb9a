package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"domainbid/internal/feed"
)

type StreamHandler struct {
	Hub *feed.Hub
}

func (h *StreamHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stream/decisions", h.stream)
}

// @Summary Live websocket feed of finalized decisions
// @Tags stream
// @Success 101 {string} string "switching protocols"
// @Router /api/v1/stream/decisions [get]
func (h *StreamHandler) stream(c *gin.Context) {
	if h.Hub == nil {
		Error(c, http.StatusServiceUnavailable, "feed unavailable", nil)
		return
	}
	h.Hub.ServeWS(c.Writer, c.Request)
}
