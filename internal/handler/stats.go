package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"domainbid/internal/feed"
	"domainbid/internal/history"
	"domainbid/internal/intel"
	"domainbid/internal/pipeline"
)

type StatsHandler struct {
	Engine    *pipeline.Engine
	History   *history.StatsView
	Intel     *intel.Service
	Feed      *feed.Hub
	StartedAt time.Time
	// ReasonerOn reports whether a reasoner client was configured at startup.
	ReasonerOn bool
}

func (h *StatsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stats", h.stats)
}

// @Summary Engine and history statistics
// @Tags stats
// @Success 200 {object} apiResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) stats(c *gin.Context) {
	mode := "rules_only"
	if h.ReasonerOn {
		mode = "llm"
	}
	data := gin.H{
		"reasoner_mode": mode,
		"uptime_s":      int64(time.Since(h.StartedAt).Seconds()),
	}
	if h.Engine != nil {
		data["decisions"] = h.Engine.Stats()
	}
	if h.History != nil {
		data["history"] = h.History.Snapshot()
	}
	if h.Intel != nil {
		data["intel"] = h.Intel.Stats()
	}
	if h.Feed != nil {
		data["feed"] = h.Feed.Stats()
	}
	Ok(c, data, nil)
}
