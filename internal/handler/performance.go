package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"domainbid/internal/history"
	"domainbid/internal/models"
	"domainbid/internal/repository"
)

type PerformanceHandler struct {
	Repo    repository.Repository
	Learner *history.Learner
}

func (h *PerformanceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/strategies")
	group.GET("/performance", h.list)
	group.GET("/best", h.best)
	r.GET("/api/v1/advisor/aggressiveness", h.aggressiveness)
}

// @Summary Per-strategy performance aggregates
// @Tags strategies
// @Param strategy query string false "strategy"
// @Param platform query string false "platform"
// @Param value_tier query string false "low|medium|high"
// @Param min_samples query int false "minimum total_uses"
// @Success 200 {object} apiResponse
// @Router /api/v1/strategies/performance [get]
func (h *PerformanceHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListStrategyPerformanceParams{
		Limit:      limit,
		Offset:     offset,
		Strategy:   strQueryPtr(c, "strategy"),
		Platform:   strQueryPtr(c, "platform"),
		ValueTier:  strQueryPtr(c, "value_tier"),
		MinSamples: int64QueryPtr(c, "min_samples"),
		OrderBy:    "total_uses",
		Asc:        boolPtr(false),
	}
	items, err := h.Repo.ListStrategyPerformance(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Best performing strategy for a platform and tier
// @Tags strategies
// @Param platform query string true "platform"
// @Param value_tier query string true "low|medium|high"
// @Param min_samples query int false "minimum total_uses"
// @Success 200 {object} apiResponse
// @Router /api/v1/strategies/best [get]
func (h *PerformanceHandler) best(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	platform := models.NormalizePlatform(c.Query("platform"))
	tier := strings.ToLower(strings.TrimSpace(c.Query("value_tier")))
	if platform == "" || tier == "" {
		Error(c, http.StatusBadRequest, "platform and value_tier are required", nil)
		return
	}
	minSamples := int64(intQuery(c, "min_samples", 5))
	item, err := h.Repo.BestStrategyPerformance(c.Request.Context(), platform, tier, minSamples)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "no strategy with enough samples", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Advisory aggressiveness ratio
// @Tags strategies
// @Param platform query string true "platform"
// @Param value_tier query string true "low|medium|high"
// @Success 200 {object} apiResponse
// @Router /api/v1/advisor/aggressiveness [get]
func (h *PerformanceHandler) aggressiveness(c *gin.Context) {
	if h.Learner == nil {
		Error(c, http.StatusServiceUnavailable, "advisor unavailable", nil)
		return
	}
	platform := models.NormalizePlatform(c.Query("platform"))
	tier := strings.ToLower(strings.TrimSpace(c.Query("value_tier")))
	if platform == "" || tier == "" {
		Error(c, http.StatusBadRequest, "platform and value_tier are required", nil)
		return
	}
	ratio, based := h.Learner.SuggestAggressiveness(c.Request.Context(), platform, tier)
	Ok(c, gin.H{
		"platform":       platform,
		"value_tier":     tier,
		"aggressiveness": ratio,
		"based_on":       based,
	}, nil)
}
