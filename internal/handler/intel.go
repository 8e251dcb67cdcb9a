package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"domainbid/internal/intel"
	"domainbid/internal/models"
)

type IntelHandler struct {
	Service *intel.Service
}

func (h *IntelHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/intel")
	group.GET("/preview", h.preview)
	group.POST("/reload", h.reload)
}

// @Summary Dry-run market enrichment without deciding
// @Tags intel
// @Param domain query string true "domain name"
// @Param platform query string true "platform"
// @Param value query number true "estimated value USD"
// @Param budget query number false "available budget USD"
// @Param bidders query int false "active bidder count"
// @Param bidder_id query string false "current high bidder id"
// @Param aggression query number false "observed aggression score"
// @Param reaction_s query number false "observed reaction time seconds"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/intel/preview [get]
func (h *IntelHandler) preview(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusServiceUnavailable, "intel unavailable", nil)
		return
	}
	domain := strings.TrimSpace(c.Query("domain"))
	platform := models.NormalizePlatform(c.Query("platform"))
	if domain == "" || platform == "" {
		Error(c, http.StatusBadRequest, "domain and platform are required", nil)
		return
	}
	value, err := decimal.NewFromString(strings.TrimSpace(c.Query("value")))
	if err != nil || value.IsNegative() {
		Error(c, http.StatusBadRequest, "value must be a non-negative number", nil)
		return
	}

	auction := models.AuctionContext{
		Domain:         domain,
		Platform:       platform,
		EstimatedValue: value,
		NumBidders:     intQuery(c, "bidders", 0),
		LastBidderID:   strings.TrimSpace(c.Query("bidder_id")),
	}
	if raw := strings.TrimSpace(c.Query("budget")); raw != "" {
		if budget, err := decimal.NewFromString(raw); err == nil {
			auction.BudgetAvailable = budget
		}
	}
	auction.BidderAnalysis.AggressionScore = floatQuery(c, "aggression", 0)
	auction.BidderAnalysis.ReactionTimeAvg = floatQuery(c, "reaction_s", 0)

	Ok(c, h.Service.Enrich(auction), nil)
}

// @Summary Reload intelligence tables from disk
// @Tags intel
// @Success 200 {object} apiResponse
// @Failure 502 {object} apiResponse
// @Router /api/v1/intel/reload [post]
func (h *IntelHandler) reload(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusServiceUnavailable, "intel unavailable", nil)
		return
	}
	if err := h.Service.Reload(c.Request.Context()); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, h.Service.Stats(), nil)
}

func floatQuery(c *gin.Context, key string, def float64) float64 {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return def
}
