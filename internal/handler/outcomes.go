package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"domainbid/internal/history"
	"domainbid/internal/repository"
)

type OutcomeHandler struct {
	Recorder *history.Recorder
	Repo     repository.Repository
}

func (h *OutcomeHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/outcomes", h.recordOutcome)
	r.GET("/api/v1/outcomes", h.listOutcomes)
	r.POST("/api/v1/rounds", h.recordRound)
	r.GET("/api/v1/threads/:thread_id/rounds", h.listRounds)
}

// recordStatus separates the recorder's input rejections from wrapped store
// failures.
func recordStatus(err error) int {
	msg := err.Error()
	if strings.HasPrefix(msg, "record ") || strings.HasPrefix(msg, "count rounds:") {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

// @Summary Record a finished auction
// @Tags history
// @Accept json
// @Param request body history.OutcomeReport true "outcome"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/outcomes [post]
func (h *OutcomeHandler) recordOutcome(c *gin.Context) {
	if h.Recorder == nil {
		Error(c, http.StatusServiceUnavailable, "history recorder unavailable", nil)
		return
	}
	var report history.OutcomeReport
	if err := c.ShouldBindJSON(&report); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	outcome, err := h.Recorder.RecordOutcome(c.Request.Context(), report)
	if err != nil {
		Error(c, recordStatus(err), err.Error(), nil)
		return
	}
	Ok(c, outcome, nil)
}

// @Summary List recorded outcomes
// @Tags history
// @Param platform query string false "platform"
// @Param value_tier query string false "low|medium|high"
// @Param strategy query string false "strategy"
// @Param since query string false "RFC3339 lower bound"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/outcomes [get]
func (h *OutcomeHandler) listOutcomes(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListAuctionOutcomesParams{
		Limit:     limit,
		Offset:    offset,
		Platform:  strQueryPtr(c, "platform"),
		ValueTier: strQueryPtr(c, "value_tier"),
		Strategy:  strQueryPtr(c, "strategy"),
		Since:     timeQueryPtr(c, "since"),
		OrderBy:   "created_at",
		Asc:       boolPtr(false),
	}
	if v := strings.TrimSpace(c.Query("won")); v != "" {
		won := strings.EqualFold(v, "true") || v == "1"
		params.Won = &won
	}
	items, err := h.Repo.ListAuctionOutcomes(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountAuctionOutcomes(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Record one bidding round
// @Tags history
// @Accept json
// @Param request body history.RoundReport true "round"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/rounds [post]
func (h *OutcomeHandler) recordRound(c *gin.Context) {
	if h.Recorder == nil {
		Error(c, http.StatusServiceUnavailable, "history recorder unavailable", nil)
		return
	}
	var report history.RoundReport
	if err := c.ShouldBindJSON(&report); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	round, err := h.Recorder.RecordRound(c.Request.Context(), report)
	if err != nil {
		Error(c, recordStatus(err), err.Error(), nil)
		return
	}
	Ok(c, round, nil)
}

// @Summary Rounds of one bidding thread
// @Tags history
// @Param thread_id path string true "thread id"
// @Param limit query int false "max rounds"
// @Success 200 {object} apiResponse
// @Router /api/v1/threads/{thread_id}/rounds [get]
func (h *OutcomeHandler) listRounds(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	threadID := strings.TrimSpace(c.Param("thread_id"))
	if threadID == "" {
		Error(c, http.StatusBadRequest, "invalid thread_id", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	items, err := h.Repo.ListRoundsByThread(c.Request.Context(), threadID, limit)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
