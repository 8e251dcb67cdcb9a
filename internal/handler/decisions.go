package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"domainbid/internal/repository"
)

type DecisionLogHandler struct {
	Repo repository.Repository
}

func (h *DecisionLogHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/decisions")
	group.GET("", h.list)
	group.GET("/:id", h.get)
}

// @Summary List decision audit records
// @Tags decisions
// @Param domain query string false "exact domain"
// @Param platform query string false "platform"
// @Param thread_id query string false "thread id"
// @Param source query string false "decision source (llm|rules_fallback|safety_block|system_error)"
// @Param since query string false "RFC3339 lower bound"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/decisions [get]
func (h *DecisionLogHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListDecisionLogsParams{
		Limit:          limit,
		Offset:         offset,
		Domain:         strQueryPtr(c, "domain"),
		Platform:       strQueryPtr(c, "platform"),
		ThreadID:       strQueryPtr(c, "thread_id"),
		DecisionSource: strQueryPtr(c, "source"),
		Since:          timeQueryPtr(c, "since"),
		OrderBy:        "created_at",
		Asc:            boolPtr(false),
	}
	items, err := h.Repo.ListDecisionLogs(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountDecisionLogs(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *DecisionLogHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetDecisionLogByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "decision not found", nil)
		return
	}
	Ok(c, item, nil)
}
