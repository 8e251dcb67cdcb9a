package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"domainbid/internal/intel"
)

type HealthHandler struct {
	DB    *gorm.DB
	Intel *intel.Service
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

// @Summary Health check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	dbState := "disabled"
	if h.DB != nil {
		sqlDB, err := h.DB.DB()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_error"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unreachable"})
			return
		}
		dbState = "ok"
	}

	if h.Intel == nil || !h.Intel.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "intel_not_loaded", "db": dbState})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "db": dbState})
}
