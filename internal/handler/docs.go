package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Domain Auction Decision Engine

Bidding decision service for expired-domain auctions.

## Core call

- POST /api/v1/decisions - run the decision pipeline on one auction snapshot

The response always carries a concrete decision. When the reasoner is
unavailable or rejected, decision_source reports rules_fallback; a safety
block reports safety_block with the blocking reason.

## History

- POST /api/v1/outcomes - record a finished auction
- POST /api/v1/rounds - record one bidding round
- GET  /api/v1/outcomes
- GET  /api/v1/threads/:thread_id/rounds
- GET  /api/v1/strategies/performance
- GET  /api/v1/strategies/best?platform=&value_tier=
- GET  /api/v1/advisor/aggressiveness?platform=&value_tier=

## Operations

- GET  /healthz, GET /readyz
- GET  /api/v1/stats
- GET  /api/v1/decisions (audit log), GET /api/v1/decisions/:id
- GET  /api/v1/intel/preview, POST /api/v1/intel/reload
- GET  /api/v1/stream/decisions (websocket)
- GET  /swagger/index.html

## Auth

All /api/* routes require a Bearer token when one is configured.
Health endpoints are public.
`)
	})
}
