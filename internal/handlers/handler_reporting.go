package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reporting := rg.Group("/reporting")
	{
		reporting.GET("/ledger-summary", h.getLedgerSummary)
		reporting.GET("/marketplace-activity", h.getMarketplaceActivity)
	}
}

// getLedgerSummary godoc
// @Summary Ledger aggregates for dashboards
// @Tags reporting
// @Produce json
// @Success 200 {object} domain.LedgerSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reporting/ledger-summary [get]
func (h *reportingHandler) getLedgerSummary(c *gin.Context) {
	summary, err := h.reportingService.GetLedgerSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getMarketplaceActivity godoc
// @Summary Marketplace trade aggregates over a date range
// @Tags reporting
// @Produce json
// @Param from query string false "Range start, RFC3339 (default 30 days ago)"
// @Param to query string false "Range end, RFC3339 (default now)"
// @Success 200 {object} domain.MarketplaceActivity
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reporting/marketplace-activity [get]
func (h *reportingHandler) getMarketplaceActivity(c *gin.Context) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date: " + err.Error()})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date: " + err.Error()})
			return
		}
		to = parsed
	}

	activity, err := h.reportingService.GetMarketplaceActivity(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build marketplace activity"})
		return
	}

	c.JSON(http.StatusOK, activity)
}
