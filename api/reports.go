package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
	"api_backoffice/internal/sales"
)

type reportsHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

func NewReportsHandler(salesService *sales.Service, logger *zap.Logger) *reportsHandler {
	return &reportsHandler{salesService: salesService, logger: logger}
}

func (h *reportsHandler) handleDashboard(ctx *gin.Context) {
	summary, err := h.salesService.DashboardSummary(ctx.Request.Context())
	if err != nil {
		respondError(ctx, h.logger, err, "build dashboard summary")
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// handleMonthly handles GET /api/reports/monthly?month=&year=. Both are required.
func (h *reportsHandler) handleMonthly(ctx *gin.Context) {
	month, hasMonth, err := parseIntParam(ctx, "month")
	if err != nil {
		respondError(ctx, h.logger, err, "build monthly report")
		return
	}
	year, hasYear, err := parseIntParam(ctx, "year")
	if err != nil {
		respondError(ctx, h.logger, err, "build monthly report")
		return
	}
	if !hasMonth || !hasYear {
		respondError(ctx, h.logger, apperr.Invalid("month and year are required"), "build monthly report")
		return
	}

	report, err := h.salesService.MonthlyReport(ctx.Request.Context(), month, year)
	if err != nil {
		respondError(ctx, h.logger, err, "build monthly report")
		return
	}
	ctx.JSON(http.StatusOK, report)
}
