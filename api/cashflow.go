package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/sales"
)

type cashFlowHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
	loc          *time.Location
}

func NewCashFlowHandler(salesService *sales.Service, logger *zap.Logger, loc *time.Location) *cashFlowHandler {
	return &cashFlowHandler{salesService: salesService, logger: logger, loc: loc}
}

type createCashFlowRequest struct {
	Date        *time.Time             `json:"date"`
	Type        sales.CashFlowType     `json:"type" binding:"required"`
	Category    sales.CashFlowCategory `json:"category" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
}

func (h *cashFlowHandler) handleCreate(ctx *gin.Context) {
	var req createCashFlowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	in := sales.CreateCashFlowRequest{
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	entry, err := h.salesService.CreateCashFlowEntry(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, h.logger, err, "create cash flow entry")
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}

// handleList handles GET /api/cash-flow?start_date=&end_date=&type=.
func (h *cashFlowHandler) handleList(ctx *gin.Context) {
	from, to, err := parseRange(ctx, h.loc)
	if err != nil {
		respondError(ctx, h.logger, err, "list cash flow")
		return
	}

	filter := sales.CashFlowFilter{From: from, To: to}
	if s := ctx.Query("type"); s != "" {
		typ, err := sales.ParseCashFlowType(s)
		if err != nil {
			respondError(ctx, h.logger, err, "list cash flow")
			return
		}
		filter.Type = typ
	}

	out, err := h.salesService.ListCashFlow(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, h.logger, err, "list cash flow")
		return
	}
	ctx.JSON(http.StatusOK, out)
}

func (h *cashFlowHandler) handleDelete(ctx *gin.Context) {
	if err := h.salesService.DeleteCashFlowEntry(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, h.logger, err, "delete cash flow entry")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}
