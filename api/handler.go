package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
	"api_backoffice/internal/sales"
)

// salesHandler holds the ledger service and implements HTTP handlers for sales
// and installment operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
	loc          *time.Location
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger, loc *time.Location) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
		loc:          loc,
	}
}

type createSaleRequest struct {
	CustomerName      string               `json:"customer_name"`
	CustomerEmail     string               `json:"customer_email"`
	Items             []sales.SaleLineItem `json:"items" binding:"required"`
	Discount          decimal.Decimal      `json:"discount"`
	PaymentMethod     sales.PaymentMethod  `json:"payment_method" binding:"required"`
	InstallmentsCount int                  `json:"installments_count"`
	Notes             string               `json:"notes"`
}

// handleCreateSale handles the POST /api/sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req createSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.salesService.CreateSale(ctx.Request.Context(), sales.CreateSaleRequest{
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		Items:             req.Items,
		Discount:          req.Discount,
		PaymentMethod:     req.PaymentMethod,
		InstallmentsCount: req.InstallmentsCount,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(ctx, h.logger, err, "create sale")
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// handleListSales handles GET /api/sales?start_date=&end_date=&status=.
func (h *salesHandler) handleListSales(ctx *gin.Context) {
	from, to, err := parseRange(ctx, h.loc)
	if err != nil {
		respondError(ctx, h.logger, err, "list sales")
		return
	}

	filter := sales.SaleFilter{From: from, To: to}
	if s := ctx.Query("status"); s != "" {
		status, err := sales.ParseSaleStatus(s)
		if err != nil {
			h.logger.Warn("invalid status filter provided", zap.String("status", s))
			respondError(ctx, h.logger, err, "list sales")
			return
		}
		filter.Status = status
	}

	out, err := h.salesService.ListSales(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, h.logger, err, "list sales")
		return
	}
	ctx.JSON(http.StatusOK, out)
}

func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.GetSale(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, h.logger, err, "get sale")
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

func (h *salesHandler) handleSaleInstallments(ctx *gin.Context) {
	out, err := h.salesService.SaleInstallments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, h.logger, err, "list installments")
		return
	}
	ctx.JSON(http.StatusOK, out)
}

// handleListInstallments handles GET /api/installments?paid=&month=&year=&sale_id=.
// The due-date window only applies when both month and year are given.
func (h *salesHandler) handleListInstallments(ctx *gin.Context) {
	filter := sales.InstallmentFilter{SaleID: ctx.Query("sale_id")}

	if s := ctx.Query("paid"); s != "" {
		paid, err := strconv.ParseBool(s)
		if err != nil {
			respondError(ctx, h.logger, apperr.Invalid("paid must be a boolean"), "list installments")
			return
		}
		filter.Paid = &paid
	}

	month, hasMonth, err := parseIntParam(ctx, "month")
	if err != nil {
		respondError(ctx, h.logger, err, "list installments")
		return
	}
	year, hasYear, err := parseIntParam(ctx, "year")
	if err != nil {
		respondError(ctx, h.logger, err, "list installments")
		return
	}
	if hasMonth && hasYear {
		if month < 1 || month > 12 {
			respondError(ctx, h.logger, apperr.Invalid("month must be between 1 and 12"), "list installments")
			return
		}
		filter.DueFrom = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, h.loc)
		filter.DueTo = filter.DueFrom.AddDate(0, 1, 0)
	}

	out, err := h.salesService.ListInstallments(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, h.logger, err, "list installments")
		return
	}
	ctx.JSON(http.StatusOK, out)
}

// handlePayInstallment handles PUT /api/installments/:id/pay.
func (h *salesHandler) handlePayInstallment(ctx *gin.Context) {
	inst, err := h.salesService.PayInstallment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, h.logger, err, "pay installment")
		return
	}
	ctx.JSON(http.StatusOK, inst)
}
