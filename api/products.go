package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/catalog"
)

type productsHandler struct {
	catalogService *catalog.Service
	logger         *zap.Logger
}

func NewProductsHandler(catalogService *catalog.Service, logger *zap.Logger) *productsHandler {
	return &productsHandler{catalogService: catalogService, logger: logger}
}

type createProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	IsNew         bool            `json:"isNew"`
	StockQuantity int             `json:"stock_quantity"`
	CostPrice     decimal.Decimal `json:"cost_price"`
}

func (h *productsHandler) handleList(ctx *gin.Context) {
	out, err := h.catalogService.ListProducts(ctx.Request.Context())
	if err != nil {
		respondError(ctx, h.logger, err, "list products")
		return
	}
	ctx.JSON(http.StatusOK, out)
}

func (h *productsHandler) handleCreate(ctx *gin.Context) {
	var req createProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.catalogService.CreateProduct(ctx.Request.Context(), catalog.ProductInput{
		Name:          req.Name,
		Price:         req.Price,
		Image:         req.Image,
		Category:      req.Category,
		IsNew:         req.IsNew,
		StockQuantity: req.StockQuantity,
		CostPrice:     req.CostPrice,
	})
	if err != nil {
		respondError(ctx, h.logger, err, "create product")
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (h *productsHandler) handleGet(ctx *gin.Context) {
	product, err := h.catalogService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, h.logger, err, "get product")
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// handleUpdate handles PUT /api/products/:id with a partial body.
func (h *productsHandler) handleUpdate(ctx *gin.Context) {
	var patch catalog.ProductPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.catalogService.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		respondError(ctx, h.logger, err, "update product")
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *productsHandler) handleDelete(ctx *gin.Context) {
	if err := h.catalogService.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, h.logger, err, "delete product")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
