package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_backoffice/internal/catalog"
	"api_backoffice/internal/sales"
)

// Los montos salen como números JSON, no como strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Sales       *sales.Service
	Catalog     *catalog.Service
	Logger      *zap.Logger
	Location    *time.Location
	CORSOrigins []string
}

// InitRoutes registers the back-office endpoints on the given Gin engine under
// /api, together with request logging, panic recovery and CORS.
func InitRoutes(e *gin.Engine, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}

	e.Use(requestLogger(deps.Logger), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	salesHandler := NewSalesHandler(deps.Sales, deps.Logger, deps.Location)
	cashFlowHandler := NewCashFlowHandler(deps.Sales, deps.Logger, deps.Location)
	reportsHandler := NewReportsHandler(deps.Sales, deps.Logger)
	productsHandler := NewProductsHandler(deps.Catalog, deps.Logger)

	g := e.Group("/api")

	g.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})

	g.POST("/sales", salesHandler.handleCreateSale)
	g.GET("/sales", salesHandler.handleListSales)
	g.GET("/sales/:id", salesHandler.handleGetSale)
	g.GET("/sales/:id/installments", salesHandler.handleSaleInstallments)

	g.GET("/installments", salesHandler.handleListInstallments)
	g.PUT("/installments/:id/pay", salesHandler.handlePayInstallment)

	g.POST("/cash-flow", cashFlowHandler.handleCreate)
	g.GET("/cash-flow", cashFlowHandler.handleList)
	g.DELETE("/cash-flow/:id", cashFlowHandler.handleDelete)

	g.GET("/dashboard/summary", reportsHandler.handleDashboard)
	g.GET("/reports/monthly", reportsHandler.handleMonthly)

	g.GET("/products", productsHandler.handleList)
	g.POST("/products", productsHandler.handleCreate)
	g.GET("/products/:id", productsHandler.handleGet)
	g.PUT("/products/:id", productsHandler.handleUpdate)
	g.DELETE("/products/:id", productsHandler.handleDelete)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// requestLogger logs one line per request once the handler chain has run.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
