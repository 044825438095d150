package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. webhook may
// be nil when the WhatsApp bot is not configured.
func New(handler *handlers.ViewHandler, webhook *handlers.WebhookHandler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if webhook != nil {
		r.GET("/webhook", webhook.Verify)
		r.POST("/webhook", webhook.Receive)
		r.POST("/alerts", webhook.SendAlert)
		r.POST("/alerts/shortages", webhook.NotifyShortages)
	}

	views := r.Group("/", handlers.SessionMiddleware())
	{
		views.GET("/", handler.Landing)
		views.GET("/auth", handler.Auth)
		views.DELETE("/session", handler.ClearSession)

		views.GET("/inventory", handler.Inventory)
		views.POST("/inventory/sort/:key", handler.SortInventory)
		views.GET("/inventory/report.pdf", handler.InventoryReport)

		views.GET("/livestock", handler.Livestock)
		views.POST("/livestock/sort/:key", handler.SortLivestock)
		views.POST("/livestock", handler.AddLivestock)
		views.PUT("/livestock/:id", handler.UpdateLivestock)
		views.DELETE("/livestock/:id", handler.DeleteLivestock)

		views.GET("/cropinventory", handler.Crops)
		views.POST("/cropinventory/sort/:key", handler.SortCrops)
		views.POST("/cropinventory", handler.AddCrop)
		views.DELETE("/cropinventory/:id", handler.RemoveCrop)

		views.GET("/market-place", handler.Marketplace)
		views.POST("/market-place/cart", handler.AddToCart)

		views.GET("/admin", handler.Admin)
		views.POST("/admin/sort/:key", handler.SortAdmin)
		views.POST("/admin/products", handler.AddProduct)
		views.PUT("/admin/products/:id", handler.UpdateProduct)
		views.DELETE("/admin/products/:id", handler.DeleteProduct)

		views.GET("/weather", handler.Weather)
		views.POST("/weather/alert/dismiss", handler.DismissWeatherAlert)

		views.GET("/stock-management", handler.Stock)
		views.GET("/blog", handler.Blog)
	}

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("session_id", c.GetString("session_id")))
	}
}
