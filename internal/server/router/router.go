package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters mounted by the router. Webhook is
// optional; the WhatsApp routes are skipped when it is nil.
type Handlers struct {
	Kegs          *handlers.KegHandler
	Customers     *handlers.CustomerHandler
	Orders        *handlers.OrderHandler
	CustomerNotes *handlers.CustomerNoteHandler
	Cider         *handlers.CiderHandler
	Fermentation  *handlers.FermentationHandler
	Analytics     *handlers.AnalyticsHandler
	Webhook       *handlers.WebhookHandler
}

// Options tunes the middleware stack.
type Options struct {
	AllowedOrigins []string
	// Fleet feeds the keg gauges on /metrics. May be nil.
	Fleet FleetStats
	// Registry receives the HTTP and fleet metrics. A fresh one is used when nil.
	Registry *prometheus.Registry
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := newMetrics(registry, opts.Fleet)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(m.middleware())
	r.Use(corsMiddleware(opts.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/send-message", h.Webhook.SendMessage)
	}

	api := r.Group("/api")
	{
		kegs := api.Group("/kegs")
		kegs.GET("", h.Kegs.List)
		kegs.POST("", h.Kegs.Create)
		kegs.POST("/batch", h.Kegs.CreateBatch)
		kegs.POST("/status/batch", h.Kegs.BatchUpdateStatus)
		kegs.GET("/qr/:qrCode", h.Kegs.GetByQRCode)
		kegs.GET("/customer/:customerId", h.Kegs.ListByCustomer)
		kegs.GET("/:id", h.Kegs.Get)
		kegs.GET("/:id/activities", h.Kegs.Activities)
		kegs.GET("/:id/qrcode", h.Kegs.QRCodeImage)
		kegs.PATCH("/:id/status", h.Kegs.UpdateStatus)

		api.GET("/activities", h.Kegs.RecentActivities)

		customers := api.Group("/customers")
		customers.GET("", h.Customers.List)
		customers.POST("", h.Customers.Create)
		customers.GET("/:id", h.Customers.Get)
		customers.PATCH("/:id", h.Customers.Update)
		customers.DELETE("/:id", h.Customers.Delete)
		customers.GET("/:id/kegs", h.Customers.Kegs)
		customers.GET("/:id/orders", h.Customers.Orders)
		customers.GET("/:id/notes", h.Customers.Notes)

		orders := api.Group("/orders")
		orders.GET("", h.Orders.List)
		orders.POST("", h.Orders.Create)
		orders.GET("/week", h.Orders.ListByWeek)
		orders.GET("/date-range", h.Orders.ListByDateRange)
		orders.GET("/customer/:customerId", h.Orders.ListByCustomer)
		orders.GET("/:id", h.Orders.Get)
		orders.PATCH("/:id", h.Orders.Update)
		orders.DELETE("/:id", h.Orders.Delete)

		notes := api.Group("/customer-notes")
		notes.GET("", h.CustomerNotes.List)
		notes.POST("", h.CustomerNotes.Create)
		notes.GET("/customer/:customerId", h.CustomerNotes.ListByCustomer)
		notes.GET("/:id", h.CustomerNotes.Get)
		notes.PATCH("/:id", h.CustomerNotes.Update)
		notes.DELETE("/:id", h.CustomerNotes.Delete)

		ciderTypes := api.Group("/cider-types")
		ciderTypes.GET("", h.Cider.ListTypes)
		ciderTypes.POST("", h.Cider.CreateType)
		ciderTypes.GET("/:id", h.Cider.GetType)
		ciderTypes.PATCH("/:id", h.Cider.UpdateType)
		ciderTypes.DELETE("/:id", h.Cider.DeleteType)

		ciderBatches := api.Group("/cider-batches")
		ciderBatches.GET("", h.Cider.ListBatches)
		ciderBatches.POST("", h.Cider.CreateBatch)
		ciderBatches.GET("/:id", h.Cider.GetBatch)
		ciderBatches.PATCH("/:id", h.Cider.UpdateBatch)
		ciderBatches.DELETE("/:id", h.Cider.DeleteBatch)

		ingredients := api.Group("/cider-ingredients")
		ingredients.GET("", h.Cider.ListIngredients)
		ingredients.POST("", h.Cider.CreateIngredient)
		ingredients.GET("/:id", h.Cider.GetIngredient)
		ingredients.PATCH("/:id", h.Cider.UpdateIngredient)
		ingredients.DELETE("/:id", h.Cider.DeleteIngredient)

		fermentation := api.Group("/fermentation-batches")
		fermentation.GET("", h.Fermentation.List)
		fermentation.POST("", h.Fermentation.Create)
		fermentation.GET("/:id", h.Fermentation.Get)
		fermentation.PATCH("/:id", h.Fermentation.Update)
		fermentation.DELETE("/:id", h.Fermentation.Delete)

		analytics := api.Group("/analytics")
		analytics.GET("/stats", h.Analytics.Stats)
		analytics.GET("/overdue", h.Analytics.Overdue)
		analytics.GET("/orders-summary", h.Analytics.OrdersSummary)

		api.POST("/exports/orders", h.Analytics.ExportOrders)
		api.GET("/reports/daily", h.Analytics.DailyReports)
	}

	logger.Info("router initialized", zap.Int("routes", len(r.Routes())))

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
