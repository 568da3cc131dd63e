package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/internal/service/reporting"
)

const (
	exportTimeout      = 30 * time.Second
	defaultReportLimit = 30
)

// AnalyticsStore is the read side used by the dashboard figures.
type AnalyticsStore interface {
	KegStats() models.KegStats
	OverdueKegs(days int) ([]models.Keg, error)
}

// OrderSummarizer aggregates orders over a date range.
type OrderSummarizer interface {
	OrderSummary(start, end time.Time) models.OrderSummary
}

// RowAppender appends rows to a spreadsheet range.
type RowAppender interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// ReportLister reads archived daily keg reports.
type ReportLister interface {
	ListDailyKegReports(ctx context.Context, limit int) ([]models.DailyKegReport, error)
}

// AnalyticsHandler serves fleet figures, order summaries and their exports.
// Sheet and Reports are optional; their endpoints answer 503 when unset.
type AnalyticsHandler struct {
	store       AnalyticsStore
	orders      OrderSummarizer
	overdueDays int
	sheet       RowAppender
	ordersRange string
	reports     ReportLister
	logger      *zap.Logger
	now         func() time.Time
}

// AnalyticsOptions carries the optional integrations of the analytics endpoints.
type AnalyticsOptions struct {
	OverdueDays int
	Sheet       RowAppender
	OrdersRange string
	Reports     ReportLister
}

func NewAnalyticsHandler(store AnalyticsStore, orders OrderSummarizer, opts AnalyticsOptions, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{
		store:       store,
		orders:      orders,
		overdueDays: opts.OverdueDays,
		sheet:       opts.Sheet,
		ordersRange: opts.OrdersRange,
		reports:     opts.Reports,
		logger:      logger,
		now:         time.Now,
	}
}

func (h *AnalyticsHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.KegStats())
}

// Overdue lists deployed kegs out longer than ?days=, oldest deployment first.
func (h *AnalyticsHandler) Overdue(c *gin.Context) {
	days, err := intQuery(c, "days", h.overdueDays)
	if err == nil && days <= 0 {
		err = models.NewFieldValidationError("days", "days must be at least 1")
	}
	if err != nil {
		respondError(c, h.logger, err, "list overdue kegs")
		return
	}

	kegs, err := h.store.OverdueKegs(days)
	if err != nil {
		respondError(c, h.logger, err, "list overdue kegs")
		return
	}
	c.JSON(http.StatusOK, kegs)
}

func (h *AnalyticsHandler) OrdersSummary(c *gin.Context) {
	start, end, err := dateRangeQuery(c)
	if err != nil {
		respondError(c, h.logger, err, "summarize orders")
		return
	}
	c.JSON(http.StatusOK, h.orders.OrderSummary(start, end))
}

// ExportOrders appends the orders of the range to the orders sheet. Without
// a range the current week is exported.
func (h *AnalyticsHandler) ExportOrders(c *gin.Context) {
	if h.sheet == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Message: "Google Sheets export is not configured"})
		return
	}

	start, end, err := h.exportRange(c)
	if err != nil {
		respondError(c, h.logger, err, "export orders")
		return
	}

	summary := h.orders.OrderSummary(start, end)
	rows := reporting.OrderSheetRows(summary, h.now().UTC())
	if len(rows) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), exportTimeout)
		defer cancel()
		if err := h.sheet.AppendRows(ctx, h.ordersRange, rows); err != nil {
			respondError(c, h.logger, err, "export orders")
			return
		}
	}

	h.logger.Info("orders exported", zap.Int("rows", len(rows)), zap.Time("start", start), zap.Time("end", end))
	c.JSON(http.StatusOK, gin.H{
		"exported":  len(rows),
		"range":     h.ordersRange,
		"startDate": start,
		"endDate":   end,
	})
}

func (h *AnalyticsHandler) exportRange(c *gin.Context) (time.Time, time.Time, error) {
	if c.Query("startDate") == "" && c.Query("endDate") == "" {
		start := reporting.WeekStart(h.now())
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond), nil
	}
	return dateRangeQuery(c)
}

// DailyReports returns archived daily keg reports, newest first.
func (h *AnalyticsHandler) DailyReports(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Message: "Report archive is not configured"})
		return
	}

	limit, err := intQuery(c, "limit", defaultReportLimit)
	if err == nil && limit <= 0 {
		err = models.NewFieldValidationError("limit", "limit must be at least 1")
	}
	if err != nil {
		respondError(c, h.logger, err, "list daily reports")
		return
	}

	reports, err := h.reports.ListDailyKegReports(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err, "list daily reports")
		return
	}
	c.JSON(http.StatusOK, reports)
}
