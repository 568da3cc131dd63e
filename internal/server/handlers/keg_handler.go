package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/pkg/kegid"
)

const minImageSize = 64

// KegStore is the part of the store the keg endpoints use.
type KegStore interface {
	CreateKeg(in models.CreateKegInput) (models.Keg, error)
	CreateKegs(count int, template models.CreateKegInput) ([]models.Keg, error)
	GetKeg(id string) (models.Keg, bool)
	GetKegByQRCode(qrCode string) (models.Keg, bool)
	ListKegs() []models.Keg
	ListKegsByStatus(status models.KegStatus) []models.Keg
	ListKegsByCustomer(customerID string) []models.Keg
	UpdateKegStatus(id string, in models.UpdateKegStatusInput) (models.Keg, error)
	BatchUpdateKegStatus(items []models.BatchStatusItem) []models.BatchStatusResult
	ListActivitiesByKeg(kegID string) []models.Activity
	ListRecentActivities(limit int) []models.Activity
}

// KegHandler serves the keg fleet and its activity log.
type KegHandler struct {
	store  KegStore
	logger *zap.Logger
}

// NewKegHandler constructs the keg endpoints.
func NewKegHandler(store KegStore, logger *zap.Logger) *KegHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KegHandler{store: store, logger: logger}
}

// List returns every keg, optionally filtered by status or customer.
func (h *KegHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		s := models.KegStatus(status)
		if !s.Valid() {
			respondError(c, h.logger, models.NewFieldValidationError("status", "status must be one of: full, dirty, clean, deployed"), "list kegs")
			return
		}
		c.JSON(http.StatusOK, h.store.ListKegsByStatus(s))
		return
	}
	if customerID := c.Query("customer"); customerID != "" {
		c.JSON(http.StatusOK, h.store.ListKegsByCustomer(customerID))
		return
	}
	c.JSON(http.StatusOK, h.store.ListKegs())
}

func (h *KegHandler) Get(c *gin.Context) {
	id := c.Param("id")
	keg, ok := h.store.GetKeg(id)
	if !ok {
		respondNotFound(c, "Keg", id)
		return
	}
	c.JSON(http.StatusOK, keg)
}

// GetByQRCode resolves a scanned label.
func (h *KegHandler) GetByQRCode(c *gin.Context) {
	qrCode := strings.ToUpper(strings.TrimSpace(c.Param("qrCode")))
	keg, ok := h.store.GetKegByQRCode(qrCode)
	if !ok {
		respondNotFound(c, "Keg", qrCode)
		return
	}
	c.JSON(http.StatusOK, keg)
}

func (h *KegHandler) ListByCustomer(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListKegsByCustomer(c.Param("customerId")))
}

// Activities returns the history of one keg, newest first.
func (h *KegHandler) Activities(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetKeg(id); !ok {
		respondNotFound(c, "Keg", id)
		return
	}
	c.JSON(http.StatusOK, h.store.ListActivitiesByKeg(id))
}

// QRCodeImage renders the keg label as a PNG.
func (h *KegHandler) QRCodeImage(c *gin.Context) {
	id := c.Param("id")
	keg, ok := h.store.GetKeg(id)
	if !ok {
		respondNotFound(c, "Keg", id)
		return
	}

	size, err := intQuery(c, "size", kegid.DefaultImageSize)
	if err == nil && (size < minImageSize || size > kegid.MaxImageSize) {
		err = models.NewFieldValidationError("size", fmt.Sprintf("size must be between %d and %d", minImageSize, kegid.MaxImageSize))
	}
	if err != nil {
		respondError(c, h.logger, err, "render qr code")
		return
	}

	png, err := kegid.RenderPNG(keg.QRCode, size)
	if err != nil {
		respondError(c, h.logger, err, "render qr code")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", keg.QRCode+".png"))
	c.Data(http.StatusOK, "image/png", png)
}

func (h *KegHandler) Create(c *gin.Context) {
	var input models.CreateKegInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create keg")
		return
	}

	keg, err := h.store.CreateKeg(input)
	if err != nil {
		respondError(c, h.logger, err, "create keg")
		return
	}
	h.logger.Info("keg created", zap.String("keg_id", keg.ID), zap.String("status", string(keg.Status)))
	c.JSON(http.StatusCreated, keg)
}

// CreateBatch registers several identical kegs with generated ids.
func (h *KegHandler) CreateBatch(c *gin.Context) {
	var input models.CreateKegBatchInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create kegs")
		return
	}

	kegs, err := h.store.CreateKegs(input.Count, input.Template())
	if err != nil {
		if len(kegs) > 0 {
			h.logger.Warn("keg batch stopped early", zap.Int("created", len(kegs)), zap.Int("requested", input.Count), zap.Error(err))
		}
		respondError(c, h.logger, err, "create kegs")
		return
	}
	h.logger.Info("keg batch created", zap.Int("count", len(kegs)))
	c.JSON(http.StatusCreated, kegs)
}

// UpdateStatus moves one keg through its lifecycle.
func (h *KegHandler) UpdateStatus(c *gin.Context) {
	var input models.UpdateKegStatusInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update keg status")
		return
	}

	keg, err := h.store.UpdateKegStatus(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update keg status")
		return
	}
	c.JSON(http.StatusOK, keg)
}

// BatchUpdateStatus applies scanned updates independently; failures are
// reported per item.
func (h *KegHandler) BatchUpdateStatus(c *gin.Context) {
	var input models.BatchStatusInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update keg statuses")
		return
	}

	results := h.store.BatchUpdateKegStatus(input.Updates)
	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"succeeded": len(results) - failed,
		"failed":    failed,
	})
}

// RecentActivities lists activities across the fleet, or for one keg when
// kegId is given.
func (h *KegHandler) RecentActivities(c *gin.Context) {
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		respondError(c, h.logger, err, "list activities")
		return
	}
	kegID := c.Query("kegId")
	if kegID == "" {
		c.JSON(http.StatusOK, h.store.ListRecentActivities(limit))
		return
	}

	activities := h.store.ListActivitiesByKeg(kegID)
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	c.JSON(http.StatusOK, activities)
}
