package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

// FermentationStore is the part of the store the fermentation endpoints use.
type FermentationStore interface {
	CreateFermentationBatch(in models.CreateFermentationBatchInput) (models.FermentationBatch, error)
	GetFermentationBatch(id string) (models.FermentationBatch, bool)
	ListFermentationBatches() []models.FermentationBatch
	UpdateFermentationBatch(id string, patch models.UpdateFermentationBatchInput) (models.FermentationBatch, error)
	DeleteFermentationBatch(id string)
}

type FermentationHandler struct {
	store  FermentationStore
	logger *zap.Logger
}

func NewFermentationHandler(store FermentationStore, logger *zap.Logger) *FermentationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FermentationHandler{store: store, logger: logger}
}

func (h *FermentationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListFermentationBatches())
}

func (h *FermentationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	batch, ok := h.store.GetFermentationBatch(id)
	if !ok {
		respondNotFound(c, "Fermentation batch", id)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *FermentationHandler) Create(c *gin.Context) {
	var input models.CreateFermentationBatchInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create fermentation batch")
		return
	}

	batch, err := h.store.CreateFermentationBatch(input)
	if err != nil {
		respondError(c, h.logger, err, "create fermentation batch")
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *FermentationHandler) Update(c *gin.Context) {
	var input models.UpdateFermentationBatchInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update fermentation batch")
		return
	}

	batch, err := h.store.UpdateFermentationBatch(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update fermentation batch")
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *FermentationHandler) Delete(c *gin.Context) {
	h.store.DeleteFermentationBatch(c.Param("id"))
	c.Status(http.StatusNoContent)
}
