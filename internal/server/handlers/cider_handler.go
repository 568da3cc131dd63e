package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

// CiderStore is the production catalogue: cider types, batches and the
// ingredients that went into them.
type CiderStore interface {
	CreateCiderType(in models.CreateCiderTypeInput) (models.CiderType, error)
	GetCiderType(id string) (models.CiderType, bool)
	ListCiderTypes() []models.CiderType
	UpdateCiderType(id string, patch models.UpdateCiderTypeInput) (models.CiderType, error)
	DeleteCiderType(id string)

	CreateCiderBatch(in models.CreateCiderBatchInput) (models.CiderBatch, error)
	GetCiderBatch(id string) (models.CiderBatch, bool)
	ListCiderBatches() []models.CiderBatch
	ListCiderBatchesByType(ciderTypeID string) []models.CiderBatch
	UpdateCiderBatch(id string, patch models.UpdateCiderBatchInput) (models.CiderBatch, error)
	DeleteCiderBatch(id string)

	CreateCiderIngredient(in models.CreateCiderIngredientInput) (models.CiderIngredient, error)
	GetCiderIngredient(id string) (models.CiderIngredient, bool)
	ListCiderIngredients() []models.CiderIngredient
	ListCiderIngredientsByBatch(batchID string) []models.CiderIngredient
	UpdateCiderIngredient(id string, patch models.UpdateCiderIngredientInput) (models.CiderIngredient, error)
	DeleteCiderIngredient(id string)
}

// CiderHandler serves the production catalogue endpoints.
type CiderHandler struct {
	store  CiderStore
	logger *zap.Logger
}

func NewCiderHandler(store CiderStore, logger *zap.Logger) *CiderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CiderHandler{store: store, logger: logger}
}

func (h *CiderHandler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListCiderTypes())
}

func (h *CiderHandler) GetType(c *gin.Context) {
	id := c.Param("id")
	ciderType, ok := h.store.GetCiderType(id)
	if !ok {
		respondNotFound(c, "Cider type", id)
		return
	}
	c.JSON(http.StatusOK, ciderType)
}

// CreateType adds a cider type. Names are unique regardless of case.
func (h *CiderHandler) CreateType(c *gin.Context) {
	var input models.CreateCiderTypeInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create cider type")
		return
	}

	ciderType, err := h.store.CreateCiderType(input)
	if err != nil {
		respondError(c, h.logger, err, "create cider type")
		return
	}
	c.JSON(http.StatusCreated, ciderType)
}

func (h *CiderHandler) UpdateType(c *gin.Context) {
	var input models.UpdateCiderTypeInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update cider type")
		return
	}

	ciderType, err := h.store.UpdateCiderType(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update cider type")
		return
	}
	c.JSON(http.StatusOK, ciderType)
}

func (h *CiderHandler) DeleteType(c *gin.Context) {
	h.store.DeleteCiderType(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ListBatches returns batches newest first, optionally for one cider type.
func (h *CiderHandler) ListBatches(c *gin.Context) {
	if ciderTypeID := c.Query("ciderTypeId"); ciderTypeID != "" {
		c.JSON(http.StatusOK, h.store.ListCiderBatchesByType(ciderTypeID))
		return
	}
	c.JSON(http.StatusOK, h.store.ListCiderBatches())
}

func (h *CiderHandler) GetBatch(c *gin.Context) {
	id := c.Param("id")
	batch, ok := h.store.GetCiderBatch(id)
	if !ok {
		respondNotFound(c, "Cider batch", id)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *CiderHandler) CreateBatch(c *gin.Context) {
	var input models.CreateCiderBatchInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create cider batch")
		return
	}

	batch, err := h.store.CreateCiderBatch(input)
	if err != nil {
		respondError(c, h.logger, err, "create cider batch")
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *CiderHandler) UpdateBatch(c *gin.Context) {
	var input models.UpdateCiderBatchInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update cider batch")
		return
	}

	batch, err := h.store.UpdateCiderBatch(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update cider batch")
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *CiderHandler) DeleteBatch(c *gin.Context) {
	h.store.DeleteCiderBatch(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *CiderHandler) ListIngredients(c *gin.Context) {
	if batchID := c.Query("batchId"); batchID != "" {
		c.JSON(http.StatusOK, h.store.ListCiderIngredientsByBatch(batchID))
		return
	}
	c.JSON(http.StatusOK, h.store.ListCiderIngredients())
}

func (h *CiderHandler) GetIngredient(c *gin.Context) {
	id := c.Param("id")
	ingredient, ok := h.store.GetCiderIngredient(id)
	if !ok {
		respondNotFound(c, "Cider ingredient", id)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *CiderHandler) CreateIngredient(c *gin.Context) {
	var input models.CreateCiderIngredientInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create cider ingredient")
		return
	}

	ingredient, err := h.store.CreateCiderIngredient(input)
	if err != nil {
		respondError(c, h.logger, err, "create cider ingredient")
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *CiderHandler) UpdateIngredient(c *gin.Context) {
	var input models.UpdateCiderIngredientInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update cider ingredient")
		return
	}

	ingredient, err := h.store.UpdateCiderIngredient(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update cider ingredient")
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *CiderHandler) DeleteIngredient(c *gin.Context) {
	h.store.DeleteCiderIngredient(c.Param("id"))
	c.Status(http.StatusNoContent)
}
