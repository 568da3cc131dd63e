package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

// CustomerNoteStore is the part of the store the note endpoints use.
type CustomerNoteStore interface {
	CreateCustomerNote(in models.CreateCustomerNoteInput) (models.CustomerNote, error)
	GetCustomerNote(id string) (models.CustomerNote, bool)
	ListCustomerNotes() []models.CustomerNote
	ListCustomerNotesByCustomer(customerID string) []models.CustomerNote
	UpdateCustomerNote(id string, patch models.UpdateCustomerNoteInput) (models.CustomerNote, error)
	DeleteCustomerNote(id string)
}

// CustomerNoteHandler serves the sales notes kept per customer.
type CustomerNoteHandler struct {
	store  CustomerNoteStore
	logger *zap.Logger
}

func NewCustomerNoteHandler(store CustomerNoteStore, logger *zap.Logger) *CustomerNoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerNoteHandler{store: store, logger: logger}
}

func (h *CustomerNoteHandler) List(c *gin.Context) {
	if customerID := c.Query("customerId"); customerID != "" {
		c.JSON(http.StatusOK, h.store.ListCustomerNotesByCustomer(customerID))
		return
	}
	c.JSON(http.StatusOK, h.store.ListCustomerNotes())
}

// ListByCustomer returns the notes of :customerId, newest first.
func (h *CustomerNoteHandler) ListByCustomer(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListCustomerNotesByCustomer(c.Param("customerId")))
}

func (h *CustomerNoteHandler) Get(c *gin.Context) {
	id := c.Param("id")
	note, ok := h.store.GetCustomerNote(id)
	if !ok {
		respondNotFound(c, "Customer note", id)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *CustomerNoteHandler) Create(c *gin.Context) {
	var input models.CreateCustomerNoteInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create customer note")
		return
	}

	note, err := h.store.CreateCustomerNote(input)
	if err != nil {
		respondError(c, h.logger, err, "create customer note")
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *CustomerNoteHandler) Update(c *gin.Context) {
	var input models.UpdateCustomerNoteInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update customer note")
		return
	}

	note, err := h.store.UpdateCustomerNote(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update customer note")
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *CustomerNoteHandler) Delete(c *gin.Context) {
	h.store.DeleteCustomerNote(c.Param("id"))
	c.Status(http.StatusNoContent)
}
