package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

// CustomerStore is the part of the store the customer endpoints use.
type CustomerStore interface {
	CreateCustomer(in models.CreateCustomerInput) (models.Customer, error)
	GetCustomer(id string) (models.Customer, bool)
	ListCustomers() []models.Customer
	UpdateCustomer(id string, patch models.UpdateCustomerInput) (models.Customer, error)
	DeleteCustomer(id string)
	ListKegsByCustomer(customerID string) []models.Keg
	ListOrdersByCustomer(customerID string) []models.Order
	ListCustomerNotesByCustomer(customerID string) []models.CustomerNote
}

// CustomerHandler serves the bars and restaurants that take kegs.
type CustomerHandler struct {
	store  CustomerStore
	logger *zap.Logger
}

func NewCustomerHandler(store CustomerStore, logger *zap.Logger) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{store: store, logger: logger}
}

func (h *CustomerHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListCustomers())
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id := c.Param("id")
	customer, ok := h.store.GetCustomer(id)
	if !ok {
		respondNotFound(c, "Customer", id)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var input models.CreateCustomerInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create customer")
		return
	}

	customer, err := h.store.CreateCustomer(input)
	if err != nil {
		respondError(c, h.logger, err, "create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var input models.UpdateCustomerInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update customer")
		return
	}

	customer, err := h.store.UpdateCustomer(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Delete removes the customer. Deleting a missing customer succeeds; kegs,
// orders and notes that reference it are left alone.
func (h *CustomerHandler) Delete(c *gin.Context) {
	h.store.DeleteCustomer(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) Kegs(c *gin.Context) {
	id, ok := h.existing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.ListKegsByCustomer(id))
}

func (h *CustomerHandler) Orders(c *gin.Context) {
	id, ok := h.existing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.ListOrdersByCustomer(id))
}

func (h *CustomerHandler) Notes(c *gin.Context) {
	id, ok := h.existing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.ListCustomerNotesByCustomer(id))
}

func (h *CustomerHandler) existing(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, ok := h.store.GetCustomer(id); !ok {
		respondNotFound(c, "Customer", id)
		return "", false
	}
	return id, true
}
