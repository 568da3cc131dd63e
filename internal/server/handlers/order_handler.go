package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

// OrderStore is the part of the store the order endpoints use.
type OrderStore interface {
	CreateOrder(in models.CreateOrderInput) (models.Order, error)
	GetOrder(id string) (models.Order, bool)
	ListOrders() []models.Order
	ListOrdersByCustomer(customerID string) []models.Order
	ListOrdersByWeek(weekStart time.Time) []models.Order
	ListOrdersByDateRange(start, end time.Time) []models.Order
	UpdateOrder(id string, patch models.UpdateOrderInput) (models.Order, error)
	DeleteOrder(id string)
}

// OrderHandler serves weekly customer orders.
type OrderHandler struct {
	store  OrderStore
	logger *zap.Logger
}

func NewOrderHandler(store OrderStore, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{store: store, logger: logger}
}

func (h *OrderHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListOrders())
}

func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	order, ok := h.store.GetOrder(id)
	if !ok {
		respondNotFound(c, "Order", id)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListOrdersByCustomer(c.Param("customerId")))
}

// ListByWeek returns the orders of the seven days starting at ?date=.
func (h *OrderHandler) ListByWeek(c *gin.Context) {
	date, err := dateQuery(c, "date")
	if err != nil {
		respondError(c, h.logger, err, "list orders")
		return
	}
	c.JSON(http.StatusOK, h.store.ListOrdersByWeek(date))
}

// ListByDateRange returns orders whose week starts within the range.
func (h *OrderHandler) ListByDateRange(c *gin.Context) {
	start, end, err := dateRangeQuery(c)
	if err != nil {
		respondError(c, h.logger, err, "list orders")
		return
	}
	c.JSON(http.StatusOK, h.store.ListOrdersByDateRange(start, end))
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input models.CreateOrderInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "create order")
		return
	}

	order, err := h.store.CreateOrder(input)
	if err != nil {
		respondError(c, h.logger, err, "create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	var input models.UpdateOrderInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, h.logger, err, "update order")
		return
	}

	order, err := h.store.UpdateOrder(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err, "update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	h.store.DeleteOrder(c.Param("id"))
	c.Status(http.StatusNoContent)
}
