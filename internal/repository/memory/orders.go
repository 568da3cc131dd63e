package memory

import (
	"slices"
	"time"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const orderEntity = "Order"

// CreateOrder stores a weekly order. TotalKegs is derived from the items.
func (s *Store) CreateOrder(in models.CreateOrderInput) (models.Order, error) {
	status := in.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	items := slices.Clone(in.Items)
	if items == nil {
		items = []models.OrderItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	order := models.Order{
		ID:            s.newID(),
		CustomerID:    in.CustomerID,
		WeekStartDate: in.WeekStartDate,
		Status:        status,
		Items:         items,
		TotalKegs:     models.TotalKegs(items),
		Notes:         models.OptionalString(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.orders[order.ID] = order
	return order.Clone(), nil
}

func (s *Store) GetOrder(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, false
	}
	return order.Clone(), true
}

// ListOrders returns every order, latest week first.
func (s *Store) ListOrders() []models.Order {
	return s.listOrders(nil)
}

func (s *Store) ListOrdersByCustomer(customerID string) []models.Order {
	return s.listOrders(func(o models.Order) bool { return o.CustomerID == customerID })
}

// ListOrdersByWeek returns orders whose week starts within the seven days
// beginning at the start of weekStart's day.
func (s *Store) ListOrdersByWeek(weekStart time.Time) []models.Order {
	from := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	to := from.AddDate(0, 0, 7)
	return s.listOrders(func(o models.Order) bool {
		return !o.WeekStartDate.Before(from) && o.WeekStartDate.Before(to)
	})
}

// ListOrdersByDateRange returns orders with start <= weekStartDate <= end.
func (s *Store) ListOrdersByDateRange(start, end time.Time) []models.Order {
	return s.listOrders(func(o models.Order) bool {
		return !o.WeekStartDate.Before(start) && !o.WeekStartDate.After(end)
	})
}

func (s *Store) listOrders(keep func(models.Order) bool) []models.Order {
	s.mu.RLock()
	orders := collect(s.orders, keep, models.Order.Clone)
	s.mu.RUnlock()

	slices.SortFunc(orders, func(a, b models.Order) int {
		return newestFirst(a.WeekStartDate, b.WeekStartDate, a.ID, b.ID)
	})
	return orders
}

func (s *Store) UpdateOrder(id string, patch models.UpdateOrderInput) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, notFound(orderEntity, id)
	}
	order.Apply(patch)
	order.UpdatedAt = s.timestamp()
	s.orders[id] = order
	return order.Clone(), nil
}

func (s *Store) DeleteOrder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
}
