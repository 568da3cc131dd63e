package models

import "time"

// OrderStatus tracks a weekly order from request to delivery.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// NothingNeeded is the item type a customer picks when they need no kegs that week.
const NothingNeeded = "DNA"

// OrderItem is a requested quantity of one cider type.
type OrderItem struct {
	Type     string `json:"type" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=1000"`
}

// Order is a customer's keg request for one week.
type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customerId"`
	WeekStartDate time.Time   `json:"weekStartDate"`
	Status        OrderStatus `json:"status"`
	Items         []OrderItem `json:"items"`
	TotalKegs     int         `json:"totalKegs"`
	Notes         *string     `json:"notes"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Clone returns a copy that shares no memory with o.
func (o Order) Clone() Order {
	o.Items = cloneSlice(o.Items)
	o.Notes = clonePtr(o.Notes)
	return o
}

// TotalKegs sums item quantities.
func TotalKegs(items []OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

type CreateOrderInput struct {
	CustomerID    string      `json:"customerId" validate:"required,max=64"`
	WeekStartDate time.Time   `json:"weekStartDate" validate:"required"`
	Status        OrderStatus `json:"status" validate:"omitempty,oneof=pending confirmed fulfilled cancelled"`
	Items         []OrderItem `json:"items" validate:"omitempty,max=50,dive"`
	Notes         *string     `json:"notes" validate:"omitempty,max=5000"`
}

type UpdateOrderInput struct {
	CustomerID    *string      `json:"customerId" validate:"omitnil,min=1,max=64"`
	WeekStartDate *time.Time   `json:"weekStartDate"`
	Status        *OrderStatus `json:"status" validate:"omitnil,oneof=pending confirmed fulfilled cancelled"`
	Items         *[]OrderItem `json:"items" validate:"omitnil,max=50,dive"`
	Notes         *string      `json:"notes" validate:"omitempty,max=5000"`
}

// Apply merges the fields present in p over o. TotalKegs follows Items.
func (o *Order) Apply(p UpdateOrderInput) {
	if p.CustomerID != nil {
		o.CustomerID = *p.CustomerID
	}
	if p.WeekStartDate != nil && !p.WeekStartDate.IsZero() {
		o.WeekStartDate = *p.WeekStartDate
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Items != nil {
		o.Items = nonNil(cloneSlice(*p.Items))
		o.TotalKegs = TotalKegs(o.Items)
	}
	if p.Notes != nil {
		o.Notes = OptionalString(p.Notes)
	}
}
