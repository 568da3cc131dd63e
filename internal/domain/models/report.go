package models

import "time"

// DailyKegReport is the fleet snapshot archived every morning.
type DailyKegReport struct {
	Date                 time.Time `bson:"date" json:"date"`
	Total                int       `bson:"total" json:"total"`
	Full                 int       `bson:"full" json:"full"`
	Dirty                int       `bson:"dirty" json:"dirty"`
	Clean                int       `bson:"clean" json:"clean"`
	Deployed             int       `bson:"deployed" json:"deployed"`
	Overdue              int       `bson:"overdue" json:"overdue"`
	OverdueKegIDs        []string  `bson:"overdue_keg_ids" json:"overdueKegIds"`
	OverdueThresholdDays int       `bson:"overdue_threshold_days" json:"overdueThresholdDays"`
	CreatedAt            time.Time `bson:"created_at" json:"createdAt"`
}

// Stats returns the status counts of the report.
func (r DailyKegReport) Stats() KegStats {
	return KegStats{Total: r.Total, Full: r.Full, Dirty: r.Dirty, Clean: r.Clean, Deployed: r.Deployed}
}

// OrderSummary aggregates the orders of a week range.
type OrderSummary struct {
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	TotalOrders int                 `json:"totalOrders"`
	TotalKegs   int                 `json:"totalKegs"`
	ByStatus    map[OrderStatus]int `json:"byStatus"`
	ByCiderType map[string]int      `json:"byCiderType"`
	Orders      []OrderSummaryLine  `json:"orders"`
}

// OrderSummaryLine is one order with its customer name resolved.
type OrderSummaryLine struct {
	OrderID       string      `json:"orderId"`
	CustomerID    string      `json:"customerId"`
	CustomerName  string      `json:"customerName"`
	WeekStartDate time.Time   `json:"weekStartDate"`
	Status        OrderStatus `json:"status"`
	Items         []OrderItem `json:"items"`
	TotalKegs     int         `json:"totalKegs"`
	Notes         *string     `json:"notes"`
}
