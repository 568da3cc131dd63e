package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const (
	dateLayout      = "2006-01-02"
	unknownCustomer = "Unknown customer"
	nothingNeeded   = "Don't Need Anything"
)

// Store is the read side of the keg store used for reports.
type Store interface {
	KegStats() models.KegStats
	OverdueKegs(days int) ([]models.Keg, error)
	ListOrdersByDateRange(start, end time.Time) []models.Order
	GetCustomer(id string) (models.Customer, bool)
}

// Service builds the fleet and order reports sent to the team.
type Service struct {
	store       Store
	overdueDays int
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(store Store, overdueDays int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, overdueDays: overdueDays, logger: logger, now: time.Now}
}

// OverdueDays is the threshold used when no other is supplied.
func (s *Service) OverdueDays() int {
	return s.overdueDays
}

// DailyKegReport snapshots the fleet right now.
func (s *Service) DailyKegReport() (models.DailyKegReport, error) {
	overdue, err := s.store.OverdueKegs(s.overdueDays)
	if err != nil {
		return models.DailyKegReport{}, fmt.Errorf("load overdue kegs: %w", err)
	}
	now := s.now().UTC()
	return BuildDailyKegReport(now, s.store.KegStats(), overdue, s.overdueDays), nil
}

// BuildDailyKegReport assembles a report for the day of now.
func BuildDailyKegReport(now time.Time, stats models.KegStats, overdue []models.Keg, thresholdDays int) models.DailyKegReport {
	ids := make([]string, 0, len(overdue))
	for _, keg := range overdue {
		ids = append(ids, keg.ID)
	}
	return models.DailyKegReport{
		Date:                 time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Total:                stats.Total,
		Full:                 stats.Full,
		Dirty:                stats.Dirty,
		Clean:                stats.Clean,
		Deployed:             stats.Deployed,
		Overdue:              len(overdue),
		OverdueKegIDs:        ids,
		OverdueThresholdDays: thresholdDays,
		CreatedAt:            now,
	}
}

// OrderSummary aggregates the orders whose week starts in [start, end].
func (s *Service) OrderSummary(start, end time.Time) models.OrderSummary {
	orders := s.store.ListOrdersByDateRange(start, end)
	names := make(map[string]string)
	for _, order := range orders {
		if _, seen := names[order.CustomerID]; seen {
			continue
		}
		if customer, ok := s.store.GetCustomer(order.CustomerID); ok {
			names[order.CustomerID] = customer.Name
		} else {
			s.logger.Debug("order references unknown customer", zap.String("order_id", order.ID), zap.String("customer_id", order.CustomerID))
			names[order.CustomerID] = unknownCustomer
		}
	}
	return SummarizeOrders(start, end, orders, names)
}

// SummarizeOrders counts orders by status and kegs by cider type. Items with
// no quantity are left out of the cider type totals.
func SummarizeOrders(start, end time.Time, orders []models.Order, customerNames map[string]string) models.OrderSummary {
	summary := models.OrderSummary{
		StartDate:   start,
		EndDate:     end,
		ByStatus:    make(map[models.OrderStatus]int),
		ByCiderType: make(map[string]int),
		Orders:      make([]models.OrderSummaryLine, 0, len(orders)),
	}

	for _, order := range orders {
		summary.TotalOrders++
		summary.TotalKegs += order.TotalKegs
		summary.ByStatus[order.Status]++
		for _, item := range order.Items {
			if item.Quantity > 0 {
				summary.ByCiderType[DisplayCiderType(item.Type)] += item.Quantity
			}
		}

		name, ok := customerNames[order.CustomerID]
		if !ok {
			name = unknownCustomer
		}
		summary.Orders = append(summary.Orders, models.OrderSummaryLine{
			OrderID:       order.ID,
			CustomerID:    order.CustomerID,
			CustomerName:  name,
			WeekStartDate: order.WeekStartDate,
			Status:        order.Status,
			Items:         order.Items,
			TotalKegs:     order.TotalKegs,
			Notes:         order.Notes,
		})
	}
	return summary
}

// DisplayCiderType spells out the "nothing needed" placeholder.
func DisplayCiderType(itemType string) string {
	if itemType == models.NothingNeeded {
		return nothingNeeded
	}
	return itemType
}

// OrderSheetRows flattens a summary into spreadsheet rows, one per order.
func OrderSheetRows(summary models.OrderSummary, exportedAt time.Time) [][]interface{} {
	rows := make([][]interface{}, 0, len(summary.Orders))
	for _, line := range summary.Orders {
		rows = append(rows, []interface{}{
			line.WeekStartDate.Format(dateLayout),
			line.CustomerName,
			string(line.Status),
			formatItems(line.Items),
			line.TotalKegs,
			models.StringValue(line.Notes),
			line.OrderID,
			exportedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func formatItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", DisplayCiderType(item.Type), item.Quantity))
		}
	}
	return strings.Join(parts, ", ")
}

// FormatDailyKegReport renders the report as a chat message.
func FormatDailyKegReport(report models.DailyKegReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Keg report %s\n", report.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Total %d | Full %d | Deployed %d | Dirty %d | Clean %d", report.Total, report.Full, report.Deployed, report.Dirty, report.Clean)
	if report.Overdue > 0 {
		fmt.Fprintf(&b, "\nOverdue (>%d days): %d\n%s", report.OverdueThresholdDays, report.Overdue, strings.Join(report.OverdueKegIDs, ", "))
	}
	return b.String()
}

// FormatOrderSummary renders the weekly order digest as a chat message.
func FormatOrderSummary(summary models.OrderSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orders %s - %s\n", summary.StartDate.Format(dateLayout), summary.EndDate.Format(dateLayout))
	fmt.Fprintf(&b, "%d orders, %d kegs", summary.TotalOrders, summary.TotalKegs)

	types := make([]string, 0, len(summary.ByCiderType))
	for name := range summary.ByCiderType {
		types = append(types, name)
	}
	sort.Strings(types)
	for _, name := range types {
		fmt.Fprintf(&b, "\n- %s: %d", name, summary.ByCiderType[name])
	}
	return b.String()
}

// WeekStart returns midnight UTC of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	start := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}
