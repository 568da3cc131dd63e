package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/internal/repository/memory"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{in: time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC), want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{in: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{in: time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekStart(tt.in), tt.in.String())
	}
}

func TestSummarizeOrders(t *testing.T) {
	week := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: "o1", CustomerID: "c1", WeekStartDate: week, Status: models.OrderStatusPending, TotalKegs: 3,
			Items: []models.OrderItem{{Type: "Apple", Quantity: 2}, {Type: "Peach", Quantity: 1}, {Type: "Pear", Quantity: 0}}},
		{ID: "o2", CustomerID: "c2", WeekStartDate: week, Status: models.OrderStatusConfirmed, TotalKegs: 1,
			Items: []models.OrderItem{{Type: models.NothingNeeded, Quantity: 1}}},
		{ID: "o3", CustomerID: "gone", WeekStartDate: week, Status: models.OrderStatusPending, TotalKegs: 4,
			Items: []models.OrderItem{{Type: "Apple", Quantity: 4}}},
	}

	summary := SummarizeOrders(week, week.AddDate(0, 0, 6), orders, map[string]string{"c1": "Tipsy Tavern", "c2": "Craft Corner"})

	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 8, summary.TotalKegs)
	assert.Equal(t, map[models.OrderStatus]int{models.OrderStatusPending: 2, models.OrderStatusConfirmed: 1}, summary.ByStatus)
	assert.Equal(t, map[string]int{"Apple": 6, "Peach": 1, "Don't Need Anything": 1}, summary.ByCiderType)
	require.Len(t, summary.Orders, 3)
	assert.Equal(t, "Unknown customer", summary.Orders[2].CustomerName)

	rows := OrderSheetRows(summary, week)
	require.Len(t, rows, 3)
	assert.Equal(t, []interface{}{"2024-01-01", "Tipsy Tavern", "pending", "Apple x2, Peach x1", 3, "", "o1", "2024-01-01T00:00:00Z"}, rows[0])

	text := FormatOrderSummary(summary)
	assert.Contains(t, text, "3 orders, 8 kegs")
	assert.Contains(t, text, "- Apple: 6")
}

func TestDailyKegReportFromStore(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := memory.New(memory.WithClock(func() time.Time { return clock }))

	stale, err := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel, Status: models.KegStatusDeployed})
	require.NoError(t, err)
	_, err = store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel})
	require.NoError(t, err)

	clock = clock.AddDate(0, 0, 10)

	svc := NewService(store, 7, nil)
	svc.now = func() time.Time { return clock }

	report, err := svc.DailyKegReport()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), report.Date)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Deployed)
	assert.Equal(t, 1, report.Clean)
	assert.Equal(t, []string{stale.ID}, report.OverdueKegIDs)
	assert.Equal(t, 7, report.OverdueThresholdDays)

	text := FormatDailyKegReport(report)
	assert.Contains(t, text, "Overdue (>7 days): 1")
	assert.Contains(t, text, stale.ID)
}

func TestOrderSummaryResolvesCustomers(t *testing.T) {
	store := memory.New()
	customer, err := store.CreateCustomer(models.CreateCustomerInput{Name: "Tipsy Tavern"})
	require.NoError(t, err)
	week := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = store.CreateOrder(models.CreateOrderInput{CustomerID: customer.ID, WeekStartDate: week, Items: []models.OrderItem{{Type: "Apple", Quantity: 2}}})
	require.NoError(t, err)

	summary := NewService(store, 7, nil).OrderSummary(week, week.AddDate(0, 0, 6))
	require.Len(t, summary.Orders, 1)
	assert.Equal(t, "Tipsy Tavern", summary.Orders[0].CustomerName)
	assert.Equal(t, 2, summary.TotalKegs)
}
