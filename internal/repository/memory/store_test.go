package memory

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stoickegs/internal/domain/lifecycle"
	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/pkg/kegid"
)

// fakeClock advances by one minute on every reading so ordering by time is deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return New(WithClock(clock.Now)), clock
}

func strPtr(s string) *string { return &s }

func TestCreateKegAndLookup(t *testing.T) {
	store, _ := newTestStore(t)

	keg, err := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel})
	require.NoError(t, err)
	assert.True(t, kegid.IsValidKegID(keg.ID))
	assert.True(t, kegid.IsValidQRCode(keg.QRCode))
	assert.Equal(t, keg.ID, kegid.ExtractKegIDFromQR(keg.QRCode))
	assert.Equal(t, models.KegStatusClean, keg.Status)

	byID, ok := store.GetKeg(keg.ID)
	require.True(t, ok)
	assert.Equal(t, keg, byID)

	byQR, ok := store.GetKegByQRCode(keg.QRCode)
	require.True(t, ok)
	assert.Equal(t, keg, byQR)

	_, ok = store.GetKeg("K-00000000")
	assert.False(t, ok)

	history := store.ListActivitiesByKeg(keg.ID)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionCreated, history[0].Action)
	assert.NotEmpty(t, history[0].ID)
}

func TestCreateKegWithSuppliedID(t *testing.T) {
	store, _ := newTestStore(t)

	keg, err := store.CreateKeg(models.CreateKegInput{ID: "K-12345678", Size: models.KegSizeSixthBarrel})
	require.NoError(t, err)
	assert.Equal(t, "SK12345678", keg.QRCode)

	_, err = store.CreateKeg(models.CreateKegInput{ID: "K-12345678", Size: models.KegSizeSixthBarrel})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = store.CreateKeg(models.CreateKegInput{Size: models.KegSizeSixthBarrel, Status: models.KegStatusFull})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreateKegs(t *testing.T) {
	store, _ := newTestStore(t)

	kegs, err := store.CreateKegs(3, models.CreateKegInput{ID: "K-11111111", Size: models.KegSizeHalfBarrel, Location: strPtr("Cellar")})
	require.NoError(t, err)
	require.Len(t, kegs, 3)
	seen := map[string]bool{}
	for _, keg := range kegs {
		assert.False(t, seen[keg.ID])
		seen[keg.ID] = true
		assert.Equal(t, "Cellar", models.StringValue(keg.Location))
	}

	created, err := store.CreateKegs(2, models.CreateKegInput{Size: models.KegSizeHalfBarrel, Status: models.KegStatusFull})
	assert.Error(t, err)
	assert.Empty(t, created)
	assert.Len(t, store.ListKegs(), 3)

	for _, count := range []int{0, -1} {
		created, err = store.CreateKegs(count, models.CreateKegInput{Size: models.KegSizeHalfBarrel})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "count", verr.Errors[0].Path)
		assert.Nil(t, created)
	}
	assert.Len(t, store.ListKegs(), 3)
}

func TestFillScenario(t *testing.T) {
	store, _ := newTestStore(t)
	keg, err := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel, Status: models.KegStatusClean})
	require.NoError(t, err)

	_, err = store.UpdateKegStatus(keg.ID, models.UpdateKegStatusInput{Status: models.KegStatusFull})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ciderType", verr.Errors[0].Path)

	unchanged, _ := store.GetKeg(keg.ID)
	assert.Equal(t, models.KegStatusClean, unchanged.Status)
	assert.Len(t, store.ListActivitiesByKeg(keg.ID), 1)

	filled, err := store.UpdateKegStatus(keg.ID, models.UpdateKegStatusInput{Status: models.KegStatusFull, CiderType: strPtr("Apple")})
	require.NoError(t, err)
	assert.Equal(t, "Apple", models.StringValue(filled.CiderType))
	require.NotNil(t, filled.FilledAt)

	history := store.ListActivitiesByKeg(keg.ID)
	require.Len(t, history, 2)
	assert.Equal(t, models.KegStatusFull, history[0].NewStatus)
	assert.Equal(t, models.ActionFilled, history[0].Action)
	assert.Equal(t, models.KegStatusClean, *history[0].PreviousStatus)
}

func TestRefillRequiresCiderType(t *testing.T) {
	store, _ := newTestStore(t)
	keg, err := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel, Status: models.KegStatusFull, CiderType: strPtr("Apple")})
	require.NoError(t, err)
	_, err = store.UpdateKegStatus(keg.ID, models.UpdateKegStatusInput{Status: models.KegStatusDirty})
	require.NoError(t, err)

	_, err = store.UpdateKegStatus(keg.ID, models.UpdateKegStatusInput{Status: models.KegStatusFull})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, lifecycle.MsgFullWithoutCiderType, verr.Errors[0].Message)

	current, _ := store.GetKeg(keg.ID)
	assert.Equal(t, models.KegStatusDirty, current.Status)
}

func TestDeployToCustomerScenario(t *testing.T) {
	store, _ := newTestStore(t)
	customer, err := store.CreateCustomer(models.CreateCustomerInput{Name: "Tipsy Tavern"})
	require.NoError(t, err)
	assert.True(t, customer.IsActive)

	keg, err := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeSixthBarrel, Status: models.KegStatusFull, CiderType: strPtr("Apple")})
	require.NoError(t, err)
	_, err = store.CreateKeg(models.CreateKegInput{Size: models.KegSizeSixthBarrel})
	require.NoError(t, err)

	deployed, err := store.UpdateKegStatus(keg.ID, models.UpdateKegStatusInput{Status: models.KegStatusDeployed, CustomerID: &customer.ID})
	require.NoError(t, err)
	require.NotNil(t, deployed.DeployedAt)

	atCustomer := store.ListKegsByCustomer(customer.ID)
	require.Len(t, atCustomer, 1)
	assert.Equal(t, keg.ID, atCustomer[0].ID)
}

func TestUpdateMissingEntities(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.UpdateKegStatus("K-99999999", models.UpdateKegStatusInput{Status: models.KegStatusDirty})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.UpdateCustomer("missing", models.UpdateCustomerInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.UpdateOrder("missing", models.UpdateOrderInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.UpdateCustomerNote("missing", models.UpdateCustomerNoteInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.UpdateCiderType("missing", models.UpdateCiderTypeInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.UpdateCiderBatch("missing", models.UpdateCiderBatchInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.UpdateCiderIngredient("missing", models.UpdateCiderIngredientInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.UpdateFermentationBatch("missing", models.UpdateFermentationBatchInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.NotPanics(t, func() {
		store.DeleteCustomer("missing")
		store.DeleteOrder("missing")
		store.DeleteCiderType("missing")
		store.DeleteCiderBatch("missing")
		store.DeleteCiderIngredient("missing")
		store.DeleteFermentationBatch("missing")
	})
}

func TestDeleteCustomerNoteTwice(t *testing.T) {
	store, _ := newTestStore(t)
	note, err := store.CreateCustomerNote(models.CreateCustomerNoteInput{CustomerID: "c-1", Content: "prefers Friday delivery"})
	require.NoError(t, err)
	assert.Equal(t, models.NoteGeneral, note.Category)

	store.DeleteCustomerNote(note.ID)
	store.DeleteCustomerNote(note.ID)
	_, ok := store.GetCustomerNote(note.ID)
	assert.False(t, ok)
}

func TestKegStatsSumToTotal(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, Seed(store))

	stats := store.KegStats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, stats.Total, stats.Full+stats.Dirty+stats.Clean+stats.Deployed)
	assert.Equal(t, 2, stats.Clean)
	assert.Equal(t, 1, stats.Full)
	assert.Equal(t, 1, stats.Dirty)
	assert.Equal(t, 1, stats.Deployed)

	for _, keg := range store.ListKegs() {
		assert.NoError(t, lifecycle.CheckInvariant(keg), keg.ID)
	}
}

func TestOrdersByDateRangeAndWeek(t *testing.T) {
	store, _ := newTestStore(t)
	week1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	first, err := store.CreateOrder(models.CreateOrderInput{
		CustomerID: "c-1", WeekStartDate: week1,
		Items: []models.OrderItem{{Type: "Apple", Quantity: 2}, {Type: "Peach", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalKegs)
	assert.Equal(t, models.OrderStatusPending, first.Status)

	second, err := store.CreateOrder(models.CreateOrderInput{CustomerID: "c-2", WeekStartDate: week2})
	require.NoError(t, err)
	assert.Equal(t, 0, second.TotalKegs)
	assert.NotNil(t, second.Items)

	inRange := store.ListOrdersByDateRange(week1, week1.AddDate(0, 0, 6))
	require.Len(t, inRange, 1)
	assert.Equal(t, first.ID, inRange[0].ID)

	both := store.ListOrdersByDateRange(week1, week2)
	require.Len(t, both, 2)
	assert.Equal(t, second.ID, both[0].ID, "latest week first")

	byWeek := store.ListOrdersByWeek(week2.Add(15 * time.Hour))
	require.Len(t, byWeek, 1)
	assert.Equal(t, second.ID, byWeek[0].ID)

	items := []models.OrderItem{{Type: "Rhubarb", Quantity: 5}}
	updated, err := store.UpdateOrder(second.ID, models.UpdateOrderInput{Items: &items})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalKegs)
	assert.True(t, updated.UpdatedAt.After(second.UpdatedAt))
}

func TestReturnedCopiesAreIndependent(t *testing.T) {
	store, _ := newTestStore(t)
	order, err := store.CreateOrder(models.CreateOrderInput{
		CustomerID: "c-1", WeekStartDate: time.Now(),
		Items: []models.OrderItem{{Type: "Apple", Quantity: 1}},
	})
	require.NoError(t, err)

	order.Items[0].Quantity = 50
	stored, _ := store.GetOrder(order.ID)
	assert.Equal(t, 1, stored.Items[0].Quantity)

	listed := store.ListOrders()
	listed[0].Items[0].Type = "Pear"
	stored, _ = store.GetOrder(order.ID)
	assert.Equal(t, "Apple", stored.Items[0].Type)
}

func TestListOrdering(t *testing.T) {
	store, _ := newTestStore(t)

	for _, name := range []string{"peach", "Apple", "Rhubarb"} {
		_, err := store.CreateCiderType(models.CreateCiderTypeInput{Name: name})
		require.NoError(t, err)
	}
	var names []string
	for _, ct := range store.ListCiderTypes() {
		names = append(names, ct.Name)
	}
	assert.Equal(t, []string{"Apple", "peach", "Rhubarb"}, names)

	older := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	undated, _ := store.CreateCiderBatch(models.CreateCiderBatchInput{CiderTypeID: "t", BatchNumber: "B0"})
	oldBatch, _ := store.CreateCiderBatch(models.CreateCiderBatchInput{CiderTypeID: "t", BatchNumber: "B1", Date: &older})
	newBatch, _ := store.CreateCiderBatch(models.CreateCiderBatchInput{CiderTypeID: "t", BatchNumber: "B2", Date: &newer})
	batches := store.ListCiderBatchesByType("t")
	require.Len(t, batches, 3)
	assert.Equal(t, []string{newBatch.ID, oldBatch.ID, undated.ID}, []string{batches[0].ID, batches[1].ID, batches[2].ID})

	keg1, _ := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel})
	keg2, _ := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel})
	_, err := store.UpdateKegStatus(keg1.ID, models.UpdateKegStatusInput{Status: models.KegStatusDirty})
	require.NoError(t, err)
	kegs := store.ListKegs()
	assert.Equal(t, keg1.ID, kegs[0].ID)
	assert.Equal(t, keg2.ID, kegs[1].ID)

	recent := store.ListRecentActivities(2)
	require.Len(t, recent, 2)
	assert.Equal(t, keg1.ID, recent[0].KegID)
	assert.Equal(t, models.ActionReturned, recent[0].Action)
	assert.Len(t, store.ListRecentActivities(0), 3)
}

func TestCiderTypeNameUnique(t *testing.T) {
	store, _ := newTestStore(t)
	apple, err := store.CreateCiderType(models.CreateCiderTypeInput{Name: "Apple"})
	require.NoError(t, err)
	pear, err := store.CreateCiderType(models.CreateCiderTypeInput{Name: "Pear"})
	require.NoError(t, err)

	_, err = store.CreateCiderType(models.CreateCiderTypeInput{Name: "apple"})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = store.UpdateCiderType(pear.ID, models.UpdateCiderTypeInput{Name: strPtr("APPLE")})
	assert.ErrorIs(t, err, models.ErrConflict)

	renamed, err := store.UpdateCiderType(apple.ID, models.UpdateCiderTypeInput{Name: strPtr("apple")})
	require.NoError(t, err)
	assert.Equal(t, "apple", renamed.Name)
}

func TestOverdueKegs(t *testing.T) {
	store, clock := newTestStore(t)

	first, _ := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel, Status: models.KegStatusDeployed})
	clock.Advance(24 * time.Hour)
	second, _ := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel, Status: models.KegStatusDeployed})
	clock.Advance(24 * time.Hour)
	fresh, _ := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel, Status: models.KegStatusDeployed})
	_, err := store.UpdateKegStatus(second.ID, models.UpdateKegStatusInput{Status: models.KegStatusDeployed})
	require.NoError(t, err)

	clock.Advance(8 * 24 * time.Hour)
	_, err = store.UpdateKegStatus(fresh.ID, models.UpdateKegStatusInput{Status: models.KegStatusDirty})
	require.NoError(t, err)

	overdue, err := store.OverdueKegs(7)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, first.ID, overdue[0].ID)
	assert.Equal(t, second.ID, overdue[1].ID)

	_, err = store.OverdueKegs(0)
	assert.ErrorIs(t, err, ErrInvalidOverdueDays)
}

func TestBatchUpdateKegStatus(t *testing.T) {
	store, _ := newTestStore(t)
	a, _ := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel})
	b, _ := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel})

	results := store.BatchUpdateKegStatus([]models.BatchStatusItem{
		{KegID: a.ID, Status: models.KegStatusFull, CiderType: strPtr("Apple")},
		{QRCode: b.QRCode, Status: models.KegStatusFull},
		{QRCode: "SK00000001", Status: models.KegStatusDirty},
	})
	require.Len(t, results, 3)

	assert.True(t, results[0].OK)
	require.NotNil(t, results[0].Keg)
	assert.Equal(t, models.KegStatusFull, results[0].Keg.Status)

	assert.False(t, results[1].OK)
	assert.Equal(t, b.ID, results[1].KegID)
	assert.Equal(t, lifecycle.MsgFullWithoutCiderType, results[1].Error)

	assert.False(t, results[2].OK)
	assert.Equal(t, "K-00000001", results[2].KegID)
	assert.Equal(t, "Keg not found", results[2].Error)
}

func TestConcurrentStatusUpdates(t *testing.T) {
	store, _ := newTestStore(t)
	keg, err := store.CreateKeg(models.CreateKegInput{Size: models.KegSizeHalfBarrel})
	require.NoError(t, err)

	statuses := []models.UpdateKegStatusInput{
		{Status: models.KegStatusFull, CiderType: strPtr("Apple")},
		{Status: models.KegStatusDeployed},
		{Status: models.KegStatusDirty},
		{Status: models.KegStatusClean},
	}

	const workers = 16
	const perWorker = 25
	var wg sync.WaitGroup
	var failures sync.Map
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				in := statuses[(w+i)%len(statuses)]
				if _, err := store.UpdateKegStatus(keg.ID, in); err != nil {
					var verr *models.ValidationError
					if !errors.As(err, &verr) {
						failures.Store(fmt.Sprintf("%d-%d", w, i), err)
					}
				}
				_ = store.ListKegs()
				_ = store.KegStats()
			}
		}(w)
	}
	wg.Wait()

	failures.Range(func(key, value any) bool {
		t.Errorf("unexpected error %v: %v", key, value)
		return true
	})

	final, ok := store.GetKeg(keg.ID)
	require.True(t, ok)
	assert.NoError(t, lifecycle.CheckInvariant(final))

	history := store.ListActivitiesByKeg(keg.ID)
	require.NotEmpty(t, history)
	assert.Equal(t, final.Status, history[0].NewStatus)
}

func TestSeed(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, Seed(store))

	assert.Len(t, store.ListCustomers(), 4)
	assert.Len(t, store.ListCiderTypes(), 5)

	deployed := store.ListKegsByStatus(models.KegStatusDeployed)
	require.Len(t, deployed, 1)
	require.NotNil(t, deployed[0].CustomerID)
	customer, ok := store.GetCustomer(*deployed[0].CustomerID)
	require.True(t, ok)
	assert.Equal(t, "The Tipsy Tavern", customer.Name)
	assert.Equal(t, "Peach", models.StringValue(deployed[0].CiderType))
	assert.Len(t, store.ListActivitiesByKeg(deployed[0].ID), 3)
}
