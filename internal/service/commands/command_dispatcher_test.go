package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/internal/repository/memory"
)

func newDispatcher(t *testing.T) (*Service, *memory.Store, models.Keg) {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New(memory.WithClock(func() time.Time { return now }))
	keg, err := store.CreateKeg(models.CreateKegInput{ID: "K-12345678", Size: models.KegSizeHalfBarrel})
	require.NoError(t, err)

	svc := NewService(store, 7, nil)
	svc.now = func() time.Time { return now.AddDate(0, 0, 3) }
	return svc, store, keg
}

func TestHandleCommandReplies(t *testing.T) {
	svc, _, _ := newDispatcher(t)
	ctx := context.Background()

	reply, err := svc.HandleCommand(ctx, models.ParseCommand("/keg sk12345678"), "15550101")
	require.NoError(t, err)
	assert.Contains(t, reply, "K-12345678 (half_bbl) CLEAN")

	reply, err = svc.HandleCommand(ctx, models.ParseCommand("/keg K-12345678"), "15550101")
	require.NoError(t, err)
	assert.Contains(t, reply, "K-12345678")

	reply, err = svc.HandleCommand(ctx, models.ParseCommand("/stats"), "15550101")
	require.NoError(t, err)
	assert.Contains(t, reply, "1 total")
	assert.Contains(t, reply, "Clean 1")

	reply, err = svc.HandleCommand(ctx, models.ParseCommand("help"), "15550101")
	require.NoError(t, err)
	assert.Equal(t, HelpText, reply)
}

func TestHandleStatusCommand(t *testing.T) {
	svc, store, keg := newDispatcher(t)
	ctx := context.Background()

	_, err := svc.HandleCommand(ctx, models.ParseCommand("/status SK12345678 full"), "15550101")
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Beer type is required for full kegs", verr.Message)

	reply, err := svc.HandleCommand(ctx, models.ParseCommand("/status SK12345678 FULL Prickly Pear"), "15550101")
	require.NoError(t, err)
	assert.Equal(t, "K-12345678 is now full. Cider: Prickly Pear.", reply)

	stored, _ := store.GetKeg(keg.ID)
	assert.Equal(t, "Prickly Pear", models.StringValue(stored.CiderType))

	history := store.ListActivitiesByKeg(keg.ID)
	require.NotEmpty(t, history)
	assert.Equal(t, "via WhatsApp from 15550101", models.StringValue(history[0].Notes))
}

func TestHandleOverdueCommand(t *testing.T) {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New(memory.WithClock(func() time.Time { return clock }))
	_, err := store.CreateKeg(models.CreateKegInput{ID: "K-22222222", Size: models.KegSizeHalfBarrel, Status: models.KegStatusDeployed, Location: strPtr("Pub")})
	require.NoError(t, err)

	svc := NewService(store, 7, nil)
	ctx := context.Background()

	reply, err := svc.HandleCommand(ctx, models.ParseCommand("/overdue"), "")
	require.NoError(t, err)
	assert.Equal(t, "No kegs deployed for more than 7 days.", reply)

	clock = clock.AddDate(0, 0, 5)
	reply, err = svc.HandleCommand(ctx, models.ParseCommand("/overdue 3"), "")
	require.NoError(t, err)
	assert.Equal(t, "1 kegs deployed for more than 3 days:\nK-22222222 since 2024-03-01 at Pub", reply)
}

func TestHandleCommandErrors(t *testing.T) {
	svc, _, _ := newDispatcher(t)
	ctx := context.Background()

	tests := []struct {
		message string
		want    error
	}{
		{message: "/keg", want: ErrInvalidArguments},
		{message: "/status SK12345678", want: ErrInvalidArguments},
		{message: "/status SK12345678 lost", want: ErrInvalidArguments},
		{message: "/overdue soon", want: ErrInvalidArguments},
		{message: "/overdue -1", want: ErrInvalidArguments},
		{message: "/refill 12", want: ErrUnsupportedCommand},
		{message: "/keg SK99999999", want: models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			_, err := svc.HandleCommand(ctx, models.ParseCommand(tt.message), "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func strPtr(s string) *string { return &s }
