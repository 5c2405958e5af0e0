package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbook/booking-api/internal/testutil"
	"github.com/fitbook/booking-api/pkg/timezone"
)

func TestListClasses(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens classes and sessions in catalog order", func(t *testing.T) {
		store := testutil.NewFakeStore()
		yoga := store.AddClass("Yoga", "Yoga class")
		zumba := store.AddClass("Zumba", "Zumba class")

		morning := time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC)
		evening := time.Date(2025, 7, 9, 12, 30, 0, 0, time.UTC)
		store.AddSession(yoga.ID, morning, morning.Add(time.Hour), 10)
		store.AddSession(yoga.ID, evening, evening.Add(time.Hour), 10)
		store.AddSession(zumba.ID, morning.Add(time.Hour), morning.Add(2*time.Hour), 5)

		svc := NewService(store.ClassRepository())
		listings, err := svc.ListClasses(ctx, "Asia/Kolkata")
		require.NoError(t, err)
		require.Len(t, listings, 3)

		assert.Equal(t, "Yoga", listings[0].Class)
		assert.Equal(t, "Yoga", listings[1].Class)
		assert.Equal(t, "Zumba", listings[2].Class)

		first := listings[0]
		assert.Equal(t, yoga.ID, first.ID)
		assert.Equal(t, "2025-07-09 07:00", first.StartTime)
		assert.Equal(t, "2025-07-09 08:00", first.EndTime)
		assert.Equal(t, 10, first.Capacity)
		assert.Equal(t, 10, first.SpotsLeft)
	})

	t.Run("spots left reflects bookings", func(t *testing.T) {
		store := testutil.NewFakeStore()
		yoga := store.AddClass("Yoga", "Yoga class")
		start := time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC)
		session := store.AddSession(yoga.ID, start, start.Add(time.Hour), 2)

		client := store.AddClient("Alice", "alice@example.com")
		_, err := store.BookingRepository().CreateWithCapacityCheck(ctx, client.ID, session.ID)
		require.NoError(t, err)

		svc := NewService(store.ClassRepository())
		listings, err := svc.ListClasses(ctx, "UTC")
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, 1, listings[0].SpotsLeft)
	})

	t.Run("invalid timezone fails whole listing", func(t *testing.T) {
		store := testutil.NewFakeStore()
		store.AddClass("Yoga", "Yoga class")

		svc := NewService(store.ClassRepository())
		_, err := svc.ListClasses(ctx, "Mars/Nowhere")
		assert.ErrorIs(t, err, timezone.ErrInvalidTimezone)
	})

	t.Run("empty catalog", func(t *testing.T) {
		store := testutil.NewFakeStore()
		svc := NewService(store.ClassRepository())

		listings, err := svc.ListClasses(ctx, "UTC")
		require.NoError(t, err)
		assert.Empty(t, listings)
	})
}
