package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/ptr"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

var testDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func mustParse(t *testing.T, s string) timeofday.TimeOfDay {
	t.Helper()
	tod, err := timeofday.Parse(s)
	require.NoError(t, err)
	return tod
}

func candidate(t *testing.T, stationID int64, start, end string) Candidate {
	t.Helper()
	return Candidate{
		Date:        testDate,
		StationID:   stationID,
		StartTime:   mustParse(t, start),
		EndTime:     mustParse(t, end),
		MemberName:  "张三",
		MemberPhone: "13800138000",
	}
}

func TestReserve(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	booking, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, "09:00", booking.StartTime.String())
	assert.Equal(t, "11:00", booking.EndTime.String())
}

func TestReserveConflicts(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		start, end string
		stationID  int64
		wantErr    error
	}{
		{name: "overlapping window", start: "10:00", end: "11:00", stationID: 1, wantErr: ErrConflict},
		{name: "identical window", start: "09:00", end: "11:00", stationID: 1, wantErr: ErrConflict},
		{name: "containing window", start: "08:00", end: "12:00", stationID: 1, wantErr: ErrConflict},
		{name: "adjacent before is free", start: "08:00", end: "09:00", stationID: 1},
		{name: "adjacent after is free", start: "11:00", end: "12:00", stationID: 1},
		{name: "other station is free", start: "10:00", end: "11:00", stationID: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemStore()
			_, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
			require.NoError(t, err)

			_, err = store.Reserve(ctx, candidate(t, tt.stationID, tt.start, tt.end))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReserveOtherDateDoesNotConflict(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	require.NoError(t, err)

	c := candidate(t, 1, "09:00", "11:00")
	c.Date = testDate.AddDate(0, 0, 1)
	_, err = store.Reserve(ctx, c)
	assert.NoError(t, err)
}

func TestReserveIdempotency(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	c := candidate(t, 1, "09:00", "11:00")
	c.RequestID = ptr.Ptr("req-1")

	first, err := store.Reserve(ctx, c)
	require.NoError(t, err)

	replay, err := store.Reserve(ctx, c)
	require.NoError(t, err, "replaying the same request id must not conflict")
	assert.Equal(t, first.ID, replay.ID)

	all, err := store.Query(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCancelIsIdempotent(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	booking, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	require.NoError(t, err)

	cancelled, err := store.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	again, err := store.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, cancelled.CancelledAt, again.CancelledAt, "second cancel must not move the timestamp")

	_, err = store.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelFreesTheSlot(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	booking, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	require.NoError(t, err)

	_, err = store.Cancel(ctx, booking.ID)
	require.NoError(t, err)

	_, err = store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	assert.NoError(t, err, "cancelled booking must not block the window")
}

func TestDelete(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	booking, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, booking.ID))
	assert.ErrorIs(t, store.Delete(ctx, booking.ID), ErrNotFound)

	_, err = store.Get(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	assert.NoError(t, err)
}

func TestIsAvailable(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	booking, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
	require.NoError(t, err)

	free, err := store.IsAvailable(ctx, 1, testDate, mustParse(t, "10:00"), mustParse(t, "12:00"), "")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = store.IsAvailable(ctx, 1, testDate, mustParse(t, "11:00"), mustParse(t, "12:00"), "")
	require.NoError(t, err)
	assert.True(t, free)

	free, err = store.IsAvailable(ctx, 1, testDate, mustParse(t, "10:00"), mustParse(t, "12:00"), booking.ID)
	require.NoError(t, err)
	assert.True(t, free, "excluded booking is ignored")
}

func TestQueryFiltersAndOrdering(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	first, err := store.Reserve(ctx, candidate(t, 1, "09:00", "10:00"))
	require.NoError(t, err)

	c := candidate(t, 2, "08:00", "09:00")
	c.MemberPhone = "13912345678"
	second, err := store.Reserve(ctx, c)
	require.NoError(t, err)

	c = candidate(t, 1, "07:00", "08:00")
	c.Date = testDate.AddDate(0, 0, 1)
	third, err := store.Reserve(ctx, c)
	require.NoError(t, err)

	_, err = store.Cancel(ctx, second.ID)
	require.NoError(t, err)

	t.Run("active only by default", func(t *testing.T) {
		result, err := store.Query(ctx, domain.BookingFilter{})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, first.ID, result[0].ID, "ordered by date then start")
		assert.Equal(t, third.ID, result[1].ID)
	})

	t.Run("include cancelled", func(t *testing.T) {
		result, err := store.Query(ctx, domain.BookingFilter{IncludeCancelled: true})
		require.NoError(t, err)
		assert.Len(t, result, 3)
	})

	t.Run("newest first", func(t *testing.T) {
		result, err := store.Query(ctx, domain.BookingFilter{NewestFirst: true})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, third.ID, result[0].ID)
	})

	t.Run("by station", func(t *testing.T) {
		stationID := int64(2)
		result, err := store.Query(ctx, domain.BookingFilter{StationID: &stationID, IncludeCancelled: true})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, second.ID, result[0].ID)
	})

	t.Run("by phone substring", func(t *testing.T) {
		phone := "139"
		result, err := store.Query(ctx, domain.BookingFilter{PhoneContains: &phone, IncludeCancelled: true})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, second.ID, result[0].ID)
	})

	t.Run("by date", func(t *testing.T) {
		date := testDate.AddDate(0, 0, 1)
		result, err := store.Query(ctx, domain.BookingFilter{Date: &date})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, third.ID, result[0].ID)
	})

	t.Run("by status", func(t *testing.T) {
		status := domain.StatusCancelled
		result, err := store.Query(ctx, domain.BookingFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, second.ID, result[0].ID)
	})
}

// The core no-double-booking property: many goroutines race for the same
// window and exactly one wins.
func TestConcurrentReserveSameSlot(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	const workers = 50
	var successes, conflicts atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Reserve(ctx, candidate(t, 1, "09:00", "11:00"))
			switch {
			case err == nil:
				successes.Add(1)
			case err == ErrConflict:
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes.Load(), "exactly one reserve must win")
	assert.Equal(t, int64(workers-1), conflicts.Load())

	all, err := store.Query(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConcurrentReserveDifferentStations(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	const stations = 20
	var wg sync.WaitGroup
	errs := make([]error, stations)

	for i := 0; i < stations; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = store.Reserve(ctx, candidate(t, int64(idx+1), "09:00", "11:00"))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "station %d", i+1)
	}

	all, err := store.Query(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, stations)
}

func TestConcurrentReserveSameRequestID(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	ids := make([]string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c := candidate(t, 1, "09:00", "11:00")
			c.RequestID = ptr.Ptr("req-race")
			booking, err := store.Reserve(ctx, c)
			if err == nil {
				ids[idx] = booking.ID
			}
		}(i)
	}
	wg.Wait()

	all, err := store.Query(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1, "one booking regardless of replay races")

	for _, id := range ids {
		if id != "" {
			assert.Equal(t, all[0].ID, id)
		}
	}
}
