package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/internal/notify"
	"github.com/abrans2005/cycling-booking/internal/schedule"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

type stubConfig struct {
	cfg *domain.AppConfig
}

func (s *stubConfig) Current(ctx context.Context) (*domain.AppConfig, error) {
	return s.cfg, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.BookingEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event notify.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []notify.BookingEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.BookingEvent(nil), n.events...)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *schedule.MemStore, *recordingNotifier) {
	store := schedule.NewMemStore()
	notifier := &recordingNotifier{}
	svc := New(store, &stubConfig{cfg: domain.DefaultAppConfig()}, notifier, nopLogger{})
	return svc, store, notifier
}

func reserve(t *testing.T, store *schedule.MemStore, date string, stationID int64, start, end, phone string) *domain.Booking {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	startTod, err := timeofday.Parse(start)
	require.NoError(t, err)
	endTod, err := timeofday.Parse(end)
	require.NoError(t, err)

	booking, err := store.Reserve(context.Background(), schedule.Candidate{
		Date:        d,
		StationID:   stationID,
		StartTime:   startTod,
		EndTime:     endTod,
		MemberName:  "张三",
		MemberPhone: phone,
	})
	require.NoError(t, err)
	return booking
}

func TestGetByID(t *testing.T) {
	svc, store, _ := newTestService()
	booking := reserve(t, store, "2026-03-15", 1, "09:00", "11:00", "13800138000")

	got, err := svc.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByPhoneExactMatchOnly(t *testing.T) {
	svc, store, _ := newTestService()

	mine := reserve(t, store, "2026-03-15", 1, "09:00", "11:00", "13800138000")
	reserve(t, store, "2026-03-15", 2, "09:00", "11:00", "13800138001")

	result, err := svc.ListByPhone(context.Background(), "13800138000")
	require.NoError(t, err)
	require.Len(t, result, 1, "a superstring phone must not leak")
	assert.Equal(t, mine.ID, result[0].ID)
}

func TestListByPhoneIncludesCancelled(t *testing.T) {
	svc, store, _ := newTestService()

	booking := reserve(t, store, "2026-03-15", 1, "09:00", "11:00", "13800138000")
	_, err := store.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	result, err := svc.ListByPhone(context.Background(), "13800138000")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, domain.StatusCancelled, result[0].Status)
}

func TestCancelEmitsEventOnce(t *testing.T) {
	svc, store, notifier := newTestService()
	booking := reserve(t, store, "2026-03-15", 1, "09:00", "11:00", "13800138000")

	cancelled, err := svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// Second cancel is a no-op and stays silent.
	_, err = svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventBookingCancelled, events[0].Kind)
	assert.Equal(t, "Station 1", events[0].StationName)
}

func TestCancelNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, store, notifier := newTestService()
	booking := reserve(t, store, "2026-03-15", 1, "09:00", "11:00", "13800138000")

	require.NoError(t, svc.Delete(context.Background(), booking.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), booking.ID), ErrNotFound)
	assert.Empty(t, notifier.Events(), "delete is silent")
}

func TestRevenue(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	// Two hours plus one and a half at 100/hour, and one cancelled
	// booking that must not count.
	reserve(t, store, "2026-03-15", 1, "09:00", "11:00", "13800138000")
	reserve(t, store, "2026-03-16", 2, "10:00", "11:30", "13800138000")
	cancelled := reserve(t, store, "2026-03-16", 3, "10:00", "14:00", "13800138000")
	_, err := store.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	// Outside the range.
	reserve(t, store, "2026-04-01", 1, "09:00", "10:00", "13800138000")

	from, _ := time.Parse(domain.DateFormat, "2026-03-01")
	to, _ := time.Parse(domain.DateFormat, "2026-03-31")

	report, err := svc.Revenue(ctx, from, to)
	require.NoError(t, err)

	assert.Equal(t, 350.0, report.Total)
	assert.Equal(t, 3.5, report.TotalHours)
	assert.Equal(t, 2, report.Bookings)
	assert.Equal(t, 100.0, report.PricePerHour)

	require.Len(t, report.PerDate, 2)
	assert.Equal(t, "2026-03-15", report.PerDate[0].Date)
	assert.Equal(t, 200.0, report.PerDate[0].Revenue)
	assert.Equal(t, "2026-03-16", report.PerDate[1].Date)
	assert.Equal(t, 150.0, report.PerDate[1].Revenue)
}

func TestRevenueInvalidRange(t *testing.T) {
	svc, _, _ := newTestService()

	from, _ := time.Parse(domain.DateFormat, "2026-03-31")
	to, _ := time.Parse(domain.DateFormat, "2026-03-01")

	_, err := svc.Revenue(context.Background(), from, to)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
