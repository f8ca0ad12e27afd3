package serverchan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/internal/notify"
	"github.com/abrans2005/cycling-booking/pkg/ptr"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

type stubKeys struct {
	key *string
}

func (s stubKeys) NotifyKey(ctx context.Context) *string {
	return s.key
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{}) {}
func (nopLogger) Warn(format string, v ...interface{}) {}

func testEvent(kind string) notify.BookingEvent {
	return notify.BookingEvent{
		Kind: kind,
		Booking: &domain.Booking{
			ID:          "b-1",
			Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			StartTime:   timeofday.TimeOfDay(9 * 60),
			EndTime:     timeofday.TimeOfDay(11 * 60),
			StationID:   1,
			MemberName:  "张三",
			MemberPhone: "13800138000",
			Status:      domain.StatusConfirmed,
		},
		StationName: "Station 1",
		ModelName:   "Stages bike",
	}
}

func TestNotifySendsPush(t *testing.T) {
	type push struct {
		path  string
		title string
		desp  string
	}
	received := make(chan push, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		received <- push{
			path:  r.URL.Path,
			title: r.PostForm.Get("title"),
			desp:  r.PostForm.Get("desp"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, stubKeys{key: ptr.Ptr("SCT-key")}, nopLogger{})
	client.Notify(context.Background(), testEvent(notify.EventBookingCreated))

	select {
	case got := <-received:
		assert.Equal(t, "/SCT-key.send", got.path)
		assert.Contains(t, got.title, "New booking")
		assert.Contains(t, got.desp, "张三")
		assert.Contains(t, got.desp, "13800138000")
		assert.Contains(t, got.desp, "2026-03-15")
		assert.Contains(t, got.desp, "09:00 - 11:00")
		assert.Contains(t, got.desp, "Station 1")
	case <-time.After(3 * time.Second):
		t.Fatal("push never arrived")
	}
}

func TestNotifySkipsWithoutKey(t *testing.T) {
	hit := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- struct{}{}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, stubKeys{}, nopLogger{})
	client.Notify(context.Background(), testEvent(notify.EventBookingCreated))

	select {
	case <-hit:
		t.Fatal("must not push without a configured key")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRenderEvent(t *testing.T) {
	title, body := renderEvent(testEvent(notify.EventBookingCancelled))
	assert.Contains(t, title, "Booking cancelled")
	assert.Contains(t, body, "Stages bike")

	event := testEvent(notify.EventBookingCreated)
	event.StationName = ""
	event.ModelName = ""
	event.Booking.Notes = ptr.Ptr("bring shoes")

	title, body = renderEvent(event)
	assert.Contains(t, title, "New booking")
	assert.Contains(t, body, "Station 1", "falls back to the station id")
	assert.Contains(t, body, "bring shoes")
}
