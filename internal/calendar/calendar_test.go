package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/ptr"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

func testConfig() domain.BusinessHoursConfig {
	return domain.BusinessHoursConfig{
		Default: domain.DefaultBusinessHours,
		Exceptions: map[string]domain.HoursException{
			"2026-03-20": {IsOpen: false},
			"2026-03-21": {
				IsOpen: true,
				Open:   ptr.Ptr(timeofday.TimeOfDay(8 * 60)),
			},
			"2026-03-22": {
				IsOpen: true,
				Open:   ptr.Ptr(timeofday.TimeOfDay(10 * 60)),
				Close:  ptr.Ptr(timeofday.TimeOfDay(18 * 60)),
			},
		},
	}
}

func TestIsOpen(t *testing.T) {
	cfg := testConfig()

	assert.True(t, IsOpen(cfg, "2026-03-15"), "date without exception is open")
	assert.False(t, IsOpen(cfg, "2026-03-20"), "closed exception")
	assert.True(t, IsOpen(cfg, "2026-03-21"), "open exception")
}

func TestIsOpenNoExceptions(t *testing.T) {
	cfg := domain.BusinessHoursConfig{Default: domain.DefaultBusinessHours}
	assert.True(t, IsOpen(cfg, "2026-01-01"))
}

func TestHoursFor(t *testing.T) {
	cfg := testConfig()

	t.Run("default", func(t *testing.T) {
		hours := HoursFor(cfg, "2026-03-15")
		assert.Equal(t, "06:00", hours.Open.String())
		assert.Equal(t, "22:00", hours.Close.String())
	})

	t.Run("partial exception inherits close", func(t *testing.T) {
		hours := HoursFor(cfg, "2026-03-21")
		assert.Equal(t, "08:00", hours.Open.String())
		assert.Equal(t, "22:00", hours.Close.String())
	})

	t.Run("full exception", func(t *testing.T) {
		hours := HoursFor(cfg, "2026-03-22")
		assert.Equal(t, "10:00", hours.Open.String())
		assert.Equal(t, "18:00", hours.Close.String())
	})

	t.Run("closed date falls back to default", func(t *testing.T) {
		hours := HoursFor(cfg, "2026-03-20")
		assert.Equal(t, cfg.Default, hours)
	})
}

func TestSlots(t *testing.T) {
	hours := domain.BusinessHours{
		Open:  timeofday.TimeOfDay(9 * 60),
		Close: timeofday.TimeOfDay(11 * 60),
	}

	slots := Slots(hours, 30)
	require.Len(t, slots, 4)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "10:30", slots[3].String())
}

func TestSlotsDefaultInterval(t *testing.T) {
	hours := domain.BusinessHours{
		Open:  timeofday.TimeOfDay(9 * 60),
		Close: timeofday.TimeOfDay(10 * 60),
	}

	slots := Slots(hours, 0)
	require.Len(t, slots, 2, "zero interval falls back to the default grid")
}

func TestStatusRange(t *testing.T) {
	cfg := testConfig()
	from := time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)

	statuses := StatusRange(cfg, from, 3)
	require.Len(t, statuses, 3)

	assert.Equal(t, "2026-03-19", statuses[0].Date)
	assert.True(t, statuses[0].IsOpen)

	assert.Equal(t, "2026-03-20", statuses[1].Date)
	assert.False(t, statuses[1].IsOpen)

	assert.Equal(t, "2026-03-21", statuses[2].Date)
	assert.True(t, statuses[2].IsOpen)
	assert.Equal(t, "08:00", statuses[2].Hours.Open.String())
}
