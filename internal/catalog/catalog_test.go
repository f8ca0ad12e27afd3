package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

func testStations() []domain.Station {
	return []domain.Station{
		{StationID: 1, Name: "Station 1", BikeModelID: "stages-bike", Status: domain.StationAvailable},
		{StationID: 2, Name: "Station 2", BikeModelID: "neo-bike", Status: domain.StationMaintenance},
		{StationID: 3, Name: "Station 3", BikeModelID: "stages-bike", Status: domain.StationDisabled},
		{StationID: 4, Name: "Station 4", BikeModelID: "missing-model", Status: domain.StationAvailable},
	}
}

func testModels() []domain.BikeModel {
	return []domain.BikeModel{
		{ID: "stages-bike", Name: "Stages bike"},
		{ID: "neo-bike", Name: "Neo bike"},
	}
}

func TestOfferable(t *testing.T) {
	offerable := Offerable(testStations())

	require.Len(t, offerable, 2)
	assert.Equal(t, int64(1), offerable[0].StationID)
	assert.Equal(t, int64(4), offerable[1].StationID)
}

func TestModelName(t *testing.T) {
	stations := testStations()
	models := testModels()

	assert.Equal(t, "Stages bike", ModelName(stations, models, 1))
	assert.Equal(t, "Neo bike", ModelName(stations, models, 2))
	assert.Equal(t, UnknownModelName, ModelName(stations, models, 4), "dangling model reference")
	assert.Equal(t, UnknownModelName, ModelName(stations, models, 99), "unknown station")
}

func TestCanDelete(t *testing.T) {
	today := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	booking := func(stationID int64, date time.Time, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			ID:        domain.NewBookingID(),
			Date:      date,
			StartTime: timeofday.TimeOfDay(9 * 60),
			EndTime:   timeofday.TimeOfDay(10 * 60),
			StationID: stationID,
			Status:    status,
		}
	}

	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     bool
	}{
		{name: "no bookings", bookings: nil, want: true},
		{
			name:     "past booking does not block",
			bookings: []*domain.Booking{booking(1, yesterday, domain.StatusConfirmed)},
			want:     true,
		},
		{
			name:     "future booking blocks",
			bookings: []*domain.Booking{booking(1, tomorrow, domain.StatusConfirmed)},
			want:     false,
		},
		{
			name:     "today blocks",
			bookings: []*domain.Booking{booking(1, today, domain.StatusConfirmed)},
			want:     false,
		},
		{
			name:     "cancelled future booking does not block",
			bookings: []*domain.Booking{booking(1, tomorrow, domain.StatusCancelled)},
			want:     true,
		},
		{
			name:     "other station's booking does not block",
			bookings: []*domain.Booking{booking(2, tomorrow, domain.StatusConfirmed)},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.bookings, 1, today))
		})
	}
}

func TestModelInUse(t *testing.T) {
	stations := testStations()

	assert.True(t, ModelInUse(stations, "stages-bike"))
	assert.True(t, ModelInUse(stations, "neo-bike"))
	assert.False(t, ModelInUse(stations, "retired-model"))
}
