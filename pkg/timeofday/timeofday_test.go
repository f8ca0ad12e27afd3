package timeofday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "06:00", want: 360},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
		{input: "24:00", wantErr: true},
		{input: "9:00", wantErr: true},
		{input: "09:0", wantErr: true},
		{input: "09:60", wantErr: true},
		{input: "25:00", wantErr: true},
		{input: "ab:cd", wantErr: true},
		{input: "09-00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "09:05", TimeOfDay(545).String())
	assert.Equal(t, "24:00", TimeOfDay(MinutesPerDay).String())
}

func TestAddHours(t *testing.T) {
	nine, err := Parse("09:00")
	require.NoError(t, err)

	tests := []struct {
		name    string
		start   TimeOfDay
		hours   float64
		want    string
		wantErr bool
	}{
		{name: "whole hours", start: nine, hours: 2, want: "11:00"},
		{name: "half hour", start: nine, hours: 1.5, want: "10:30"},
		{name: "rounds half up", start: nine, hours: 0.025, want: "09:02"}, // 1.5 minutes
		{name: "to close of day", start: TimeOfDay(22 * 60), hours: 2, want: "24:00"},
		{name: "past midnight", start: TimeOfDay(23 * 60), hours: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddHours(tt.hours)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 2.0, DurationHours(540, 660))
	assert.Equal(t, 1.5, DurationHours(600, 690))
	assert.Equal(t, -1.0, DurationHours(660, 600))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{name: "identical", aStart: "09:00", aEnd: "11:00", bStart: "09:00", bEnd: "11:00", want: true},
		{name: "contained", aStart: "09:00", aEnd: "11:00", bStart: "09:30", bEnd: "10:30", want: true},
		{name: "partial overlap", aStart: "09:00", aEnd: "11:00", bStart: "10:00", bEnd: "12:00", want: true},
		{name: "adjacent after", aStart: "09:00", aEnd: "10:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "adjacent before", aStart: "10:00", aEnd: "11:00", bStart: "09:00", bEnd: "10:00", want: false},
		{name: "disjoint", aStart: "09:00", aEnd: "10:00", bStart: "12:00", bEnd: "13:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aStart, _ := Parse(tt.aStart)
			aEnd, _ := Parse(tt.aEnd)
			bStart, _ := Parse(tt.bStart)
			bEnd, _ := Parse(tt.bEnd)

			assert.Equal(t, tt.want, Overlaps(aStart, aEnd, bStart, bEnd))
			assert.Equal(t, tt.want, Overlaps(bStart, bEnd, aStart, aEnd), "overlap must be symmetric")
		})
	}
}

func TestScan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("09:30"))
	assert.Equal(t, TimeOfDay(570), tod)

	require.NoError(t, tod.Scan([]byte("14:00:00")))
	assert.Equal(t, TimeOfDay(840), tod)

	assert.Error(t, tod.Scan(42))
}
