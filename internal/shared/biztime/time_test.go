package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayUTC(t *testing.T) {
	in := time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)
	got := StartOfDayUTC(in)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestStartOfDayUTC_ConvertsZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	// 01:30 on the 15th in UTC+2 is still the 14th in UTC.
	in := time.Date(2025, 3, 15, 1, 30, 0, 0, loc)
	got := StartOfDayUTC(in)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestTruncateToMonthUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid month",
			in:   time.Date(2025, 6, 17, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "first instant of month is unchanged",
			in:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "last instant before rollover",
			in:   time.Date(2025, 5, 31, 23, 59, 59, 999999999, time.UTC),
			want: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateToMonthUTC(tc.in))
		})
	}
}
