package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStrictDate(t *testing.T) {
	start, end, ok := ParseStrictDate("25/12/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 12, 25, 23, 59, 59, 999000000, time.UTC), end)
	assert.Equal(t, time.UTC, start.Location())
}

func TestParseStrictDateRejectsOtherShapes(t *testing.T) {
	cases := []string{
		"2024-12-25", // ISO shape
		"5/6/2024",   // single-digit day and month
		"25/12/24",   // two-digit year
		"31/02/2024", // day out of range
		"hello",
		"",
	}
	for _, input := range cases {
		_, _, ok := ParseStrictDate(input)
		assert.False(t, ok, "expected %q to be rejected", input)
	}
}

func TestDayRangeKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5:30", 5*3600+1800)
	d := time.Date(2025, 6, 1, 15, 4, 5, 0, loc)

	start, end := DayRange(d)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 1, 23, 59, 59, 999000000, loc), end)
	assert.Equal(t, loc, start.Location())
}

func TestUTCDayRangeAlignsWithStoredUTCMidnight(t *testing.T) {
	// A civil day queried from any zone must land on the UTC-midnight
	// bounds the appointment dates are stored with.
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC+5:30", 5*3600+1800),
		time.FixedZone("UTC-7", -7*3600),
	}
	for _, loc := range zones {
		d := time.Date(2025, 6, 1, 10, 30, 0, 0, loc)
		start, end := UTCDayRange(d)
		assert.True(t, start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)), "start in %v", loc)
		assert.True(t, end.Equal(time.Date(2025, 6, 1, 23, 59, 59, 999000000, time.UTC)), "end in %v", loc)
	}
}

func TestUTCDayRangeMatchesParseStrictDate(t *testing.T) {
	// The two normalization paths must agree on the same civil day.
	loc := time.FixedZone("UTC+5:30", 5*3600+1800)
	rangeStart, rangeEnd := UTCDayRange(time.Date(2025, 6, 1, 9, 0, 0, 0, loc))

	parsedStart, parsedEnd, ok := ParseStrictDate("01/06/2025")
	assert.True(t, ok)
	assert.True(t, rangeStart.Equal(parsedStart))
	assert.True(t, rangeEnd.Equal(parsedEnd))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 12, 25, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "25/12/2024 02:05:09 PM", FormatDate(ts))
	assert.Equal(t, "25/12/2024", FormatOnlyDate(ts))
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		dob  time.Time
		want string
	}{
		{time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC), "35 years, 0 months, 22 days"},
		{time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC), "25 years, 0 months, 0 days"},
		{time.Date(2000, 7, 15, 0, 0, 0, 0, time.UTC), "24 years, 10 months, 17 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ageAt(tt.dob, now))
	}
}

func TestCalculateAgeWithoutDob(t *testing.T) {
	assert.Equal(t, "Date of birth not provided", CalculateAge(nil))
}
