package scheduling

import (
	"fmt"
	"regexp"
	"time"
)

// Appointment timestamps are stored as UTC instants but queried by civil
// date. Two normalization paths exist and they are deliberately different:
// DayRange works in the date's own location and callers shift its bounds by
// the local UTC offset, while ParseStrictDate builds UTC bounds directly.
// Keep both; callers depend on their distinct semantics.

const endOfDayNanos = 999 * int(time.Millisecond)

// DayRange returns the civil-day bounds of d in d's location: local midnight
// and 23:59:59.999. The bounds are not UTC-normalized; use UTCDayRange when
// comparing against stored UTC instants.
func DayRange(d time.Time) (start, end time.Time) {
	year, month, day := d.Date()
	loc := d.Location()
	start = time.Date(year, month, day, 0, 0, 0, 0, loc)
	end = time.Date(year, month, day, 23, 59, 59, endOfDayNanos, loc)
	return start, end
}

// UTCDayRange shifts the DayRange bounds by the local UTC offset so they
// align with UTC-midnight-stored appointment dates. Getting this wrong is an
// off-by-one-day bug near timezone boundaries, so the shift lives here
// rather than in each caller.
func UTCDayRange(d time.Time) (start, end time.Time) {
	start, end = DayRange(d)
	_, offset := start.Zone()
	shift := time.Duration(offset) * time.Second
	return start.Add(shift).UTC(), end.Add(shift).UTC()
}

var strictDatePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ParseStrictDate interprets text of the exact DD/MM/YYYY shape as a UTC
// day range from midnight to 23:59:59.999. Any other shape returns ok=false.
// Unlike DayRange there is no local-offset step: bounds are built in UTC.
func ParseStrictDate(text string) (start, end time.Time, ok bool) {
	m := strictDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}
	parsed, err := time.Parse("02/01/2006", text)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	year, month, day := parsed.Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, month, day, 23, 59, 59, endOfDayNanos, time.UTC)
	return start, end, true
}

// FormatDate renders an instant as "DD/MM/YYYY HH:MM:SS AM/PM".
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006 03:04:05 PM")
}

// FormatOnlyDate renders the calendar date as "DD/MM/YYYY".
func FormatOnlyDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// CalculateAge renders the time since dob as "X years, Y months, Z days".
func CalculateAge(dob *time.Time) string {
	if dob == nil {
		return "Date of birth not provided"
	}
	return ageAt(*dob, time.Now())
}

func ageAt(dob, now time.Time) string {
	years := now.Year() - dob.Year()
	months := int(now.Month()) - int(dob.Month())
	days := now.Day() - dob.Day()

	if months < 0 {
		years--
		months += 12
	}
	if days < 0 {
		months--
		if months < 0 {
			years--
			months += 12
		}
		// days in the month preceding now
		lastMonth := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())
		days += lastMonth.Day()
	}

	return fmt.Sprintf("%d years, %d months, %d days", years, months, days)
}
