package schedule

import (
	"strings"
	"time"
)

// weekdayIndex maps lowercase weekday names to Monday-based indices.
var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// appointmentHour is the fixed hour resolved dates are normalized to.
const appointmentHour = 10

// ResolveRelativeDay parses a relative day expression such as "monday",
// "this friday", or "next tuesday" against the given reference day. The
// prefix is optional; "next <today's weekday>" means seven days out, while
// an unprefixed or "this"-prefixed match on today's weekday resolves to
// today. The resolved date is normalized to 10:00:00 in today's location;
// timezone handling is the booking engine's concern.
//
// Returns false when the input does not start with a recognized weekday
// expression. That is a normal no-match outcome, not an error.
func ResolveRelativeDay(input string, today time.Time) (time.Time, bool) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return time.Time{}, false
	}

	prefix := ""
	day := fields[0]
	if day == "this" || day == "next" {
		if len(fields) < 2 {
			return time.Time{}, false
		}
		prefix = day
		day = fields[1]
	}

	target, ok := weekdayIndex[day]
	if !ok {
		return time.Time{}, false
	}

	daysUntil := (target - mondayIndex(today.Weekday()) + 7) % 7
	if prefix == "next" && daysUntil == 0 {
		daysUntil = 7
	}

	resolved := today.AddDate(0, 0, daysUntil)
	return time.Date(resolved.Year(), resolved.Month(), resolved.Day(),
		appointmentHour, 0, 0, 0, resolved.Location()), true
}

// mondayIndex converts time.Weekday (Sunday-based) to a Monday-based index.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
