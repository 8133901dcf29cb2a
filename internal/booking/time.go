package booking

import "time"

// All instants in the system are UTC. The bookable window runs 08:00
// inclusive to 23:00 exclusive, one-hour slots on hour boundaries.
const (
	dateLayout   = "2006-01-02"
	OpeningHour  = 8
	ClosingHour  = 23
	SlotDuration = time.Hour
	SlotsPerDay  = ClosingHour - OpeningHour
)

// ParseDate parses a YYYY-MM-DD date as a UTC calendar day.
func ParseDate(value string) (time.Time, error) {
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day.UTC(), nil
}

// BookingWindow returns the absolute bounds of the bookable window for a day:
// [08:00, 23:00) UTC.
func BookingWindow(day time.Time) (start, end time.Time) {
	start = time.Date(day.Year(), day.Month(), day.Day(), OpeningHour, 0, 0, 0, time.UTC)
	end = time.Date(day.Year(), day.Month(), day.Day(), ClosingHour, 0, 0, 0, time.UTC)
	return start, end
}

// DayWindow returns the full calendar-day bounds [00:00, 24:00) UTC.
func DayWindow(day time.Time) (start, end time.Time) {
	start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
