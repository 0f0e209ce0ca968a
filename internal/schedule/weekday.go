package schedule

import "time"

// DayIndex maps a weekday to its segment position in a tag value.
// Segments are ordered Sunday=0 through Saturday=6.
func DayIndex(day time.Weekday) (int, error) {
	switch day {
	case time.Sunday:
		return 0, nil
	case time.Monday:
		return 1, nil
	case time.Tuesday:
		return 2, nil
	case time.Wednesday:
		return 3, nil
	case time.Thursday:
		return 4, nil
	case time.Friday:
		return 5, nil
	case time.Saturday:
		return 6, nil
	}
	return 0, invalid(ErrUnknownWeekday, "weekday %d", int(day))
}
