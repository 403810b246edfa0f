package coach

import "time"

// DateRange is an inclusive range of calendar days, formatted with DayLayout.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayBounds returns the half-open instant range [start of day, start of next
// day) for day in loc.
func DayBounds(day string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// DailyWindow covers yesterday, today and tomorrow: the sessions that shape
// one day's nutrition.
func DailyWindow(today time.Time) DateRange {
	return DateRange{
		Start: today.AddDate(0, 0, -1).Format(DayLayout),
		End:   today.AddDate(0, 0, 1).Format(DayLayout),
	}
}

// WeeklyWindow covers today through the same weekday next week.
func WeeklyWindow(today time.Time) DateRange {
	return DateRange{
		Start: today.Format(DayLayout),
		End:   today.AddDate(0, 0, 7).Format(DayLayout),
	}
}

// Contains reports whether day (DayLayout) falls inside r.
func (r DateRange) Contains(day string) bool {
	return day >= r.Start && day <= r.End
}
