// Package calendar provides the pure date arithmetic behind dashboards and
// reports: teaching-day sequences filtered by a weekly schedule mask, and
// canonical date formatting. Weekday numbers follow the schedule convention
// 1=Monday .. 5=Friday. Nothing here performs I/O.
package calendar

import "time"

// Layout is the canonical date form used across the application.
const Layout = "2006-01-02"

// Direction selects the scan direction for NextTeachingDate.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// Day truncates t to local midnight. No timezone conversion is applied
// beyond dropping the time of day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Format renders t as canonical YYYY-MM-DD.
func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// Parse reads a canonical YYYY-MM-DD string as a local-midnight date.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.Local)
}

// IsFuture reports whether t is strictly later than now at day granularity.
// Today itself is not future.
func IsFuture(t, now time.Time) bool {
	return Day(t).After(Day(now))
}

// WeekdayNumber maps Go weekdays onto the 1=Monday .. 7=Sunday convention.
func WeekdayNumber(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// scheduleSet expands a weekday mask into a lookup set. An empty mask means
// every weekday, Monday through Friday.
func scheduleSet(schedule []int) map[int]bool {
	set := make(map[int]bool, 5)
	for _, day := range schedule {
		if day >= 1 && day <= 5 {
			set[day] = true
		}
	}
	if len(set) == 0 {
		for day := 1; day <= 5; day++ {
			set[day] = true
		}
	}
	return set
}

// DatesInRange returns every calendar day from start to end inclusive whose
// weekday is in the schedule, ascending.
func DatesInRange(start, end time.Time, schedule []int) []time.Time {
	set := scheduleSet(schedule)
	var dates []time.Time
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		if set[WeekdayNumber(d)] {
			dates = append(dates, d)
		}
	}
	return dates
}

// MonthDates returns the teaching days of one month in the given year.
func MonthDates(year int, month time.Month, schedule []int) []time.Time {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return DatesInRange(start, end, schedule)
}

// WeekDates returns the teaching days of the Monday-to-Friday week containing
// base. The week is Monday anchored: a Sunday belongs to the week of the
// previous Monday.
func WeekDates(base time.Time, schedule []int) []time.Time {
	monday := Day(base).AddDate(0, 0, -(WeekdayNumber(base) - 1))
	friday := monday.AddDate(0, 0, 4)
	return DatesInRange(monday, friday, schedule)
}

// SemesterDates returns the teaching days of the first semester range,
// January 1 through June 30 of the reporting year.
func SemesterDates(year int, schedule []int) []time.Time {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.June, 30, 0, 0, 0, 0, time.Local)
	return DatesInRange(start, end, schedule)
}

// NextTeachingDate scans up to 7 calendar days strictly forward or backward
// from t and returns the first teaching day. If none is found, which cannot
// happen with a non-empty effective schedule, t is returned unchanged.
func NextTeachingDate(t time.Time, schedule []int, dir Direction) time.Time {
	set := scheduleSet(schedule)
	step := 1
	if dir == DirectionPrev {
		step = -1
	}
	day := Day(t)
	for i := 1; i <= 7; i++ {
		candidate := day.AddDate(0, 0, step*i)
		if set[WeekdayNumber(candidate)] {
			return candidate
		}
	}
	return day
}
