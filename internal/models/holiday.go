package models

// Holiday marks a calendar date on which attendance entry is suppressed for
// every class. Date is canonical YYYY-MM-DD and unique.
type Holiday struct {
	Date string `db:"holiday_date" json:"holiday_date"`
}

// HolidaySet is a lookup set of holiday dates.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from holiday rows.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[h.Date] = struct{}{}
	}
	return set
}

// Contains reports whether the date is a holiday.
func (s HolidaySet) Contains(date string) bool {
	_, ok := s[date]
	return ok
}
