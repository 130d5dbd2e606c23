package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestFormatTruncatesTimeOfDay(t *testing.T) {
	ts := time.Date(2026, time.January, 7, 23, 59, 58, 0, time.Local)
	assert.Equal(t, "2026-01-07", Format(ts))
}

func TestParseRoundTrip(t *testing.T) {
	parsed, err := Parse("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.March, 9), parsed)
	assert.Equal(t, "2026-03-09", Format(parsed))
}

func TestIsFuture(t *testing.T) {
	now := time.Date(2026, time.January, 7, 10, 30, 0, 0, time.Local)

	assert.False(t, IsFuture(now, now), "today is not future")
	assert.False(t, IsFuture(date(2026, time.January, 7), now))
	assert.False(t, IsFuture(date(2026, time.January, 6), now))
	assert.True(t, IsFuture(date(2026, time.January, 8), now))
	// Later time of day on the same date stays non-future.
	assert.False(t, IsFuture(time.Date(2026, time.January, 7, 23, 0, 0, 0, time.Local), now))
}

func TestDatesInRangeFiltersAndOrders(t *testing.T) {
	// 2026-01-05 is a Monday.
	got := DatesInRange(date(2026, time.January, 5), date(2026, time.January, 18), []int{1, 3})

	require.Len(t, got, 4)
	assert.Equal(t, "2026-01-05", Format(got[0]))
	assert.Equal(t, "2026-01-07", Format(got[1]))
	assert.Equal(t, "2026-01-12", Format(got[2]))
	assert.Equal(t, "2026-01-14", Format(got[3]))

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].After(got[i-1]), "ascending, no duplicates")
	}
}

func TestDatesInRangeEmptyScheduleDefaultsToWeekdays(t *testing.T) {
	got := DatesInRange(date(2026, time.January, 5), date(2026, time.January, 11), nil)

	require.Len(t, got, 5)
	assert.Equal(t, "2026-01-05", Format(got[0]))
	assert.Equal(t, "2026-01-09", Format(got[4]))
}

func TestDatesInRangeIdempotent(t *testing.T) {
	first := DatesInRange(date(2026, time.February, 1), date(2026, time.February, 28), []int{2, 4})
	second := DatesInRange(date(2026, time.February, 1), date(2026, time.February, 28), []int{2, 4})
	assert.Equal(t, first, second)
}

func TestMonthDates(t *testing.T) {
	got := MonthDates(2026, time.January, []int{1, 2, 3, 4, 5})

	// January 2026 has 22 weekdays.
	assert.Len(t, got, 22)
	assert.Equal(t, "2026-01-01", Format(got[0]))
	assert.Equal(t, "2026-01-30", Format(got[len(got)-1]))
}

func TestWeekDatesWednesday(t *testing.T) {
	got := WeekDates(date(2026, time.January, 7), []int{1, 2, 3, 4, 5})

	require.Len(t, got, 5)
	assert.Equal(t, "2026-01-05", Format(got[0]))
	assert.Equal(t, "2026-01-06", Format(got[1]))
	assert.Equal(t, "2026-01-07", Format(got[2]))
	assert.Equal(t, "2026-01-08", Format(got[3]))
	assert.Equal(t, "2026-01-09", Format(got[4]))
}

func TestWeekDatesSundayMapsToPreviousMonday(t *testing.T) {
	// 2026-01-11 is a Sunday; its week starts 2026-01-05.
	got := WeekDates(date(2026, time.January, 11), nil)

	require.Len(t, got, 5)
	assert.Equal(t, "2026-01-05", Format(got[0]))
	assert.Equal(t, "2026-01-09", Format(got[4]))
}

func TestWeekDatesRespectsSchedule(t *testing.T) {
	got := WeekDates(date(2026, time.January, 7), []int{2, 5})

	require.Len(t, got, 2)
	assert.Equal(t, "2026-01-06", Format(got[0]))
	assert.Equal(t, "2026-01-09", Format(got[1]))
}

func TestSemesterDatesBounds(t *testing.T) {
	got := SemesterDates(2026, nil)

	require.NotEmpty(t, got)
	// Jan 1 2026 is a Thursday, Jun 30 a Tuesday; both teaching days.
	assert.Equal(t, "2026-01-01", Format(got[0]))
	assert.Equal(t, "2026-06-30", Format(got[len(got)-1]))
}

func TestNextTeachingDateSkipsWeekend(t *testing.T) {
	// 2026-01-09 is a Friday.
	got := NextTeachingDate(date(2026, time.January, 9), []int{1, 2, 3, 4, 5}, DirectionNext)
	assert.Equal(t, "2026-01-12", Format(got))
}

func TestNextTeachingDateBackward(t *testing.T) {
	// Monday back to previous Friday.
	got := NextTeachingDate(date(2026, time.January, 12), []int{1, 2, 3, 4, 5}, DirectionPrev)
	assert.Equal(t, "2026-01-09", Format(got))
}

func TestNextTeachingDateSparseSchedule(t *testing.T) {
	// Tuesday-only schedule: from a Tuesday, next is the following Tuesday.
	got := NextTeachingDate(date(2026, time.January, 6), []int{2}, DirectionNext)
	assert.Equal(t, "2026-01-13", Format(got))
}
