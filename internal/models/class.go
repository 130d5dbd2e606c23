package models

import (
	"sort"
	"time"

	"github.com/lib/pq"
)

// Class represents a taught class. Schedule holds the weekday numbers
// (1=Monday .. 5=Friday) the class meets on; empty means every weekday.
type Class struct {
	ID        string        `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Schedule  pq.Int64Array `db:"schedule" json:"schedule"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// ScheduleDays returns the schedule as sorted distinct ints clamped to the
// Monday..Friday range. Nil when no valid day is configured.
func (c Class) ScheduleDays() []int {
	return NormalizeSchedule(c.Schedule)
}

// NormalizeSchedule sorts and deduplicates a weekday mask, discarding values
// outside 1..5.
func NormalizeSchedule(raw []int64) []int {
	seen := map[int]bool{}
	days := make([]int, 0, 5)
	for _, d := range raw {
		day := int(d)
		if day < 1 || day > 5 || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Ints(days)
	if len(days) == 0 {
		return nil
	}
	return days
}

// ClassData is the nested view-model form of a class: its roster and its
// assignments with dense submission maps.
type ClassData struct {
	Class
	Students    []Student        `json:"students"`
	Assignments []AssignmentData `json:"assignments"`
}
