package models

// Settings is the public application configuration the SPA reads at startup:
// school identity, reporting period, the default teaching-day mask and the
// suggested debounce for batching per-cell attendance writes.
type Settings struct {
	SchoolName       string `json:"school_name"`
	AcademicYear     string `json:"academic_year"`
	SemesterLabel    string `json:"semester_label"`
	ReportYear       int    `json:"report_year"`
	ReportStartMonth int    `json:"report_start_month"`
	DefaultSchedule  []int  `json:"default_schedule"`
	WriteDebounceMS  int64  `json:"write_debounce_ms"`
	OfflineMode      bool   `json:"offline_mode"`
}
