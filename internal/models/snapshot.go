package models

// Snapshot is the backup document: the full content of all six tables plus
// export metadata. Import upserts every non-empty table and leaves tables
// absent from the document untouched.
type Snapshot struct {
	Metadata SnapshotMetadata `json:"metadata"`
	Data     SnapshotData     `json:"data"`
}

// SnapshotMetadata describes when and for which school the dump was taken.
type SnapshotMetadata struct {
	ExportDate string `json:"exportDate"`
	School     string `json:"school"`
}

// SnapshotData carries the raw table rows.
type SnapshotData struct {
	Classes           []Class            `json:"classes"`
	Students          []Student          `json:"students"`
	Assignments       []Assignment       `json:"assignments"`
	Submissions       []Submission       `json:"submissions"`
	AttendanceRecords []AttendanceRecord `json:"attendance_records"`
	Holidays          []Holiday          `json:"holidays"`
}

// Dataset is the assembled nested view model served to the SPA: classes with
// rosters and dense assignment submission maps, the nested attendance map,
// and the holiday date list.
type Dataset struct {
	Classes    []ClassData   `json:"classes"`
	Attendance AttendanceMap `json:"attendance"`
	Holidays   []string      `json:"holidays"`
}
