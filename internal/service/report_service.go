package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/calendar"
	"github.com/noah-isme/sma-absensi-api/internal/models"
	"github.com/noah-isme/sma-absensi-api/pkg/config"
	appErrors "github.com/noah-isme/sma-absensi-api/pkg/errors"
	"github.com/noah-isme/sma-absensi-api/pkg/export"
)

// ReportScope selects the date range of an attendance report.
type ReportScope string

const (
	ScopeDaily    ReportScope = "daily"
	ScopeWeekly   ReportScope = "weekly"
	ScopeMonthly  ReportScope = "monthly"
	ScopeSemester ReportScope = "semester"
)

// Valid returns true for a supported scope.
func (s ReportScope) Valid() bool {
	switch s {
	case ScopeDaily, ScopeWeekly, ScopeMonthly, ScopeSemester:
		return true
	default:
		return false
	}
}

// ReportService builds printable attendance matrices and assignment score
// recaps from the flat tables.
type ReportService struct {
	classes     classLister
	students    studentLister
	assignments assignmentLister
	submissions submissionLister
	attendance  attendanceLister
	holidays    holidayLister

	school    config.SchoolConfig
	reports   config.ReportsConfig
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs the service.
func NewReportService(
	classes classLister,
	students studentLister,
	assignments assignmentLister,
	submissions submissionLister,
	attendance attendanceLister,
	holidays holidayLister,
	school config.SchoolConfig,
	reports config.ReportsConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ReportService{
		classes:     classes,
		students:    students,
		assignments: assignments,
		submissions: submissions,
		attendance:  attendance,
		holidays:    holidays,
		school:      school,
		reports:     reports,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
	_ = svc.validator.RegisterValidation("report_scope", func(fl validator.FieldLevel) bool {
		return ReportScope(strings.ToLower(fl.Field().String())).Valid()
	})
	return svc
}

// AttendanceReportRequest selects a class and a reporting period.
type AttendanceReportRequest struct {
	ClassID string `json:"class_id" validate:"required"`
	Scope   string `json:"scope" validate:"required,report_scope"`
	Date    string `json:"date"`  // base date for daily/weekly; defaults to today
	Month   int    `json:"month"` // 1-12, monthly scope only
}

// AttendanceSummary totals the four statuses for one student row.
type AttendanceSummary struct {
	Present int `json:"present"`
	Sick    int `json:"sick"`
	Excused int `json:"excused"`
	Absent  int `json:"absent"`
}

// AttendanceReportRow is one student line of the matrix. Statuses is dense
// over the report dates, defaults applied.
type AttendanceReportRow struct {
	StudentID string                             `json:"student_id"`
	Name      string                             `json:"name"`
	NIS       string                             `json:"nis"`
	Statuses  map[string]models.AttendanceStatus `json:"statuses"`
	Summary   AttendanceSummary                  `json:"summary"`
}

// AttendanceReport is a printable attendance matrix for one class and
// period.
type AttendanceReport struct {
	Title     string                `json:"title"`
	ClassName string                `json:"class_name"`
	Scope     ReportScope           `json:"scope"`
	Dates     []string              `json:"dates"`
	Rows      []AttendanceReportRow `json:"rows"`
}

// BuildAttendanceReport assembles the matrix for the requested period.
// Columns are the class's teaching days within the period, minus holidays.
func (s *ReportService) BuildAttendanceReport(ctx context.Context, req AttendanceReportRequest) (*AttendanceReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report request")
	}

	class, err := s.findClass(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	schedule := class.ScheduleDays()

	scope := ReportScope(strings.ToLower(req.Scope))
	base := s.now()
	if req.Date != "" {
		parsed, err := calendar.Parse(req.Date)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
		}
		base = parsed
	}

	var period []time.Time
	var title string
	switch scope {
	case ScopeDaily:
		period = []time.Time{calendar.Day(base)}
		title = fmt.Sprintf("Rekap Absensi Harian %s", calendar.Format(base))
	case ScopeWeekly:
		period = calendar.WeekDates(base, schedule)
		title = fmt.Sprintf("Rekap Absensi Mingguan (pekan %s)", calendar.Format(base))
	case ScopeMonthly:
		month := req.Month
		if month < 1 || month > 12 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
		}
		period = calendar.MonthDates(s.reports.ReportYear, time.Month(month), schedule)
		title = fmt.Sprintf("Rekap Absensi Bulanan %s %d", time.Month(month), s.reports.ReportYear)
	case ScopeSemester:
		period = calendar.SemesterDates(s.reports.ReportYear, schedule)
		title = fmt.Sprintf("Rekap Absensi Semester %d", s.reports.ReportYear)
	}

	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}
	holidaySet := models.NewHolidaySet(holidays)

	dates := make([]string, 0, len(period))
	for _, day := range period {
		formatted := calendar.Format(day)
		if !holidaySet.Contains(formatted) {
			dates = append(dates, formatted)
		}
	}

	roster, err := s.classRoster(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	attendanceMap := GroupAttendance(records)

	rows := make([]AttendanceReportRow, 0, len(roster))
	for _, student := range roster {
		row := AttendanceReportRow{
			StudentID: student.ID,
			Name:      student.Name,
			NIS:       student.NIS,
			Statuses:  make(map[string]models.AttendanceStatus, len(dates)),
		}
		for _, date := range dates {
			status := attendanceMap.StatusOf(student.ID, date)
			row.Statuses[date] = status
			switch status {
			case models.AttendanceStatusPresent:
				row.Summary.Present++
			case models.AttendanceStatusSick:
				row.Summary.Sick++
			case models.AttendanceStatusExcused:
				row.Summary.Excused++
			case models.AttendanceStatusAbsent:
				row.Summary.Absent++
			}
		}
		rows = append(rows, row)
	}

	return &AttendanceReport{
		Title:     title,
		ClassName: class.Name,
		Scope:     scope,
		Dates:     dates,
		Rows:      rows,
	}, nil
}

// AssignmentRecapRow is one student line of the score recap. Cells is dense
// over the class assignments.
type AssignmentRecapRow struct {
	StudentID string                           `json:"student_id"`
	Name      string                           `json:"name"`
	NIS       string                           `json:"nis"`
	Cells     map[string]models.SubmissionData `json:"cells"`
}

// AssignmentRecap is the printable score table for one class.
type AssignmentRecap struct {
	Title       string               `json:"title"`
	ClassName   string               `json:"class_name"`
	Assignments []models.Assignment  `json:"assignments"`
	Rows        []AssignmentRecapRow `json:"rows"`
}

// BuildAssignmentRecap assembles the score recap for one class.
func (s *ReportService) BuildAssignmentRecap(ctx context.Context, classID string) (*AssignmentRecap, error) {
	if classID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class is required")
	}
	class, err := s.findClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	roster, err := s.classRoster(ctx, classID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	classAssignments := make([]models.Assignment, 0)
	for _, assignment := range assignments {
		if assignment.ClassID == classID {
			classAssignments = append(classAssignments, assignment)
		}
	}

	submissions, err := s.submissions.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}
	stored := make(map[string]models.SubmissionData, len(submissions))
	for _, submission := range submissions {
		stored[submission.AssignmentID+"|"+submission.StudentID] = models.SubmissionData{
			IsSubmitted: submission.IsSubmitted,
			Score:       submission.Score,
		}
	}

	rows := make([]AssignmentRecapRow, 0, len(roster))
	for _, student := range roster {
		row := AssignmentRecapRow{
			StudentID: student.ID,
			Name:      student.Name,
			NIS:       student.NIS,
			Cells:     make(map[string]models.SubmissionData, len(classAssignments)),
		}
		for _, assignment := range classAssignments {
			if cell, ok := stored[assignment.ID+"|"+student.ID]; ok {
				row.Cells[assignment.ID] = cell
			} else {
				row.Cells[assignment.ID] = models.SubmissionData{IsSubmitted: false, Score: ""}
			}
		}
		rows = append(rows, row)
	}

	return &AssignmentRecap{
		Title:       fmt.Sprintf("Rekap Nilai Tugas %s", class.Name),
		ClassName:   class.Name,
		Assignments: classAssignments,
		Rows:        rows,
	}, nil
}

// RenderAttendanceCSV flattens the matrix into CSV bytes.
func (s *ReportService) RenderAttendanceCSV(report *AttendanceReport) ([]byte, error) {
	return s.csv.Render(attendanceDataset(report))
}

// RenderAttendancePDF renders the matrix as a printable PDF.
func (s *ReportService) RenderAttendancePDF(report *AttendanceReport) ([]byte, error) {
	subtitle := fmt.Sprintf("%s - %s %s", report.ClassName, s.school.SemesterLabel, s.school.AcademicYear)
	return s.pdf.Render(attendanceDataset(report), report.Title, s.school.Name, subtitle)
}

// RenderRecapCSV flattens the score recap into CSV bytes.
func (s *ReportService) RenderRecapCSV(recap *AssignmentRecap) ([]byte, error) {
	return s.csv.Render(recapDataset(recap))
}

// RenderRecapPDF renders the score recap as a printable PDF.
func (s *ReportService) RenderRecapPDF(recap *AssignmentRecap) ([]byte, error) {
	subtitle := fmt.Sprintf("%s - %s %s", recap.ClassName, s.school.SemesterLabel, s.school.AcademicYear)
	return s.pdf.Render(recapDataset(recap), recap.Title, s.school.Name, subtitle)
}

func attendanceDataset(report *AttendanceReport) export.Dataset {
	headers := append([]string{"Nama", "NIS"}, report.Dates...)
	headers = append(headers, "H", "S", "I", "A")
	rows := make([]map[string]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		cells := map[string]string{
			"Nama": row.Name,
			"NIS":  row.NIS,
			"H":    fmt.Sprintf("%d", row.Summary.Present),
			"S":    fmt.Sprintf("%d", row.Summary.Sick),
			"I":    fmt.Sprintf("%d", row.Summary.Excused),
			"A":    fmt.Sprintf("%d", row.Summary.Absent),
		}
		for _, date := range report.Dates {
			cells[date] = string(row.Statuses[date])
		}
		rows = append(rows, cells)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func recapDataset(recap *AssignmentRecap) export.Dataset {
	headers := []string{"Nama", "NIS"}
	for _, assignment := range recap.Assignments {
		headers = append(headers, assignment.Title)
	}
	rows := make([]map[string]string, 0, len(recap.Rows))
	for _, row := range recap.Rows {
		cells := map[string]string{"Nama": row.Name, "NIS": row.NIS}
		for _, assignment := range recap.Assignments {
			cell := row.Cells[assignment.ID]
			switch {
			case cell.Score != "":
				cells[assignment.Title] = cell.Score
			case cell.IsSubmitted:
				cells[assignment.Title] = "v"
			default:
				cells[assignment.Title] = "-"
			}
		}
		rows = append(rows, cells)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func (s *ReportService) findClass(ctx context.Context, classID string) (*models.Class, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	for i := range classes {
		if classes[i].ID == classID {
			return &classes[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
}

func (s *ReportService) classRoster(ctx context.Context, classID string) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	roster := make([]models.Student, 0)
	for _, student := range students {
		if student.ClassID == classID {
			roster = append(roster, student)
		}
	}
	return roster, nil
}
