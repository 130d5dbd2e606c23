package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-absensi-api/internal/models"
	"github.com/noah-isme/sma-absensi-api/internal/repository/memory"
	"github.com/noah-isme/sma-absensi-api/internal/service"
	"github.com/noah-isme/sma-absensi-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Username:   "guru",
			Password:   "rahasia",
			JWTSecret:  "test-secret",
			Expiration: time.Hour,
		},
		School:  config.SchoolConfig{Name: "SMP Negeri 1", AcademicYear: "2025/2026", SemesterLabel: "Semester Genap"},
		Reports: config.ReportsConfig{ReportYear: 2026, StartMonth: 1},
		Dataset: config.DatasetConfig{DefaultSchedule: []int{1, 2, 3, 4, 5}, WriteDebounce: 800 * time.Millisecond},
	}
}

func buildTestRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	store := memory.Seeded()
	logger := zap.NewNop()

	authSvc := service.NewAuthService(cfg.Auth, nil, logger)
	classSvc := service.NewClassService(store.Classes(), nil, logger)
	studentSvc := service.NewStudentService(store.Students(), nil, logger)
	assignmentSvc := service.NewAssignmentService(store.Assignments(), store.Submissions(), nil, logger)
	attendanceSvc := service.NewAttendanceService(store.Attendance(), store.Holidays(), nil, logger)
	holidaySvc := service.NewHolidayService(store.Holidays(), logger)
	datasetSvc := service.NewDatasetService(
		store.Classes(), store.Students(), store.Assignments(), store.Submissions(), store.Attendance(), store.Holidays(),
		nil, 0, cfg.Dataset.DefaultSchedule, nil, logger,
	)
	reportSvc := service.NewReportService(
		store.Classes(), store.Students(), store.Assignments(), store.Submissions(), store.Attendance(), store.Holidays(),
		cfg.School, cfg.Reports, nil, logger,
	)
	snapshotSvc := service.NewSnapshotService(
		service.SnapshotReaders{
			Classes:     store.Classes(),
			Students:    store.Students(),
			Assignments: store.Assignments(),
			Submissions: store.Submissions(),
			Attendance:  store.Attendance(),
			Holidays:    store.Holidays(),
		},
		service.SnapshotWriters{
			Classes:     store.Classes(),
			Students:    store.Students(),
			Assignments: store.Assignments(),
			Submissions: store.Submissions(),
			Attendance:  store.Attendance(),
			Holidays:    store.Holidays(),
		},
		cfg.School.Name, logger,
	)

	handlers := Handlers{
		Auth:       NewAuthHandler(authSvc),
		Classes:    NewClassHandler(classSvc, datasetSvc),
		Students:   NewStudentHandler(studentSvc, datasetSvc),
		Assignment: NewAssignmentHandler(assignmentSvc, datasetSvc),
		Attendance: NewAttendanceHandler(attendanceSvc, datasetSvc),
		Holidays:   NewHolidayHandler(holidaySvc, datasetSvc),
		Dataset:    NewDatasetHandler(datasetSvc),
		Reports:    NewReportHandler(reportSvc),
		Snapshots:  NewSnapshotHandler(snapshotSvc, datasetSvc),
		Settings:   NewSettingsHandler(cfg),
	}

	router := gin.New()
	RegisterRoutes(router, "/api/v1", handlers, authSvc)
	return router, authSvc
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":"guru","password":"rahasia"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	return body.Data.Token
}

func authedRequest(t *testing.T, router *gin.Engine, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+loginToken(t, router))
	return performRequest(router, req)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := buildTestRouter(t)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":"guru","password":"salah"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	router, _ := buildTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/dataset", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSettingsIsPublic(t *testing.T) {
	router, _ := buildTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"write_debounce_ms":800`)
	assert.Contains(t, resp.Body.String(), `"offline_mode":true`)
}

func TestDatasetRoundTrip(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodGet, "/api/v1/dataset", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data models.Dataset `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data.Classes, 2)
	assert.Contains(t, body.Data.Holidays, "2026-01-01")
}

func TestClassCRUDOverHTTP(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodPost, "/api/v1/classes", `{"name":"Kelas 8A","schedule":[1,3]}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		Data models.Class `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	resp = authedRequest(t, router, http.MethodPut, "/api/v1/classes/"+created.Data.ID, `{"name":"Kelas 8A Baru"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = authedRequest(t, router, http.MethodDelete, "/api/v1/classes/"+created.Data.ID, "")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = authedRequest(t, router, http.MethodDelete, "/api/v1/classes/"+created.Data.ID, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAttendanceMarkAndHolidayGuard(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodPut, "/api/v1/attendance", `{"student_id":"siswa-1","record_date":"2026-01-09","status":"S"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	// 2026-01-01 is seeded as a holiday.
	resp = authedRequest(t, router, http.MethodPut, "/api/v1/attendance", `{"student_id":"siswa-1","record_date":"2026-01-01","status":"H"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestAttendanceBulkOutcomes(t *testing.T) {
	router, _ := buildTestRouter(t)

	payload := `{"records":[
		{"student_id":"siswa-1","record_date":"2026-01-09","status":"A"},
		{"student_id":"siswa-2","record_date":"2026-01-01","status":"H"}
	]}`
	resp := authedRequest(t, router, http.MethodPost, "/api/v1/attendance/bulk", payload)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data []models.AttendanceMarkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)

	outcomes := map[string]models.MarkOutcome{}
	for _, r := range body.Data {
		outcomes[r.StudentID] = r.Outcome
	}
	assert.Equal(t, models.MarkConfirmed, outcomes["siswa-1"])
	assert.Equal(t, models.MarkFailed, outcomes["siswa-2"])
}

func TestAttendanceWipeRequiresConfirmation(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodDelete, "/api/v1/attendance", `{"confirmation":"hapus"}`)
	require.Equal(t, http.StatusPreconditionFailed, resp.Code)

	resp = authedRequest(t, router, http.MethodDelete, "/api/v1/attendance", fmt.Sprintf(`{"confirmation":%q}`, service.WipeConfirmation))
	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestHolidayToggleOverHTTP(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodPut, "/api/v1/holidays/2026-03-21", `{"is_holiday":true}`)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = authedRequest(t, router, http.MethodGet, "/api/v1/holidays", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "2026-03-21")

	resp = authedRequest(t, router, http.MethodPut, "/api/v1/holidays/2026-03-21", `{"is_holiday":false}`)
	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestSubmissionUpsertOverHTTP(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodPut, "/api/v1/assignments/tugas-1/submissions/siswa-2", `{"is_submitted":false,"score":"88"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data models.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Data.IsSubmitted, "a non-empty score implies submission")
}

func TestAttendanceReportFormats(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodGet, "/api/v1/reports/attendance?class_id=kelas-7a&scope=weekly&date=2026-01-07", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"dates"`)

	resp = authedRequest(t, router, http.MethodGet, "/api/v1/reports/attendance?class_id=kelas-7a&scope=weekly&date=2026-01-07&format=csv", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Body.String(), "Nama,NIS")

	resp = authedRequest(t, router, http.MethodGet, "/api/v1/reports/attendance?class_id=kelas-7a&scope=weekly&date=2026-01-07&format=pdf", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String()[:8], "%PDF")
}

func TestSnapshotExportImportOverHTTP(t *testing.T) {
	router, _ := buildTestRouter(t)

	resp := authedRequest(t, router, http.MethodGet, "/api/v1/snapshot", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var snapshot models.Snapshot
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &snapshot))
	assert.Equal(t, "SMP Negeri 1", snapshot.Metadata.School)
	require.NotEmpty(t, snapshot.Data.Classes)

	resp = authedRequest(t, router, http.MethodPost, "/api/v1/snapshot", resp.Body.String())
	require.Equal(t, http.StatusNoContent, resp.Code)
}
