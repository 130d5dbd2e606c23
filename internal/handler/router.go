package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-absensi-api/internal/middleware"
	"github.com/noah-isme/sma-absensi-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Classes    *ClassHandler
	Students   *StudentHandler
	Assignment *AssignmentHandler
	Attendance *AttendanceHandler
	Holidays   *HolidayHandler
	Dataset    *DatasetHandler
	Reports    *ReportHandler
	Snapshots  *SnapshotHandler
	Settings   *SettingsHandler
}

// RegisterRoutes mounts the API under the given prefix. Everything except
// login and settings sits behind the JWT guard.
func RegisterRoutes(r gin.IRouter, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/settings", h.Settings.Get)

	secured := api.Group("")
	secured.Use(middleware.JWT(auth))

	secured.GET("/dataset", h.Dataset.Get)

	secured.GET("/classes", h.Classes.List)
	secured.POST("/classes", h.Classes.Create)
	secured.PUT("/classes/:id", h.Classes.Update)
	secured.DELETE("/classes/:id", h.Classes.Delete)

	secured.POST("/students", h.Students.Create)
	secured.PUT("/students/:id", h.Students.Update)
	secured.DELETE("/students/:id", h.Students.Delete)

	secured.POST("/assignments", h.Assignment.Create)
	secured.PUT("/assignments/:id", h.Assignment.Update)
	secured.DELETE("/assignments/:id", h.Assignment.Delete)
	secured.PUT("/assignments/:id/submissions/:studentId", h.Assignment.UpsertSubmission)

	secured.PUT("/attendance", h.Attendance.Mark)
	secured.POST("/attendance/bulk", h.Attendance.BulkMark)
	secured.DELETE("/attendance", h.Attendance.Wipe)

	secured.GET("/holidays", h.Holidays.List)
	secured.PUT("/holidays/:date", h.Holidays.Toggle)

	secured.GET("/reports/attendance", h.Reports.Attendance)
	secured.GET("/reports/assignments", h.Reports.Assignments)

	secured.GET("/snapshot", h.Snapshots.Export)
	secured.POST("/snapshot", h.Snapshots.Import)
}
