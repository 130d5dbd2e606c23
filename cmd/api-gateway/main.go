package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-absensi-api/api/swagger"
	"github.com/noah-isme/sma-absensi-api/internal/handler"
	"github.com/noah-isme/sma-absensi-api/internal/middleware"
	"github.com/noah-isme/sma-absensi-api/internal/repository"
	"github.com/noah-isme/sma-absensi-api/internal/repository/memory"
	"github.com/noah-isme/sma-absensi-api/internal/service"
	"github.com/noah-isme/sma-absensi-api/pkg/cache"
	"github.com/noah-isme/sma-absensi-api/pkg/config"
	"github.com/noah-isme/sma-absensi-api/pkg/database"
	"github.com/noah-isme/sma-absensi-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-absensi-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-absensi-api/pkg/middleware/requestid"
)

// @title SMA Absensi API
// @version 0.1.0
// @description Attendance and assignment tracking for a single-teacher school app
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var db *sqlx.DB
	if cfg.Database.Configured() {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
	} else {
		logr.Warn("no database configured, falling back to the in-memory store")
	}

	var rdb *redis.Client
	if cfg.Redis.Configured() {
		rdb, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dataset caching disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close() //nolint:errcheck
		}
	}

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(cfg.Auth, nil, logr)
	handlers := buildHandlers(cfg, logr, db, rdb, metricsSvc, authSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if db != nil {
			if err := db.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "offline", db == nil)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// buildHandlers wires the service layer over either the SQL repositories or
// the in-memory fallback.
func buildHandlers(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, rdb *redis.Client, metrics *service.MetricsService, authSvc *service.AuthService) handler.Handlers {
	if db != nil {
		classes := repository.NewClassRepository(db)
		students := repository.NewStudentRepository(db)
		assignments := repository.NewAssignmentRepository(db)
		submissions := repository.NewSubmissionRepository(db)
		attendance := repository.NewAttendanceRepository(db)
		holidays := repository.NewHolidayRepository(db)

		datasetSvc := service.NewDatasetService(classes, students, assignments, submissions, attendance, holidays,
			rdb, cfg.Dataset.CacheTTL, cfg.Dataset.DefaultSchedule, metrics, logr)
		reportSvc := service.NewReportService(classes, students, assignments, submissions, attendance, holidays,
			cfg.School, cfg.Reports, nil, logr)
		snapshotSvc := service.NewSnapshotService(
			service.SnapshotReaders{Classes: classes, Students: students, Assignments: assignments, Submissions: submissions, Attendance: attendance, Holidays: holidays},
			service.SnapshotWriters{Classes: classes, Students: students, Assignments: assignments, Submissions: submissions, Attendance: attendance, Holidays: holidays},
			cfg.School.Name, logr)

		return handler.Handlers{
			Auth:       handler.NewAuthHandler(authSvc),
			Classes:    handler.NewClassHandler(service.NewClassService(classes, nil, logr), datasetSvc),
			Students:   handler.NewStudentHandler(service.NewStudentService(students, nil, logr), datasetSvc),
			Assignment: handler.NewAssignmentHandler(service.NewAssignmentService(assignments, submissions, nil, logr), datasetSvc),
			Attendance: handler.NewAttendanceHandler(service.NewAttendanceService(attendance, holidays, nil, logr), datasetSvc),
			Holidays:   handler.NewHolidayHandler(service.NewHolidayService(holidays, logr), datasetSvc),
			Dataset:    handler.NewDatasetHandler(datasetSvc),
			Reports:    handler.NewReportHandler(reportSvc),
			Snapshots:  handler.NewSnapshotHandler(snapshotSvc, datasetSvc),
			Settings:   handler.NewSettingsHandler(cfg),
		}
	}

	store := memory.NewStore()
	if cfg.Seed.Enabled {
		store = memory.Seeded()
	}
	classes := store.Classes()
	students := store.Students()
	assignments := store.Assignments()
	submissions := store.Submissions()
	attendance := store.Attendance()
	holidays := store.Holidays()

	datasetSvc := service.NewDatasetService(classes, students, assignments, submissions, attendance, holidays,
		rdb, cfg.Dataset.CacheTTL, cfg.Dataset.DefaultSchedule, metrics, logr)
	reportSvc := service.NewReportService(classes, students, assignments, submissions, attendance, holidays,
		cfg.School, cfg.Reports, nil, logr)
	snapshotSvc := service.NewSnapshotService(
		service.SnapshotReaders{Classes: classes, Students: students, Assignments: assignments, Submissions: submissions, Attendance: attendance, Holidays: holidays},
		service.SnapshotWriters{Classes: classes, Students: students, Assignments: assignments, Submissions: submissions, Attendance: attendance, Holidays: holidays},
		cfg.School.Name, logr)

	return handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Classes:    handler.NewClassHandler(service.NewClassService(classes, nil, logr), datasetSvc),
		Students:   handler.NewStudentHandler(service.NewStudentService(students, nil, logr), datasetSvc),
		Assignment: handler.NewAssignmentHandler(service.NewAssignmentService(assignments, submissions, nil, logr), datasetSvc),
		Attendance: handler.NewAttendanceHandler(service.NewAttendanceService(attendance, holidays, nil, logr), datasetSvc),
		Holidays:   handler.NewHolidayHandler(service.NewHolidayService(holidays, logr), datasetSvc),
		Dataset:    handler.NewDatasetHandler(datasetSvc),
		Reports:    handler.NewReportHandler(reportSvc),
		Snapshots:  handler.NewSnapshotHandler(snapshotSvc, datasetSvc),
		Settings:   handler.NewSettingsHandler(cfg),
	}
}
