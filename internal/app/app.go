package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smart-attendance/internal/config"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/report"
	appHTTP "github.com/cmlabs-hris/smart-attendance/internal/handler/http"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/cron"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/metrics"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/sse"
	"github.com/cmlabs-hris/smart-attendance/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/smart-attendance/internal/service/attendance"
	reportService "github.com/cmlabs-hris/smart-attendance/internal/service/report"
)

// App wires the store, services and metrics for one process.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *database.DB
	Metrics *metrics.Metrics
	Events  *sse.Hub

	Attendance attendance.AttendanceService
	Report     report.ReportService
	Jobs       *cron.AttendanceJobs
}

// New opens the store, applies migrations and builds the services.
// A nil clock means the system clock.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, clk clock.Clock) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.System()
	}

	policy, err := attendanceService.NewShiftPolicy(cfg.Shift)
	if err != nil {
		return nil, fmt.Errorf("invalid shift configuration: %w", err)
	}

	db, err := database.NewSQLiteDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	m := metrics.New()
	hub := sse.NewHub()
	attendanceRepo := sqlite.NewAttendanceRepository(db)
	attSvc := attendanceService.NewAttendanceService(db, attendanceRepo, clk, policy, m, hub, logger)
	repSvc := reportService.NewReportService(attSvc, clk)
	jobs := cron.NewAttendanceJobs(attendanceRepo, clk, m, logger)

	logger.Debug("Attendance store ready", "path", db.Path(), "shift_start", cfg.Shift.StartTime, "standard_minutes", policy.StandardMinutes)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Metrics:    m,
		Events:     hub,
		Attendance: attSvc,
		Report:     repSvc,
		Jobs:       jobs,
	}, nil
}

// Router builds the HTTP API over the app's services.
func (a *App) Router() http.Handler {
	attendanceHandler := appHTTP.NewAttendanceHandler(a.Attendance, a.Report, a.Events)
	return appHTTP.NewRouter(a.Config.App, a.Logger, attendanceHandler, a.Metrics.Handler())
}

func (a *App) Close() error {
	return a.DB.Close()
}
