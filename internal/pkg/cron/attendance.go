package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/metrics"
)

const staleCheckInterval = 1 * time.Hour

// AttendanceJobs holds the periodic checks over the attendance store.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, clk clock.Clock, m *metrics.Metrics, logger *slog.Logger) *AttendanceJobs {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		clock:          clk,
		metrics:        m,
		logger:         logger.With("component", "cron"),
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_stale_open_records", staleCheckInterval, j.FlagStaleOpenRecords)
}

// FlagStaleOpenRecords counts records left clocked in from before yesterday.
// Clock-out only reaches back one day, so these can no longer be closed.
// Records are reported, never modified.
func (j *AttendanceJobs) FlagStaleOpenRecords(ctx context.Context) error {
	cutoff := attendance.DateOf(j.clock.Now()).AddDate(0, 0, -1)

	count, err := j.attendanceRepo.CountOpenBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to count stale open records: %w", err)
	}

	j.metrics.SetStaleOpenRecords(count)
	if count > 0 {
		j.logger.Warn("Stale open attendance records", "count", count, "before", cutoff.Format(attendance.DateLayout))
	}

	return nil
}
