package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/metrics"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/sse"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/validator"
	"github.com/cmlabs-hris/smart-attendance/internal/repository/sqlite"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	clock   clock.Clock
	policy  ShiftPolicy
	metrics *metrics.Metrics
	events  *sse.Hub
	logger  *slog.Logger
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		a.metrics.ObserveClockIn(metrics.ResultInvalid, 0)
		a.logFailure(ctx, "Clock in rejected", req.StaffID, err)
		return attendance.ClockInResponse{}, err
	}

	// Stored timestamps carry whole seconds; compute with what will be stored.
	now := a.clock.Now().Truncate(time.Second)
	lateMinutes := a.policy.LateMinutes(now)

	data := attendance.Attendance{
		StaffID:     req.StaffID,
		Date:        attendance.DateOf(now),
		TimeIn:      now,
		LateMinutes: lateMinutes,
	}

	if err := a.AttendanceRepository.Create(ctx, data); err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			a.metrics.ObserveClockIn(metrics.ResultDuplicate, 0)
			err = attendance.ErrAlreadyClockedIn
		} else {
			a.metrics.ObserveClockIn(metrics.ResultError, 0)
			err = fmt.Errorf("failed to create attendance record: %w", err)
		}
		a.logFailure(ctx, "Clock in rejected", req.StaffID, err)
		return attendance.ClockInResponse{}, err
	}

	a.metrics.ObserveClockIn(metrics.ResultOK, lateMinutes)
	a.logger.Info("Clocked in", "staff_id", req.StaffID, "time_in", now.Format(attendance.TimestampLayout), "late_minutes", lateMinutes)

	result := attendance.ClockInResponse{
		StaffID:     data.StaffID,
		Date:        data.Date.Format(attendance.DateLayout),
		TimeIn:      now.Format(attendance.TimestampLayout),
		LateMinutes: lateMinutes,
		Message:     clockInMessage(now, lateMinutes),
	}
	a.events.Publish(sse.Event{StaffID: result.StaffID, Type: attendance.EventClockIn, Data: result})

	return result, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		a.metrics.ObserveClockOut(metrics.ResultInvalid, 0)
		a.logFailure(ctx, "Clock out rejected", req.StaffID, err)
		return attendance.ClockOutResponse{}, err
	}

	now := a.clock.Now().Truncate(time.Second)

	var result attendance.ClockOutResponse
	err := sqlite.WithTransaction(ctx, a.db, func(tx *sql.Tx) error {
		txCtx := database.ContextWithTx(ctx, tx)

		attendanceData, err := a.openRecord(txCtx, req.StaffID, now)
		if err != nil {
			return err
		}

		overtimeMinutes := a.policy.OvertimeMinutes(attendanceData.TimeIn, now)
		if err := a.AttendanceRepository.Complete(txCtx, attendanceData.StaffID, attendanceData.Date, now, overtimeMinutes); err != nil {
			return err
		}

		result = attendance.ClockOutResponse{
			StaffID:         attendanceData.StaffID,
			Date:            attendanceData.Date.Format(attendance.DateLayout),
			TimeIn:          attendanceData.TimeIn.Format(attendance.TimestampLayout),
			TimeOut:         now.Format(attendance.TimestampLayout),
			WorkedMinutes:   WorkedMinutes(attendanceData.TimeIn, now),
			OvertimeMinutes: overtimeMinutes,
			Message:         clockOutMessage(now, overtimeMinutes),
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNotClockedIn):
			a.metrics.ObserveClockOut(metrics.ResultNotFound, 0)
			err = attendance.ErrNotClockedIn
		case errors.Is(err, attendance.ErrAlreadyClockedOut):
			a.metrics.ObserveClockOut(metrics.ResultDuplicate, 0)
			err = attendance.ErrAlreadyClockedOut
		default:
			a.metrics.ObserveClockOut(metrics.ResultError, 0)
			err = fmt.Errorf("failed to complete attendance record: %w", err)
		}
		a.logFailure(ctx, "Clock out rejected", req.StaffID, err)
		return attendance.ClockOutResponse{}, err
	}

	a.metrics.ObserveClockOut(metrics.ResultOK, result.OvertimeMinutes)
	a.logger.Info("Clocked out", "staff_id", result.StaffID, "date", result.Date, "overtime_minutes", result.OvertimeMinutes)
	a.events.Publish(sse.Event{StaffID: result.StaffID, Type: attendance.EventClockOut, Data: result})

	return result, nil
}

// openRecord finds the record a clock-out at now should close: today's, or yesterday's
// if it is still open (a shift that ran past midnight).
func (a *AttendanceServiceImpl) openRecord(ctx context.Context, staffID string, now time.Time) (attendance.Attendance, error) {
	today := attendance.DateOf(now)

	att, err := a.AttendanceRepository.GetByStaffAndDate(ctx, staffID, today)
	if err == nil {
		if !att.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
		}
		return att, nil
	}
	if !errors.Is(err, attendance.ErrNotClockedIn) {
		return attendance.Attendance{}, err
	}

	previous, err := a.AttendanceRepository.GetByStaffAndDate(ctx, staffID, today.AddDate(0, 0, -1))
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !previous.IsOpen() {
		return attendance.Attendance{}, attendance.ErrNotClockedIn
	}
	return previous, nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, err := a.AttendanceRepository.ListAll(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	// Map to response
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	result := attendance.ListAttendanceResponse{
		TotalCount:  len(responses),
		Attendances: responses,
	}
	if filter.StartDate != nil {
		result.PeriodStart = *filter.StartDate
	}
	if filter.EndDate != nil {
		result.PeriodEnd = *filter.EndDate
	}

	return result, nil
}

// Shift implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Shift() attendance.ShiftResponse {
	today := a.clock.Now()
	return attendance.ShiftResponse{
		StartTime:       a.policy.ShiftStart(today).Format("15:04"),
		EndTime:         a.policy.ShiftEnd(today).Format("15:04"),
		StandardMinutes: a.policy.StandardMinutes,
	}
}

// mapAttendanceToResponse converts an Attendance entity to an attendance sheet row
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var timeOut string
	if att.TimeOut != nil {
		timeOut = att.TimeOut.Format(attendance.TimeOfDayLayout)
	}

	return attendance.AttendanceResponse{
		StaffID:         att.StaffID,
		Date:            att.Date.Format(attendance.DateLayout),
		TimeIn:          att.TimeIn.Format(attendance.TimeOfDayLayout),
		TimeOut:         timeOut,
		LateMinutes:     att.LateMinutes,
		OvertimeMinutes: att.OvertimeMinutes,
		Status:          att.Status(),
	}
}

func clockInMessage(now time.Time, lateMinutes int) string {
	msg := fmt.Sprintf("Clocked IN at %s", now.Format("15:04"))
	if lateMinutes > 0 {
		msg += fmt.Sprintf("\nNote: %d minutes LATE.", lateMinutes)
	}
	return msg
}

func clockOutMessage(now time.Time, overtimeMinutes int) string {
	msg := fmt.Sprintf("Clocked OUT at %s", now.Format("15:04"))
	if overtimeMinutes > 0 {
		msg += fmt.Sprintf("\nOvertime recorded: %d mins.", overtimeMinutes)
	}
	return msg
}

// logFailure logs expected refusals at info and everything else at error.
func (a *AttendanceServiceImpl) logFailure(ctx context.Context, msg, staffID string, err error) {
	level := slog.LevelError
	if isUserError(err) {
		level = slog.LevelInfo
	}
	a.logger.Log(ctx, level, msg, "staff_id", staffID, "error", err)
}

// isUserError reports whether err is an expected outcome of a clock request rather than a failure.
func isUserError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs) ||
		errors.Is(err, attendance.ErrAlreadyClockedIn) ||
		errors.Is(err, attendance.ErrNotClockedIn) ||
		errors.Is(err, attendance.ErrAlreadyClockedOut)
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	policy ShiftPolicy,
	m *metrics.Metrics,
	events *sse.Hub,
	logger *slog.Logger,
) attendance.AttendanceService {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		clock:                clk,
		policy:               policy,
		metrics:              m,
		events:               events,
		logger:               logger.With("component", "attendance"),
	}
}
