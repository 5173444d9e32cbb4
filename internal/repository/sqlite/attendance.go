package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `staff_id, date, time_in, time_out, late_minutes, overtime_minutes`

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (staff_id, date, time_in, late_minutes, overtime_minutes)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT (staff_id, date) DO NOTHING
	`

	result, err := q.ExecContext(ctx, query,
		newAttendance.StaffID,
		newAttendance.Date.Format(attendance.DateLayout),
		newAttendance.TimeIn.Format(attendance.TimestampLayout),
		newAttendance.LateMinutes,
	)
	if err != nil {
		return &attendance.StorageError{Op: "create attendance", Err: err}
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return &attendance.StorageError{Op: "create attendance", Err: err}
	}
	if rows == 0 {
		return attendance.ErrAlreadyClockedIn
	}

	return nil
}

// Complete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Complete(ctx context.Context, staffID string, date time.Time, timeOut time.Time, overtimeMinutes int) error {
	q := GetQuerier(ctx, a.db)
	dateStr := date.Format(attendance.DateLayout)

	query := `
		UPDATE attendance
		SET time_out = ?, overtime_minutes = ?
		WHERE staff_id = ? AND date = ? AND time_out IS NULL
	`

	result, err := q.ExecContext(ctx, query,
		timeOut.Format(attendance.TimestampLayout),
		overtimeMinutes,
		staffID,
		dateStr,
	)
	if err != nil {
		return &attendance.StorageError{Op: "complete attendance", Err: err}
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return &attendance.StorageError{Op: "complete attendance", Err: err}
	}
	if rows > 0 {
		return nil
	}

	// Nothing updated: either there is no record, or it is already closed.
	var exists int
	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE staff_id = ? AND date = ?`,
		staffID, dateStr,
	).Scan(&exists)
	if err != nil {
		return &attendance.StorageError{Op: "complete attendance", Err: err}
	}
	if exists == 0 {
		return attendance.ErrNotClockedIn
	}
	return attendance.ErrAlreadyClockedOut
}

// GetByStaffAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE staff_id = ? AND date = ?
	`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, staffID, date.Format(attendance.DateLayout)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		return attendance.Attendance{}, &attendance.StorageError{Op: "get attendance", Err: err}
	}

	return att, nil
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var where []string
	var args []any

	if filter.StaffID != nil && *filter.StaffID != "" {
		where = append(where, "staff_id = ?")
		args = append(args, *filter.StaffID)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where = append(where, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where = append(where, "date <= ?")
		args = append(args, *filter.EndDate)
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendance`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date ASC, staff_id ASC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &attendance.StorageError{Op: "list attendance", Err: err}
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, &attendance.StorageError{Op: "list attendance", Err: err}
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, &attendance.StorageError{Op: "list attendance", Err: err}
	}

	return attendances, nil
}

// CountOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountOpenBefore(ctx context.Context, date time.Time) (int, error) {
	q := GetQuerier(ctx, a.db)

	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE time_out IS NULL AND date < ?`,
		date.Format(attendance.DateLayout),
	).Scan(&count)
	if err != nil {
		return 0, &attendance.StorageError{Op: "count open attendance", Err: err}
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAttendance reads one row in attendanceColumns order. Stored text is local time.
func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var (
		att             attendance.Attendance
		date            string
		timeIn          sql.NullString
		timeOut         sql.NullString
		lateMinutes     sql.NullInt64
		overtimeMinutes sql.NullInt64
	)

	if err := row.Scan(&att.StaffID, &date, &timeIn, &timeOut, &lateMinutes, &overtimeMinutes); err != nil {
		return attendance.Attendance{}, err
	}

	var err error
	att.Date, err = time.ParseInLocation(attendance.DateLayout, date, time.Local)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("invalid date %q for staff %s: %w", date, att.StaffID, err)
	}

	if !timeIn.Valid {
		return attendance.Attendance{}, fmt.Errorf("missing time_in for staff %s on %s", att.StaffID, date)
	}
	att.TimeIn, err = time.ParseInLocation(attendance.TimestampLayout, timeIn.String, time.Local)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("invalid time_in %q for staff %s: %w", timeIn.String, att.StaffID, err)
	}

	if timeOut.Valid && timeOut.String != "" {
		out, err := time.ParseInLocation(attendance.TimestampLayout, timeOut.String, time.Local)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("invalid time_out %q for staff %s: %w", timeOut.String, att.StaffID, err)
		}
		att.TimeOut = &out
	}

	att.LateMinutes = int(lateMinutes.Int64)
	att.OvertimeMinutes = int(overtimeMinutes.Int64)

	return att, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}
