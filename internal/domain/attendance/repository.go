package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the durable store of attendance records, one per (staff, date).
type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrAlreadyClockedIn if the key exists; never overwrites.
	Create(ctx context.Context, attendance Attendance) error

	// Complete writes time_out and overtime_minutes on an open record.
	// Returns ErrNotClockedIn if no record exists and ErrAlreadyClockedOut if it is already closed.
	Complete(ctx context.Context, staffID string, date time.Time, timeOut time.Time, overtimeMinutes int) error

	// GetByStaffAndDate returns ErrNotClockedIn when there is no record for the key.
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (Attendance, error)

	// ListAll returns every record matching filter, ordered by date then staff ID.
	ListAll(ctx context.Context, filter RecordFilter) ([]Attendance, error)

	// CountOpenBefore counts records without a time_out dated strictly before date.
	CountOpenBefore(ctx context.Context, date time.Time) (int, error)
}
