package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens today's record for the staff member and derives late minutes
	ClockIn(ctx context.Context, req ClockInRequest) (ClockInResponse, error)

	// ClockOut closes the open record and derives overtime minutes
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)

	// ListRecords returns the attendance sheet
	ListRecords(ctx context.Context, filter RecordFilter) (ListAttendanceResponse, error)

	// Shift describes the configured shift
	Shift() ShiftResponse
}
