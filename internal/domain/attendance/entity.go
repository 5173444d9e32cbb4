package attendance

import (
	"time"
)

const (
	// DateLayout is the calendar date stored in the date column.
	DateLayout = "2006-01-02"
	// TimestampLayout is the local date+time stored in time_in and time_out.
	TimestampLayout = "2006-01-02 15:04:05"
	// TimeOfDayLayout is what the attendance sheet shows for In and Out.
	TimeOfDayLayout = "15:04:05"
)

const (
	StatusClockedIn  = "clocked_in"
	StatusClockedOut = "clocked_out"
)

// Live event types published after a successful clock-in or clock-out.
const (
	EventClockIn  = "clock_in"
	EventClockOut = "clock_out"
)

// Attendance is one staff member's day: keyed by (StaffID, Date).
type Attendance struct {
	StaffID         string
	Date            time.Time
	TimeIn          time.Time
	TimeOut         *time.Time // nil while still clocked in
	LateMinutes     int
	OvertimeMinutes int
}

func (a Attendance) IsOpen() bool {
	return a.TimeOut == nil
}

func (a Attendance) Status() string {
	if a.IsOpen() {
		return StatusClockedIn
	}
	return StatusClockedOut
}

// DateOf returns local midnight of t's calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
