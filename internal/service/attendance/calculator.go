package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/config"
)

// ShiftPolicy holds the single fixed shift staff are measured against.
type ShiftPolicy struct {
	StartHour       int
	StartMinute     int
	StartSecond     int
	StandardMinutes int
}

// DefaultShiftPolicy is 11:00:00 for 540 minutes (11:00 to 20:00).
func DefaultShiftPolicy() ShiftPolicy {
	return ShiftPolicy{StartHour: 11, StandardMinutes: 540}
}

func NewShiftPolicy(cfg config.ShiftConfig) (ShiftPolicy, error) {
	hour, minute, second, err := cfg.Start()
	if err != nil {
		return ShiftPolicy{}, err
	}
	if cfg.StandardMinutes <= 0 {
		return ShiftPolicy{}, fmt.Errorf("standard shift minutes must be positive, got %d", cfg.StandardMinutes)
	}
	return ShiftPolicy{
		StartHour:       hour,
		StartMinute:     minute,
		StartSecond:     second,
		StandardMinutes: cfg.StandardMinutes,
	}, nil
}

// ShiftStart returns the shift start on t's calendar day.
func (p ShiftPolicy) ShiftStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), p.StartHour, p.StartMinute, p.StartSecond, 0, t.Location())
}

// ShiftEnd returns the scheduled end of the shift starting on t's calendar day.
func (p ShiftPolicy) ShiftEnd(t time.Time) time.Time {
	return p.ShiftStart(t).Add(time.Duration(p.StandardMinutes) * time.Minute)
}

// LateMinutes is the whole minutes t falls after the shift start, or 0 at or before it.
func (p ShiftPolicy) LateMinutes(t time.Time) int {
	start := p.ShiftStart(t)
	if !t.After(start) {
		return 0
	}
	return int(t.Sub(start) / time.Minute)
}

// OvertimeMinutes is the whole minutes worked beyond the standard shift, never negative.
func (p ShiftPolicy) OvertimeMinutes(timeIn, timeOut time.Time) int {
	overtime := WorkedMinutes(timeIn, timeOut) - p.StandardMinutes
	if overtime < 0 {
		return 0
	}
	return overtime
}

// WorkedMinutes is the whole minutes between in and out, 0 if out is not after in.
func WorkedMinutes(timeIn, timeOut time.Time) int {
	if !timeOut.After(timeIn) {
		return 0
	}
	return int(timeOut.Sub(timeIn) / time.Minute)
}
