package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	StaffID string `json:"staff_id" validate:"required,staff_id"`
}

func (r *ClockInRequest) Validate() error {
	r.StaffID = strings.TrimSpace(r.StaffID)
	return validator.Struct(r)
}

type ClockOutRequest struct {
	StaffID string `json:"staff_id" validate:"required,staff_id"`
}

func (r *ClockOutRequest) Validate() error {
	r.StaffID = strings.TrimSpace(r.StaffID)
	return validator.Struct(r)
}

type ClockInResponse struct {
	StaffID     string `json:"staff_id"`
	Date        string `json:"date"`
	TimeIn      string `json:"time_in"`
	LateMinutes int    `json:"late_minutes"`
	Message     string `json:"message"`
}

type ClockOutResponse struct {
	StaffID         string `json:"staff_id"`
	Date            string `json:"date"`
	TimeIn          string `json:"time_in"`
	TimeOut         string `json:"time_out"`
	WorkedMinutes   int    `json:"worked_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Message         string `json:"message"`
}

// AttendanceResponse is one row of the attendance sheet. Times are time-of-day only.
type AttendanceResponse struct {
	StaffID         string `json:"staff_id"`
	Date            string `json:"date"`
	TimeIn          string `json:"time_in"`
	TimeOut         string `json:"time_out"`
	LateMinutes     int    `json:"late_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Status          string `json:"status"`
}

type ListAttendanceResponse struct {
	TotalCount  int                  `json:"total_count"`
	Attendances []AttendanceResponse `json:"attendances"`
	// The resolved filter period; empty when unbounded.
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`
}

type RecordFilter struct {
	StaffID   *string `json:"staff_id,omitempty"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,date"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,date"`   // YYYY-MM-DD
	Month     *string `json:"month,omitempty" validate:"omitempty,month"`     // YYYY-MM, expands to StartDate/EndDate
}

// Validate trims the filter, drops blank fields and expands Month into StartDate/EndDate.
func (f *RecordFilter) Validate() error {
	f.StaffID = trimmedOrNil(f.StaffID)
	f.StartDate = trimmedOrNil(f.StartDate)
	f.EndDate = trimmedOrNil(f.EndDate)
	f.Month = trimmedOrNil(f.Month)

	if err := validator.Struct(f); err != nil {
		return err
	}

	if f.Month != nil {
		if f.StartDate != nil || f.EndDate != nil {
			return validator.ValidationErrors{{
				Field:   "month",
				Message: "month cannot be combined with start_date or end_date",
			}}
		}
		month, _ := time.Parse(validator.MonthLayout, *f.Month)
		start := month.Format(DateLayout)
		end := month.AddDate(0, 1, -1).Format(DateLayout)
		f.StartDate = &start
		f.EndDate = &end
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate > *f.EndDate {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}

	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ShiftResponse describes the configured shift, e.g. "11:00 - 20:00".
type ShiftResponse struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	StandardMinutes int    `json:"standard_minutes"`
}
