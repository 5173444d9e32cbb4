package report

import (
	"strconv"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
)

// ========================================
// ATTENDANCE SHEET
// ========================================

// SheetColumns are the headers of the attendance sheet, in order.
var SheetColumns = []string{"ID", "Date", "In", "Out", "Late (min)", "Extra (min)"}

type AttendanceSheet struct {
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`
	GeneratedAt string `json:"generated_at"`

	Summary AttendanceSummary               `json:"summary"`
	Rows    []attendance.AttendanceResponse `json:"rows"`
}

type AttendanceSummary struct {
	TotalRecords         int `json:"total_records"`
	OpenRecords          int `json:"open_records"`
	TotalLateDays        int `json:"total_late_days"`
	TotalLateMinutes     int `json:"total_late_minutes"`
	TotalOvertimeMinutes int `json:"total_overtime_minutes"`
}

// TableRows renders each row as strings in SheetColumns order.
func (s AttendanceSheet) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{
			r.StaffID,
			r.Date,
			r.TimeIn,
			r.TimeOut,
			strconv.Itoa(r.LateMinutes),
			strconv.Itoa(r.OvertimeMinutes),
		})
	}
	return rows
}

func Summarize(rows []attendance.AttendanceResponse) AttendanceSummary {
	var s AttendanceSummary
	for _, r := range rows {
		s.TotalRecords++
		if r.Status == attendance.StatusClockedIn {
			s.OpenRecords++
		}
		if r.LateMinutes > 0 {
			s.TotalLateDays++
		}
		s.TotalLateMinutes += r.LateMinutes
		s.TotalOvertimeMinutes += r.OvertimeMinutes
	}
	return s
}
