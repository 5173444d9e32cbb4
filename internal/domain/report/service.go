package report

import (
	"context"
	"io"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
)

// ReportService defines the interface for attendance sheet generation
type ReportService interface {
	// Generate the attendance sheet for the filtered period
	GenerateAttendanceSheet(ctx context.Context, filter attendance.RecordFilter) (AttendanceSheet, error)

	// Write the attendance sheet as an .xlsx workbook
	WriteAttendanceSheetXLSX(ctx context.Context, filter attendance.RecordFilter, w io.Writer) error
}
