package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/report"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/xuri/excelize/v2"
)

const (
	attendanceSheetName = "Attendance"
	summarySheetName    = "Summary"
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
}

func NewReportService(attendanceService attendance.AttendanceService, clk clock.Clock) report.ReportService {
	if clk == nil {
		clk = clock.System()
	}
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		clock:             clk,
	}
}

// GenerateAttendanceSheet implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendanceSheet(ctx context.Context, filter attendance.RecordFilter) (report.AttendanceSheet, error) {
	list, err := s.attendanceService.ListRecords(ctx, filter)
	if err != nil {
		return report.AttendanceSheet{}, err
	}

	return report.AttendanceSheet{
		PeriodStart: list.PeriodStart,
		PeriodEnd:   list.PeriodEnd,
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		Summary:     report.Summarize(list.Attendances),
		Rows:        list.Attendances,
	}, nil
}

// WriteAttendanceSheetXLSX implements report.ReportService.
func (s *ReportServiceImpl) WriteAttendanceSheetXLSX(ctx context.Context, filter attendance.RecordFilter, w io.Writer) error {
	sheet, err := s.GenerateAttendanceSheet(ctx, filter)
	if err != nil {
		return err
	}

	f, err := buildWorkbook(sheet)
	if err != nil {
		slog.Error("Failed to build attendance workbook", "error", err)
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return nil
}

func buildWorkbook(sheet report.AttendanceSheet) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", attendanceSheetName); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeAttendanceSheet(f, sheet, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummarySheet(f, sheet, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeAttendanceSheet(f *excelize.File, sheet report.AttendanceSheet, headerStyle int) error {
	header := make([]any, 0, len(report.SheetColumns))
	for _, col := range report.SheetColumns {
		header = append(header, col)
	}
	if err := f.SetSheetRow(attendanceSheetName, "A1", &header); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(report.SheetColumns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(attendanceSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(attendanceSheetName, "A", lastCol, 14); err != nil {
		return err
	}

	for i, r := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.StaffID, r.Date, r.TimeIn, r.TimeOut, r.LateMinutes, r.OvertimeMinutes}
		if err := f.SetSheetRow(attendanceSheetName, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func writeSummarySheet(f *excelize.File, sheet report.AttendanceSheet, headerStyle int) error {
	if _, err := f.NewSheet(summarySheetName); err != nil {
		return err
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Period start", sheet.PeriodStart},
		{"Period end", sheet.PeriodEnd},
		{"Generated at", sheet.GeneratedAt},
		{"Records", sheet.Summary.TotalRecords},
		{"Still clocked in", sheet.Summary.OpenRecords},
		{"Late days", sheet.Summary.TotalLateDays},
		{"Late (min)", sheet.Summary.TotalLateMinutes},
		{"Extra (min)", sheet.Summary.TotalOvertimeMinutes},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheetName, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(summarySheetName, "A1", "B1", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(summarySheetName, "A", "B", 20)
}
