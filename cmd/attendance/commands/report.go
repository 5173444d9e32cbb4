package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/report"
	"github.com/spf13/cobra"
)

const (
	lateColumn  = 4
	extraColumn = 5
)

func newReportCommand() *cobra.Command {
	var (
		month     string
		staffID   string
		startDate string
		endDate   string
		xlsxPath  string
	)

	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"sheet"},
		Short:   "Show the attendance sheet",
		Long: `Print the attendance sheet: one row per staff member per day with
ID, Date, In, Out, Late (min) and Extra (min).

Use --xlsx to write the same sheet to an Excel workbook instead.`,
		Example: `  # Everything on record
  attendance report

  # One month for one person
  attendance report --month 2024-01 --staff E1

  # Export a month to Excel
  attendance report --month 2024-01 --xlsx january.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := attendance.RecordFilter{}
			if month != "" {
				filter.Month = &month
			}
			if staffID != "" {
				filter.StaffID = &staffID
			}
			if startDate != "" {
				filter.StartDate = &startDate
			}
			if endDate != "" {
				filter.EndDate = &endDate
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if xlsxPath != "" {
				return writeXLSX(cmd, a.Report, filter, xlsxPath)
			}

			sheet, err := a.Report.GenerateAttendanceSheet(cmd.Context(), filter)
			if err != nil {
				return err
			}
			renderSheet(cmd.OutOrStdout(), sheet)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "only this month (YYYY-MM)")
	cmd.Flags().StringVarP(&staffID, "staff", "s", "", "only this staff ID")
	cmd.Flags().StringVar(&startDate, "start", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the sheet to this .xlsx file")
	cmd.MarkFlagsMutuallyExclusive("month", "start")
	cmd.MarkFlagsMutuallyExclusive("month", "end")

	return cmd
}

func writeXLSX(cmd *cobra.Command, svc report.ReportService, filter attendance.RecordFilter, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := svc.WriteAttendanceSheetXLSX(cmd.Context(), filter, f); err != nil {
		return err
	}

	clockOutColor.Fprintf(cmd.OutOrStdout(), "Attendance sheet written to %s\n", path)
	return nil
}

func renderSheet(w io.Writer, sheet report.AttendanceSheet) {
	headerColor.Fprintln(w, "Attendance Sheet")
	if sheet.PeriodStart != "" || sheet.PeriodEnd != "" {
		fmt.Fprintf(w, "Period: %s to %s\n", orDash(sheet.PeriodStart), orDash(sheet.PeriodEnd))
	}

	if len(sheet.Rows) == 0 {
		warnColor.Fprintln(w, "No attendance records.")
		return
	}

	rows := sheet.TableRows()
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	lateStyle := cellStyle.Foreground(lipgloss.Color("9"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(report.SheetColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case lateColumn:
				if row < len(rows) && rows[row][col] != "0" {
					return lateStyle.Align(lipgloss.Right)
				}
				return cellStyle.Align(lipgloss.Right)
			case extraColumn:
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d records, %d still clocked in, %d late (%d min), %d min overtime\n",
		sheet.Summary.TotalRecords,
		sheet.Summary.OpenRecords,
		sheet.Summary.TotalLateDays,
		sheet.Summary.TotalLateMinutes,
		sheet.Summary.TotalOvertimeMinutes,
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
