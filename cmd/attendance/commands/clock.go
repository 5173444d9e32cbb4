package commands

import (
	"errors"
	"strings"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/validator"
	"github.com/spf13/cobra"
)

func newClockInCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clock-in STAFF_ID",
		Aliases: []string{"in"},
		Short:   "Clock a staff member in for today",
		Long: `Record today's clock-in for STAFF_ID at the current time.

Arriving after the shift start records the whole minutes late. Each staff
member can clock in once per day.`,
		Example: `  attendance clock-in E1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Attendance.ClockIn(cmd.Context(), attendance.ClockInRequest{StaffID: args[0]})
			if err != nil {
				return err
			}

			clockInColor.Fprintln(cmd.OutOrStdout(), firstLine(result.Message))
			if result.LateMinutes > 0 {
				warnColor.Fprintln(cmd.OutOrStdout(), restLines(result.Message))
			}
			return nil
		},
	}
}

func newClockOutCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clock-out STAFF_ID",
		Aliases: []string{"out"},
		Short:   "Clock a staff member out",
		Long: `Close STAFF_ID's open attendance record at the current time.

Time worked beyond the standard shift is recorded as overtime. A shift that
ran past midnight is closed on the day it started.`,
		Example: `  attendance clock-out E1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Attendance.ClockOut(cmd.Context(), attendance.ClockOutRequest{StaffID: args[0]})
			if err != nil {
				return err
			}

			clockOutColor.Fprintln(cmd.OutOrStdout(), firstLine(result.Message))
			if result.OvertimeMinutes > 0 {
				warnColor.Fprintln(cmd.OutOrStdout(), restLines(result.Message))
			}
			return nil
		},
	}
}

func firstLine(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")
	return line
}

func restLines(msg string) string {
	_, rest, _ := strings.Cut(msg, "\n")
	return rest
}

// describeError turns service errors into the messages staff see at the terminal.
func describeError(err error) string {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		if msg, ok := validationErrs.ToMap()["staff_id"]; ok {
			if strings.Contains(msg, "required") {
				return "Enter Staff ID"
			}
			return msg
		}
		return validationErrs.Error()
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		return "You already clocked in today!"
	case errors.Is(err, attendance.ErrNotClockedIn):
		return "You haven't clocked in today!"
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		return "You already clocked out today!"
	default:
		return err.Error()
	}
}
