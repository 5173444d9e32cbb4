package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShiftCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shift",
		Short: "Show the configured shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			shift := a.Attendance.Shift()
			fmt.Fprintf(cmd.OutOrStdout(), "Shift: %s - %s (%d min)\n", shift.StartTime, shift.EndTime, shift.StandardMinutes)
			return nil
		},
	}
}
