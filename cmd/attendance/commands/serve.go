package commands

import (
	"os"

	"github.com/cmlabs-hris/smart-attendance/internal/app"
	appHTTP "github.com/cmlabs-hris/smart-attendance/internal/handler/http"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the attendance HTTP API",
		Example: `  # Serve on APP_PORT (default 8080)
  attendance serve

  # Serve on a different port with a specific database
  attendance serve --port 9090 --db /var/lib/attendance.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.App.Port = port
			}

			logger := appHTTP.NewLogger(cfg.App, cfg.SlogLevel(), os.Stdout)

			a, err := app.New(cmd.Context(), cfg, logger, clk)
			if err != nil {
				return err
			}
			defer a.Close()

			headerColor.Fprintf(cmd.ErrOrStderr(), "Smart Attendance listening on :%d\n", cfg.App.Port)
			return a.Serve(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides APP_PORT)")

	return cmd
}
