package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/pkg/cron"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP API and the background jobs until ctx is cancelled,
// then drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	jobsCtx, stopJobs := context.WithCancel(ctx)
	scheduler := cron.NewScheduler(a.Logger)
	a.Jobs.RegisterJobs(scheduler)
	scheduler.Start(jobsCtx)
	defer scheduler.Wait()
	defer stopJobs()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.App.Port),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.Logger.Info("Server running", "addr", server.Addr, "db_path", a.DB.Path(), "env", a.Config.App.Env)

	select {
	case <-ctx.Done():
		a.Logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}
