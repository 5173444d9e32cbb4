package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/config"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "attendance.db")},
		App:      config.AppConfig{Port: 8080, Env: "test", LogLevel: "info"},
		Shift:    config.ShiftConfig{StartTime: "11:00:00", StandardMinutes: 540},
	}
}

func TestNew_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := &clock.Fixed{T: time.Date(2024, time.January, 1, 11, 23, 0, 0, time.Local)}

	a, err := New(ctx, cfg, logger, clk)
	require.NoError(t, err)
	_, err = a.Attendance.ClockIn(ctx, attendance.ClockInRequest{StaffID: "E1"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, logger, clk)
	require.NoError(t, err)
	defer b.Close()

	list, err := b.Attendance.ListRecords(ctx, attendance.RecordFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalCount)
	assert.Equal(t, 23, list.Attendances[0].LateMinutes)
}

func TestNew_InvalidShift(t *testing.T) {
	cfg := testConfig(t)
	cfg.Shift.StartTime = "late"

	_, err := New(context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}

func TestApp_Router(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, err)
	defer a.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", strings.NewReader(`{"staff_id":"E9"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.Port = 0
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
