package cron

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/metrics"
	"github.com/cmlabs-hris/smart-attendance/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staleGauge(t *testing.T, m *metrics.Metrics) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == "attendance_stale_open_records" {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("stale open records gauge not registered")
	return 0
}

func TestFlagStaleOpenRecords(t *testing.T) {
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "attendance.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewAttendanceRepository(db)
	day := func(d, h int) time.Time { return time.Date(2024, time.January, d, h, 0, 0, 0, time.Local) }
	create := func(staffID string, in time.Time) {
		require.NoError(t, repo.Create(ctx, attendance.Attendance{StaffID: staffID, Date: attendance.DateOf(in), TimeIn: in}))
	}

	create("E1", day(1, 11))
	create("E2", day(1, 11))
	create("E3", day(4, 11))
	require.NoError(t, repo.Complete(ctx, "E2", day(1, 0), day(1, 20), 0))

	clk := &clock.Fixed{T: day(5, 9)}
	m := metrics.New()
	jobs := NewAttendanceJobs(repo, clk, m, quietLogger())

	require.NoError(t, jobs.FlagStaleOpenRecords(ctx))
	assert.Equal(t, 1.0, staleGauge(t, m), "yesterday's open record can still be clocked out")

	clk.Set(day(6, 9))
	require.NoError(t, jobs.FlagStaleOpenRecords(ctx))
	assert.Equal(t, 2.0, staleGauge(t, m))
}

func TestFlagStaleOpenRecords_StorageError(t *testing.T) {
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "attendance.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	repo := sqlite.NewAttendanceRepository(db)
	require.NoError(t, db.Close())

	jobs := NewAttendanceJobs(repo, nil, nil, quietLogger())

	s := NewScheduler(quietLogger())
	jobs.RegisterJobs(s)
	s.runOnce(ctx)

	var storageErr *attendance.StorageError
	assert.ErrorAs(t, jobs.FlagStaleOpenRecords(ctx), &storageErr)
}
