package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type cliEnv struct {
	db    string
	clock *clock.Fixed
}

func setupCLI(t *testing.T) cliEnv {
	t.Helper()

	t.Setenv("APP_ENV", "test")
	t.Setenv("SHIFT_START_TIME", "11:00:00")
	t.Setenv("STANDARD_SHIFT_MINUTES", "540")

	fixed := &clock.Fixed{T: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)}
	clk = fixed
	t.Cleanup(func() { clk = nil })

	return cliEnv{db: filepath.Join(t.TempDir(), "attendance.db"), clock: fixed}
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color", "--db", e.db}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClockInCommand(t *testing.T) {
	env := setupCLI(t)
	env.clock.Set(time.Date(2024, time.January, 1, 11, 23, 0, 0, time.Local))

	out, err := env.run(t, "clock-in", "E1")
	require.NoError(t, err)
	assert.Contains(t, out, "Clocked IN at 11:23")
	assert.Contains(t, out, "Note: 23 minutes LATE.")

	_, err = env.run(t, "clock-in", "E1")
	require.Error(t, err)
	assert.Equal(t, "You already clocked in today!", describeError(err))
}

func TestClockInCommand_RequiresStaffID(t *testing.T) {
	env := setupCLI(t)

	_, err := env.run(t, "clock-in")
	assert.Error(t, err)

	_, err = env.run(t, "clock-in", "   ")
	require.Error(t, err)
	assert.Equal(t, "Enter Staff ID", describeError(err))
}

func TestClockOutCommand(t *testing.T) {
	env := setupCLI(t)

	env.clock.Set(time.Date(2024, time.January, 1, 20, 0, 0, 0, time.Local))
	_, err := env.run(t, "clock-out", "E1")
	require.Error(t, err)
	assert.Equal(t, "You haven't clocked in today!", describeError(err))

	env.clock.Set(time.Date(2024, time.January, 1, 11, 23, 0, 0, time.Local))
	_, err = env.run(t, "in", "E1")
	require.NoError(t, err)

	env.clock.Set(time.Date(2024, time.January, 1, 20, 45, 0, 0, time.Local))
	out, err := env.run(t, "out", "E1")
	require.NoError(t, err)
	assert.Contains(t, out, "Clocked OUT at 20:45")
	assert.Contains(t, out, "Overtime recorded: 22 mins.")
}

func TestReportCommand(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "No attendance records.")

	env.clock.Set(time.Date(2024, time.January, 1, 11, 23, 0, 0, time.Local))
	_, err = env.run(t, "clock-in", "E1")
	require.NoError(t, err)
	env.clock.Set(time.Date(2024, time.January, 1, 20, 45, 0, 0, time.Local))
	_, err = env.run(t, "clock-out", "E1")
	require.NoError(t, err)

	out, err = env.run(t, "report", "--month", "2024-01")
	require.NoError(t, err)
	for _, want := range []string{"ID", "Late (min)", "Extra (min)", "E1", "2024-01-01", "11:23:00", "20:45:00", "23", "22"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "Period: 2024-01-01 to 2024-01-31")
	assert.Contains(t, out, "1 records, 0 still clocked in, 1 late (23 min), 22 min overtime")

	_, err = env.run(t, "report", "--month", "2024-01", "--start", "2024-01-01")
	assert.Error(t, err)
}

func TestReportCommand_XLSX(t *testing.T) {
	env := setupCLI(t)
	env.clock.Set(time.Date(2024, time.January, 1, 10, 30, 0, 0, time.Local))
	_, err := env.run(t, "clock-in", "E1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	out, err := env.run(t, "report", "--xlsx", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "E1", rows[1][0])
	assert.Equal(t, "10:30:00", rows[1][2])
}

func TestShiftAndMigrateCommands(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "shift")
	require.NoError(t, err)
	assert.Contains(t, out, "Shift: 11:00 - 20:00 (540 min)")

	out, err = env.run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, env.db)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, assert.AnError)
	assert.Contains(t, buf.String(), "Error: "+assert.AnError.Error())
}
