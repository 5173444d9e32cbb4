package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_PATH", "APP_PORT", "APP_ENV", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "SHIFT_START_TIME", "STANDARD_SHIFT_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smart_attendance.db", cfg.Database.Path)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "11:00:00", cfg.Shift.StartTime)
	assert.Equal(t, 540, cfg.Shift.StandardMinutes)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSOrigins)

	h, m, s, err := cfg.Shift.Start()
	require.NoError(t, err)
	assert.Equal(t, []int{11, 0, 0}, []int{h, m, s})
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHIFT_START_TIME", "08:30:00")
	t.Setenv("STANDARD_SHIFT_MINUTES", "480")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 480, cfg.Shift.StandardMinutes)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.CORSOrigins)

	h, m, _, err := cfg.Shift.Start()
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 30, m)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "APP_PORT", "http"},
		{"port out of range", "APP_PORT", "70000"},
		{"bad shift start", "SHIFT_START_TIME", "11am"},
		{"zero standard minutes", "STANDARD_SHIFT_MINUTES", "-5"},
		{"non numeric standard minutes", "STANDARD_SHIFT_MINUTES", "nine hours"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
