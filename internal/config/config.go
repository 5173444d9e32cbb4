package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ShiftTimeLayout is the wall-clock layout accepted for SHIFT_START_TIME.
const ShiftTimeLayout = "15:04:05"

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Shift    ShiftConfig
}

// DatabaseConfig points at the single local attendance store.
type DatabaseConfig struct {
	Path string `validate:"required"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int    `validate:"min=1,max=65535"`
	Env         string `validate:"oneof=development staging production test"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	CORSOrigins []string
}

// ShiftConfig describes the single fixed shift staff are measured against.
type ShiftConfig struct {
	StartTime       string `validate:"required"`
	StandardMinutes int    `validate:"min=1,max=1440"`
}

// Start returns the configured shift start as hour, minute and second.
func (s ShiftConfig) Start() (hour, minute, second int, err error) {
	t, err := time.Parse(ShiftTimeLayout, s.StartTime)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid SHIFT_START_TIME %q: %w", s.StartTime, err)
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	config.Database = DatabaseConfig{
		Path: getEnv("DB_PATH", "smart_attendance.db"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Shift configuration
	standardMinutes, err := strconv.Atoi(getEnv("STANDARD_SHIFT_MINUTES", "540"))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_SHIFT_MINUTES: %w", err)
	}

	config.Shift = ShiftConfig{
		StartTime:       getEnv("SHIFT_START_TIME", "11:00:00"),
		StandardMinutes: standardMinutes,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, _, _, err := c.Shift.Start(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
