package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smart-attendance/internal/config"
	"github.com/cmlabs-hris/smart-attendance/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(cfg config.AppConfig, logger *slog.Logger, attendanceHandler AttendanceHandler, metricsHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		// Health probes and scrapes are noise in the access log.
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/" || req.URL.Path == "/metrics"
		},
	}))

	r.Use(middleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.List)
			r.Get("/shift", attendanceHandler.Shift)
			r.Get("/report.xlsx", attendanceHandler.ExportXLSX)
			r.Get("/events", attendanceHandler.Events)

			r.Group(func(r chi.Router) {
				r.Use(chiMiddleware.AllowContentType("application/json"))
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
			})
		})
	})

	return r
}

// NewLogger builds the JSON slog logger used for both application and access logs.
func NewLogger(cfg config.AppConfig, level slog.Level, w io.Writer) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "smart-attendance"),
		slog.String("env", cfg.Env),
	)
}
