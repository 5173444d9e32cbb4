package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/report"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Storage failures carry driver detail that must not reach the client
	var storageErr *attendance.StorageError
	if errors.As(err, &storageErr) {
		slog.Error("Attendance storage failure", "op", storageErr.Op, "error", storageErr.Err)
		InternalServerError(w, "Attendance storage is unavailable")
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "You already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		NotFound(w, "You haven't clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "You already clocked out today")

	// Report domain errors
	case errors.Is(err, report.ErrReportGenerationFailed):
		slog.Error("Report generation failed", "error", err)
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
