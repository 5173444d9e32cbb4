package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/smart-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance/internal/domain/report"
	"github.com/cmlabs-hris/smart-attendance/internal/handler/http/response"
	"github.com/cmlabs-hris/smart-attendance/internal/pkg/sse"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	keepaliveInterval = 30 * time.Second
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Shift(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
	events            *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, reportService report.ReportService, events *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		reportService:     reportService,
		events:            events,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseRecordFilter(r)

	result, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		TotalItems:  result.TotalCount,
		PeriodStart: result.PeriodStart,
		PeriodEnd:   result.PeriodEnd,
	})
}

// Shift implements AttendanceHandler.
func (h *attendanceHandlerImpl) Shift(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.Shift())
}

// ExportXLSX implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	filter := parseRecordFilter(r)

	filename := "attendance.xlsx"
	if filter.Month != nil {
		filename = fmt.Sprintf("attendance-%s.xlsx", *filter.Month)
	}

	err := response.Attachment(w, filename, xlsxContentType, func(out io.Writer) error {
		return h.reportService.WriteAttendanceSheetXLSX(r.Context(), filter, out)
	})
	if err != nil {
		response.HandleError(w, err)
	}
}

// Events implements AttendanceHandler. It streams clock events as server-sent events,
// for one staff member when staff_id is given and for everyone otherwise.
func (h *attendanceHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		response.NotFound(w, "Live events are not enabled")
		return
	}

	rc := http.NewResponseController(w)
	// The stream outlives the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	topic := sse.AllStaff
	if staffID := r.URL.Query().Get("staff_id"); staffID != "" {
		topic = staffID
	}

	events, cleanup := h.events.Subscribe(topic)
	defer func() {
		cleanup()
		slog.Debug("Clock event stream closed", "staff_id", topic, "subscribers", h.events.TotalSubscribers())
	}()
	slog.Debug("Clock event stream opened", "staff_id", topic, "subscribers", h.events.TotalSubscribers())

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: connected\ndata: {\"staff_id\":%q}\n\n", topic)
	if err := rc.Flush(); err != nil {
		slog.Error("Streaming not supported", "error", err)
		return
	}

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode clock event", "type", event.Type, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			_ = rc.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			_ = rc.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func parseRecordFilter(r *http.Request) attendance.RecordFilter {
	filter := attendance.RecordFilter{}
	query := r.URL.Query()

	if staffID := query.Get("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}

	if month := query.Get("month"); month != "" {
		filter.Month = &month
	}

	// Date range filters
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	return filter
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("Failed to decode request body", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
