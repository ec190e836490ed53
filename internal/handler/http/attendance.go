package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	attendancedomain "github.com/hrcore/hr-backend-go/internal/domain/attendance"
	"github.com/hrcore/hr-backend-go/internal/handler/http/response"
	attendanceservice "github.com/hrcore/hr-backend-go/internal/service/attendance"
	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)

	CreatePolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendanceservice.AttendanceService
}

func NewAttendanceHandler(attendanceService *attendanceservice.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}
	departmentID, _ := claimString(r, "department_id")

	record, err := h.attendanceService.ClockIn(r.Context(), employeeID, departmentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", attendancedomain.NewCheckInResponse(record))
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	record, err := h.attendanceService.ClockOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", attendancedomain.NewCheckOutResponse(record))
}

// GetMyAttendance implements AttendanceHandler. Accepts optional ?from and
// ?to query params (YYYY-MM-DD); defaults to the last 30 days.
func (h *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
			return
		}
		to = parsed
	}

	records, err := h.attendanceService.History(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]attendancedomain.CheckOutResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, attendancedomain.NewCheckOutResponse(record))
	}
	response.Success(w, resp)
}

// CreatePolicy implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req attendancedomain.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := h.attendanceService.CreatePolicy(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance policy created successfully", policy)
}

// ListPolicies implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.attendanceService.ListPolicies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policies)
}
