package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	leavedomain "github.com/hrcore/hr-backend-go/internal/domain/leave"
	"github.com/hrcore/hr-backend-go/internal/domain/user"
	"github.com/hrcore/hr-backend-go/internal/handler/http/response"
	leaveservice "github.com/hrcore/hr-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)

	ReviewRequest(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)

	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	ProvisionBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveservice.LeaveService
}

func NewLeaveHandler(leaveService *leaveservice.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	var req leavedomain.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	request, err := h.leaveService.Apply(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leavedomain.NewRequestResponse(request))
}

// CancelRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.leaveService.Cancel(r.Context(), requestID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", leavedomain.NewRequestResponse(request))
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	requests, err := h.leaveService.HistoryByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leavedomain.RequestResponse, 0, len(requests))
	for _, request := range requests {
		resp = append(resp, leavedomain.NewRequestResponse(request))
	}
	response.Success(w, resp)
}

// GetMyBalance implements LeaveHandler. Requires ?leave_type_id, accepts
// optional ?year (defaults to the current year).
func (h *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := claimString(r, "employee_id")
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	leaveTypeID := r.URL.Query().Get("leave_type_id")
	if leaveTypeID == "" {
		response.BadRequest(w, "leave_type_id query parameter is required", nil)
		return
	}

	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	balance, err := h.leaveService.BalanceFor(r.Context(), employeeID, leaveTypeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leavedomain.NewBalanceResponse(balance))
}

// ReviewRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) ReviewRequest(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := claimString(r, "user_id")
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}
	roleStr, ok := claimString(r, "role")
	if !ok {
		response.Unauthorized(w, "role claim is missing or invalid")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req leavedomain.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReviewRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.leaveService.Review(r.Context(), requestID, reviewerID, user.Role(roleStr), req.Approved)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Leave request rejected successfully"
	if req.Approved {
		message = "Leave request approved successfully"
	}
	response.SuccessWithMessage(w, message, leavedomain.NewRequestResponse(request))
}

// ListPending implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.PendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]leavedomain.RequestResponse, 0, len(requests))
	for _, request := range requests {
		resp = append(resp, leavedomain.NewRequestResponse(request))
	}
	response.Success(w, resp)
}

// CreateType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leavedomain.CreateTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := h.leaveService.CreateType(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leaveType)
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// ProvisionBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) ProvisionBalance(w http.ResponseWriter, r *http.Request) {
	var req leavedomain.ProvisionBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ProvisionBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.leaveService.ProvisionBalance(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave balance provisioned successfully", leavedomain.NewBalanceResponse(balance))
}
