package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	employeedomain "github.com/hrcore/hr-backend-go/internal/domain/employee"
	"github.com/hrcore/hr-backend-go/internal/handler/http/response"
	employeeservice "github.com/hrcore/hr-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	UpsertMyProfile(w http.ResponseWriter, r *http.Request)
	GetMyProfile(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	Directory(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeeservice.EmployeeService
}

func NewEmployeeHandler(employeeService *employeeservice.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// UpsertMyProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpsertMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimString(r, "user_id")
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	var req employeedomain.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertMyProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	profile, err := h.employeeService.UpsertProfile(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile saved successfully", employeedomain.NewProfileResponse(profile))
}

// GetMyProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimString(r, "user_id")
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	profile, err := h.employeeService.ProfileByUserID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employeedomain.NewProfileResponse(profile))
}

// GetProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	profile, err := h.employeeService.ProfileByID(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employeedomain.NewProfileResponse(profile))
}

// Directory implements EmployeeHandler. Supports ?name, ?department_id,
// ?page and ?limit.
func (h *EmployeeHandlerImpl) Directory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if v := query.Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "page must be a positive number", nil)
			return
		}
		page = parsed
	}
	limit := 20
	if v := query.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "limit must be a positive number", nil)
			return
		}
		limit = parsed
	}

	filter := employeedomain.DirectoryFilter{
		Name:         query.Get("name"),
		DepartmentID: query.Get("department_id"),
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	profiles, total, err := h.employeeService.Directory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]employeedomain.SummaryResponse, 0, len(profiles))
	for _, profile := range profiles {
		resp = append(resp, employeedomain.NewSummaryResponse(profile))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.SuccessWithMeta(w, resp, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
