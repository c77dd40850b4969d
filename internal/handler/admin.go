package handler

import (
	"log/slog"
	"net/http"

	"docshare/internal/domain/models"
	"docshare/internal/domain/services"
	"docshare/internal/httputil"
)

// AdminHandler handles department and employee administration.
// Authorization is enforced by the backend; denials pass through as 403.
type AdminHandler struct {
	adminService services.AdminService
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService services.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

func pageRequest(r *http.Request) models.PageRequest {
	return models.PageRequest{
		Page:  httputil.QueryInt(r, "page", 1),
		Limit: httputil.QueryInt(r, "limit", models.DefaultPageLimit),
	}
}

// ListDepartments returns one page of departments
// GET /api/admin/departments?page=&limit=
func (h *AdminHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	page, err := h.adminService.ListDepartments(r.Context(), viewer, pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// CreateDepartment creates a department
// POST /api/admin/departments
func (h *AdminHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	var req models.CreateDepartmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dept, err := h.adminService.CreateDepartment(r.Context(), viewer, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, dept)
}

// UpdateDepartment updates a department's display fields
// PATCH /api/admin/departments/{id}
func (h *AdminHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateDepartmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dept, err := h.adminService.UpdateDepartment(r.Context(), viewer, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, dept)
}

// DeleteDepartment deletes a department
// DELETE /api/admin/departments/{id}
func (h *AdminHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteDepartment(r.Context(), viewer, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEmployees returns one page of employees
// GET /api/admin/employees?page=&limit=
func (h *AdminHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	page, err := h.adminService.ListEmployees(r.Context(), viewer, pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// CreateEmployee creates an employee
// POST /api/admin/employees
func (h *AdminHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	var req models.CreateEmployeeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.adminService.CreateEmployee(r.Context(), viewer, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, user)
}

// UpdateEmployee updates an employee
// PATCH /api/admin/employees/{id}
func (h *AdminHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateEmployeeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.adminService.UpdateEmployee(r.Context(), viewer, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// DeleteEmployee deletes an employee
// DELETE /api/admin/employees/{id}
func (h *AdminHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteEmployee(r.Context(), viewer, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
