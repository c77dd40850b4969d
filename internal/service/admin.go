package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
	"docshare/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

type adminService struct {
	backend repositories.AdminBackend
	logger  *slog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(backend repositories.AdminBackend, logger *slog.Logger) services.AdminService {
	return &adminService{
		backend: backend,
		logger:  logger,
	}
}

// Slugify turns a department name into its lowercase slug
func Slugify(name string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}

// ListDepartments returns one page of departments with delete hints
func (s *adminService) ListDepartments(ctx context.Context, viewer *models.Viewer, p models.PageRequest) (*models.Page[models.DepartmentView], error) {
	p = p.Normalize()

	page, err := s.backend.ListDepartments(ctx, viewer.Token, p)
	if err != nil {
		return nil, err
	}

	views := make([]models.DepartmentView, 0, len(page.Items))
	for _, d := range page.Items {
		views = append(views, models.NewDepartmentView(d))
	}

	return &models.Page[models.DepartmentView]{
		Items: views,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

// CreateDepartment creates a department. Only presence is checked here;
// uniqueness and the rest are the backend's call.
func (s *adminService) CreateDepartment(ctx context.Context, viewer *models.Viewer, req *models.CreateDepartmentRequest) (*models.DepartmentView, error) {
	req.Name = Slugify(req.Name)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Description = strings.TrimSpace(req.Description)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.DisplayName, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	dept, err := s.backend.CreateDepartment(ctx, viewer.Token, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("department created", "id", dept.ID, "name", dept.Name, "user_id", viewer.UserID)
	view := models.NewDepartmentView(*dept)
	return &view, nil
}

// UpdateDepartment updates a department; the slug is never sent
func (s *adminService) UpdateDepartment(ctx context.Context, viewer *models.Viewer, departmentID string, req *models.UpdateDepartmentRequest) (*models.DepartmentView, error) {
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Description = strings.TrimSpace(req.Description)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.DisplayName, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	dept, err := s.backend.UpdateDepartment(ctx, viewer.Token, departmentID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("department updated", "id", departmentID, "user_id", viewer.UserID)
	view := models.NewDepartmentView(*dept)
	return &view, nil
}

// DeleteDepartment forwards the delete. Departments with employees are
// refused by the backend and its message is passed through unchanged.
func (s *adminService) DeleteDepartment(ctx context.Context, viewer *models.Viewer, departmentID string) error {
	if err := s.backend.DeleteDepartment(ctx, viewer.Token, departmentID); err != nil {
		return err
	}

	s.logger.Info("department deleted", "id", departmentID, "user_id", viewer.UserID)
	return nil
}

// ListEmployees returns one page of employees
func (s *adminService) ListEmployees(ctx context.Context, viewer *models.Viewer, p models.PageRequest) (*models.Page[models.User], error) {
	return s.backend.ListEmployees(ctx, viewer.Token, p.Normalize())
}

func roleRule() validation.Rule {
	return validation.By(func(value interface{}) error {
		role, _ := value.(models.Role)
		if !role.Valid() {
			return fmt.Errorf("must be one of admin, manager, employee")
		}
		return nil
	})
}

// CreateEmployee creates an employee
func (s *adminService) CreateEmployee(ctx context.Context, viewer *models.Viewer, req *models.CreateEmployeeRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.Required, roleRule()),
		validation.Field(&req.Department, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.backend.CreateEmployee(ctx, viewer.Token, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee created", "id", user.ID, "role", user.Role, "user_id", viewer.UserID)
	return user, nil
}

// UpdateEmployee updates an employee
func (s *adminService) UpdateEmployee(ctx context.Context, viewer *models.Viewer, employeeID string, req *models.UpdateEmployeeRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Role, validation.Required, roleRule()),
		validation.Field(&req.Department, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.backend.UpdateEmployee(ctx, viewer.Token, employeeID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", "id", employeeID, "user_id", viewer.UserID)
	return user, nil
}

// DeleteEmployee deletes an employee
func (s *adminService) DeleteEmployee(ctx context.Context, viewer *models.Viewer, employeeID string) error {
	if err := s.backend.DeleteEmployee(ctx, viewer.Token, employeeID); err != nil {
		return err
	}

	s.logger.Info("employee deleted", "id", employeeID, "user_id", viewer.UserID)
	return nil
}
