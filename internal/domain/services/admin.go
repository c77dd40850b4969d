package services

import (
	"context"

	"docshare/internal/domain/models"
)

// AdminService manages departments and employees
type AdminService interface {
	ListDepartments(ctx context.Context, viewer *models.Viewer, p models.PageRequest) (*models.Page[models.DepartmentView], error)
	CreateDepartment(ctx context.Context, viewer *models.Viewer, req *models.CreateDepartmentRequest) (*models.DepartmentView, error)
	UpdateDepartment(ctx context.Context, viewer *models.Viewer, departmentID string, req *models.UpdateDepartmentRequest) (*models.DepartmentView, error)
	DeleteDepartment(ctx context.Context, viewer *models.Viewer, departmentID string) error

	ListEmployees(ctx context.Context, viewer *models.Viewer, p models.PageRequest) (*models.Page[models.User], error)
	CreateEmployee(ctx context.Context, viewer *models.Viewer, req *models.CreateEmployeeRequest) (*models.User, error)
	UpdateEmployee(ctx context.Context, viewer *models.Viewer, employeeID string, req *models.UpdateEmployeeRequest) (*models.User, error)
	DeleteEmployee(ctx context.Context, viewer *models.Viewer, employeeID string) error
}
