package models

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest is a 1-based page selector
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies defaults and caps the limit
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Page is one page of a paginated collection
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// CreateDepartmentRequest creates a department; Name becomes the immutable slug
type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
}

// UpdateDepartmentRequest updates the mutable department fields
type UpdateDepartmentRequest struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// CreateEmployeeRequest creates an employee account
type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// UpdateEmployeeRequest updates an employee account
type UpdateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}
