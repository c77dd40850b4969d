package models

import "time"

// Department is an organisational unit that folders can be shared with.
// Name is a lowercase slug fixed at creation; EmployeeCount is derived by the backend.
type Department struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DisplayName   string    `json:"displayName"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"isActive"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// DepartmentView is a department annotated for the admin panel
type DepartmentView struct {
	Department
	// CanDelete is a convenience hint; the backend still decides
	CanDelete bool `json:"canDelete"`
}

// NewDepartmentView annotates a department for display
func NewDepartmentView(d Department) DepartmentView {
	return DepartmentView{Department: d, CanDelete: d.EmployeeCount == 0}
}
