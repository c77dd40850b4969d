package models

// Role is a user's organisational role
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Roles lists every valid role in display order
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is a person known to the document backend.
// Department is nil when the backend returned only an id reference.
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         Role        `json:"role"`
	DepartmentID string      `json:"departmentId,omitempty"`
	Department   *Department `json:"department,omitempty"`
}

// Viewer is the authenticated caller on whose behalf the gateway acts
type Viewer struct {
	UserID       string
	Email        string
	Role         Role
	DepartmentID string
	// Token is the caller's bearer credential, forwarded to the backend per request
	Token string
}
