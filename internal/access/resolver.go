// Package access classifies folders for display using the flags the
// document backend has already computed. It never decides authorization on
// its own: the backend re-checks every request.
package access

import "docshare/internal/domain/models"

// Classification is how a folder may be presented
type Classification string

const (
	// Hidden folders are not rendered at all
	Hidden Classification = "hidden"
	// Locked folders are rendered but cannot be opened
	Locked Classification = "locked"
	// Full folders can be opened and listed
	Full Classification = "full"
)

// Classify applies the backend's access flags. Absent flags count as true.
func Classify(f *models.Folder) Classification {
	if f.HasAccess != nil && !*f.HasAccess {
		return Hidden
	}
	if f.CanViewContent != nil && !*f.CanViewContent {
		return Locked
	}
	return Full
}

// Decision is the full set of display flags for one folder
type Decision struct {
	Classification    Classification `json:"access"`
	CanView           bool           `json:"canView"`
	CanBrowseChildren bool           `json:"canBrowseChildren"`
	CanEdit           bool           `json:"canEdit"`
	CanShare          bool           `json:"canShare"`
	// CanShareDepartment offers the department-share dialog
	CanShareDepartment bool `json:"canShareDepartment"`
}

// Resolver derives display flags from backend flags and the viewer's role
type Resolver struct {
	roles *Capabilities
}

// NewResolver creates a resolver backed by a role capability table
func NewResolver(roles *Capabilities) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve returns the display flags for f as seen by viewer
func (r *Resolver) Resolve(f *models.Folder, viewer *models.Viewer) Decision {
	class := Classify(f)
	if class == Hidden {
		return Decision{Classification: Hidden}
	}

	caps := r.roles.For(viewer.Role)
	owner := f.OwnerID != "" && f.OwnerID == viewer.UserID

	return Decision{
		Classification:    class,
		CanView:           true,
		CanBrowseChildren: class == Full,
		CanEdit:           owner || caps.EditAny,
		CanShare:          owner || caps.ShareAny,

		CanShareDepartment: caps.ShareDepartment,
	}
}

// Capabilities returns the interface actions offered to viewer's role
func (r *Resolver) Capabilities(viewer *models.Viewer) RoleCapabilities {
	return r.roles.For(viewer.Role)
}
