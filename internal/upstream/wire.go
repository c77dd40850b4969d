package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"docshare/internal/domain/models"
)

// The backend aliases identifiers as "id" or "_id" depending on the
// endpoint, and embeds referenced records either as an id string or as a
// populated object. Everything is collapsed to a single id here so the
// rest of the gateway never sees the ambiguity.

// flexID is an identifier sent either as a string or as a JSON number.
// Numbers keep their decimal text.
type flexID string

// UnmarshalJSON implements json.Unmarshaler
func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case string(data) == "null":
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported id: %s", data)
		}
		*f = flexID(n.String())
	}
	return nil
}

// ident picks the canonical id from the two aliases
type ident struct {
	ID       flexID `json:"id"`
	LegacyID flexID `json:"_id"`
}

func (i ident) value() string {
	if i.ID != "" {
		return string(i.ID)
	}
	return string(i.LegacyID)
}

// ref is a reference to another record: an id, an object, or null
type ref struct {
	ID  string
	Raw json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler
func (r *ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var id ident
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = ref{ID: id.value(), Raw: append(json.RawMessage(nil), data...)}
		return nil
	}

	var id flexID
	if err := id.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("unsupported reference: %s", data)
	}
	*r = ref{ID: string(id)}
	return nil
}

func (r ref) ptr() *string {
	if r.ID == "" {
		return nil
	}
	id := r.ID
	return &id
}

// refList is a list of references
type refList []ref

func (l refList) ids() []string {
	out := make([]string, 0, len(l))
	for _, r := range l {
		if r.ID != "" {
			out = append(out, r.ID)
		}
	}
	return out
}

type wireDepartment struct {
	ident
	Name          string    `json:"name"`
	DisplayName   string    `json:"displayName"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (w *wireDepartment) model() models.Department {
	return models.Department{
		ID:            w.value(),
		Name:          w.Name,
		DisplayName:   w.DisplayName,
		Description:   w.Description,
		IsActive:      w.IsActive,
		EmployeeCount: w.EmployeeCount,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

type wireUser struct {
	ident
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	Department ref         `json:"department"`
}

func (w *wireUser) model() models.User {
	u := models.User{
		ID:           w.value(),
		Name:         w.Name,
		Email:        w.Email,
		Role:         w.Role,
		DepartmentID: w.Department.ID,
	}
	if len(w.Department.Raw) > 0 {
		var d wireDepartment
		if err := json.Unmarshal(w.Department.Raw, &d); err == nil {
			dept := d.model()
			u.Department = &dept
		}
	}
	return u
}

type wireFolder struct {
	ident
	Name             string    `json:"name"`
	Parent           ref       `json:"parent"`
	Owner            ref       `json:"owner"`
	DepartmentAccess refList   `json:"departmentAccess"`
	SharedWith       refList   `json:"sharedWith"`
	HasAccess        *bool     `json:"hasAccess"`
	CanViewContent   *bool     `json:"canViewContent"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (w *wireFolder) model() models.Folder {
	return models.Folder{
		ID:               w.value(),
		Name:             w.Name,
		ParentID:         w.Parent.ptr(),
		OwnerID:          w.Owner.ID,
		DepartmentAccess: w.DepartmentAccess.ids(),
		SharedWith:       w.SharedWith.ids(),
		HasAccess:        w.HasAccess,
		CanViewContent:   w.CanViewContent,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

type wirePermissions struct {
	Read   refList `json:"read"`
	Write  refList `json:"write"`
	Delete refList `json:"delete"`
}

type wireDocument struct {
	ident
	Name         string           `json:"name"`
	OriginalName string           `json:"originalName"`
	MimeType     string           `json:"mimeType"`
	Size         int64            `json:"size"`
	Folder       ref              `json:"folder"`
	Tags         refList          `json:"tags"`
	Owner        ref              `json:"owner"`
	IsStarred    bool             `json:"isStarred"`
	SharedWith   refList          `json:"sharedWith"`
	Permissions  *wirePermissions `json:"permissions"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func (w *wireDocument) model() models.Document {
	d := models.Document{
		ID:           w.value(),
		Name:         w.Name,
		OriginalName: w.OriginalName,
		MimeType:     w.MimeType,
		Size:         w.Size,
		FolderID:     w.Folder.ptr(),
		TagIDs:       w.Tags.ids(),
		OwnerID:      w.Owner.ID,
		IsStarred:    w.IsStarred,
		SharedWith:   w.SharedWith.ids(),
		Permissions:  models.Permissions{Read: []string{}, Write: []string{}, Delete: []string{}},
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	if w.Permissions != nil {
		d.Permissions = models.Permissions{
			Read:   w.Permissions.Read.ids(),
			Write:  w.Permissions.Write.ids(),
			Delete: w.Permissions.Delete.ids(),
		}
	}
	return d
}

type wireTag struct {
	ident
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Owner     ref       `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *wireTag) model() models.Tag {
	return models.Tag{
		ID:        w.value(),
		Name:      w.Name,
		Color:     w.Color,
		OwnerID:   w.Owner.ID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// convert maps a slice of wire records to models
func convert[W any, M any](in []W, fn func(*W) M) []M {
	out := make([]M, 0, len(in))
	for i := range in {
		out = append(out, fn(&in[i]))
	}
	return out
}
