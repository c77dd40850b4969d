package sharing

import "docshare/internal/domain/models"

// DepartmentShare is the full set of departments a folder is shared with
type DepartmentShare struct {
	Departments []string `json:"departments"`
}

// UserShare is the full set of users a folder is shared with
type UserShare struct {
	UserIDs []string `json:"userIds"`
}

// FolderDepartments reads the department selection of a folder
func FolderDepartments(f *models.Folder) DepartmentShare {
	return DepartmentShare{Departments: Dedupe(f.DepartmentAccess)}
}

// FolderUsers reads the user selection of a folder
func FolderUsers(f *models.Folder) UserShare {
	return UserShare{UserIDs: Dedupe(f.SharedWith)}
}

// Candidates lists the users a resource can be shared with; the owner is excluded
func Candidates(users []models.User, ownerID string) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID == ownerID {
			continue
		}
		out = append(out, u)
	}
	return out
}
