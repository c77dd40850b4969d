package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload issued by the document backend.
// Older tokens carry the user id in "id" or "userId" instead of "sub".
type SessionClaims struct {
	jwt.RegisteredClaims
	LegacyID     string `json:"id,omitempty"`
	LegacyUserID string `json:"userId,omitempty"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Department   string `json:"department"`
}

// GetUserID returns the canonical user id from whichever claim carries it
func (c *SessionClaims) GetUserID() string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.LegacyUserID != "":
		return c.LegacyUserID
	default:
		return c.LegacyID
	}
}

// Viewer builds the caller identity for a verified token
func (c *SessionClaims) Viewer(token string) *Viewer {
	return &Viewer{
		UserID:       c.GetUserID(),
		Email:        c.Email,
		Role:         c.Role,
		DepartmentID: c.Department,
		Token:        token,
	}
}
