package models

// Identity is the authenticated user's server-confirmed profile from GET /me.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	RoleID string `json:"role_id"`
	Image  string `json:"image,omitempty"`
}

const RoleAdmin = "admin"

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuditEntry struct {
	CreatedAt string `json:"created_at"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Note      string `json:"note"`
}
