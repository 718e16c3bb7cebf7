package types

// Roles stored in the identity provider's user metadata
const (
	RoleStudent = "student"
	RoleOwner   = "owner"
	RoleHelper  = "maushi"
	RoleAdmin   = "admin"
)

// Session is the authenticated caller, resolved once per request.
type Session struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// CanonicalRole folds provider aliases into the roles above.
func CanonicalRole(role string) string {
	switch role {
	case "helper", "maid", RoleHelper:
		return RoleHelper
	case RoleOwner, "landlord":
		return RoleOwner
	case RoleAdmin:
		return RoleAdmin
	case RoleStudent, "tenant":
		return RoleStudent
	}
	return ""
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
