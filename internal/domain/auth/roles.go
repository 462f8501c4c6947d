package auth

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// UserContext is the authenticated identity threaded through request contexts.
type UserContext struct {
	UserID     string
	EmployeeID string
	Role       string
}

func (u UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}
