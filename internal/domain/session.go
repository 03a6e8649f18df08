package domain

// Role of the signed-in user
type Role string

const (
	RoleUser  Role = "USER"
	RoleHost  Role = "HOST"
	RoleAdmin Role = "ADMIN"
)

// Session explicit auth context passed into data loaders and gateway calls
type Session struct {
	ID          string // stable key for per-session state (notifications, fences)
	UserID      string
	Role        Role
	AccessToken string
}

// IsAuthenticated returns true if the session carries a token
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

// CanManageBookings hosts and admins may change booking status
func (s Session) CanManageBookings() bool {
	return s.Role == RoleHost || s.Role == RoleAdmin
}
