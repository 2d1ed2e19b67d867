package identity

// Role is a user's role in the storefront
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleWorker      Role = "worker"
	RoleCustomer    Role = "customer"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleWorker, RoleCustomer:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User is a storefront user profile
type User struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phoneNumber,omitempty"`
	Address string `json:"address,omitempty"`
	Role    Role   `json:"role"`
	Active  bool   `json:"isActive"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageOrders reports whether the user may transition order statuses
func (u *User) CanManageOrders() bool {
	return u.Role == RoleAdmin || u.Role == RoleCoordinator
}
