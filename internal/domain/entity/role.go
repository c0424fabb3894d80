package entity

// Role represents the authorization label attached to an account.
type Role string

const (
	// RoleUser is the default role assigned to every account on creation.
	RoleUser Role = "ROLE_USER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}
