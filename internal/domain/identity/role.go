package identity

// Role is an ordered permission level. Higher roles hold every
// capability of the roles below them.
type Role string

const (
	RoleClient   Role = "Client"
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
	RoleCEO      Role = "CEO"
)

var roleLevels = map[Role]int{
	RoleClient:   1,
	RoleEmployee: 2,
	RoleManager:  3,
	RoleAdmin:    4,
	RoleCEO:      5,
}

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Level returns the ordered permission level; unknown roles rank below Client
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether this role holds the permissions of min
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

// IsStaff reports whether the role belongs to back-office personnel
func (r Role) IsStaff() bool {
	return r.AtLeast(RoleEmployee)
}

// IsElevated reports whether the role overrides ownership checks,
// e.g. cancelling another customer's order
func (r Role) IsElevated() bool {
	return r.AtLeast(RoleAdmin)
}
