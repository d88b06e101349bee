package domain

import "time"

// UserRole controls what a user may do.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleMember  UserRole = "member"
)

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User is the domain model for accounts that tickets and tasks are
// assigned to.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanManageAssignments reports whether the role may assign work and read
// workload reports.
func (r UserRole) CanManageAssignments() bool {
	return r == UserRoleAdmin || r == UserRoleManager
}
