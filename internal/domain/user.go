package domain

import "time"

// UserRole distinguishes end-users from support agents.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAgent UserRole = "AGENT"
)

// User is the shared account model. End-users submit tickets; agents
// triage them through this portal.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAgent is the single role predicate shared by the agent gate and the
// login flow.
func (u *User) IsAgent() bool {
	return u != nil && u.Role == UserRoleAgent
}
