package user

import (
	"time"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleAdmin
}

// Account is the read surface of a user as seen by sessions and the admin roster.
// JobsCount is filled in by whoever projects the roster.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	JoinDate  time.Time `json:"joinDate"`
	JobsCount int       `json:"jobsCount"`
}

// Session is the identity context of the current user. A zero Session is anonymous.
type Session struct {
	Token string   `json:"-"`
	User  *Account `json:"user"`
}

func (s Session) Authenticated() bool {
	return s.User != nil
}

func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

func HasRole(s Session, role Role) bool {
	return s.Authenticated() && s.Role() == role
}
