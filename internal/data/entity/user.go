package entity

import (
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// ReservedUsername would shadow the /users/me endpoint and is rejected
// everywhere a username is accepted.
const ReservedUsername = "me"

type User struct {
	Base
	Username    string     `db:"username"`
	Email       string     `db:"email"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Bio         string     `db:"bio"`
	Role        UserRole   `db:"role"`
	IsSuperuser bool       `db:"is_superuser"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

// IsAdmin reports whether the user may manage catalog data and other users.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// IsModerator reports whether the user may edit other users' reviews and
// comments.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.IsSuperuser
}

func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
