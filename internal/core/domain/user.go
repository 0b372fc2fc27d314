package domain

import (
	"errors"
	"time"
)

const (
	RoleRunner  = "runner"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRoleMismatch = errors.New("account role does not match requested role")

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleRunner || role == RoleManager || role == RoleAdmin
}

// User models an account in the directory. Phone is the unique login handle.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
