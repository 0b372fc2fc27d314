package ports

import (
	"context"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// AuthService implements login and credential management.
type AuthService interface {
	// Login verifies phone/password and that the account's role matches the
	// requested one, returning a signed token and the account.
	Login(ctx context.Context, phone, password, role string) (string, *domain.User, error)
	ResetPassword(ctx context.Context, phone, newPassword string) error
}

// UserService covers the directory operations: admin-driven account creation
// and the listings the client renders.
type UserService interface {
	CreateUser(ctx context.Context, name, phone, password, role string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListManagers(ctx context.Context) ([]*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
