package ports

import (
	"context"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

// UserRepository defines persistence for directory accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	UpdatePassword(ctx context.Context, phone, passwordHash string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
