package repositories

import (
	"context"

	"stagestyle/internal/models"
)

// UserRepository defines the interface for account data access.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create stores user under user.ID, which must already be set.
	Create(ctx context.Context, user *models.User) error
}
