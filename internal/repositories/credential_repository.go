package repositories

import (
	"context"

	"stagestyle/internal/models"
)

// CredentialRepository stores logins for the built-in identity provider.
type CredentialRepository interface {
	Create(ctx context.Context, credential *models.Credential) error
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	Delete(ctx context.Context, uid string) error
}
