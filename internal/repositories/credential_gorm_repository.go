package repositories

import (
	"context"

	"stagestyle/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMCredentialRepository is a GORM implementation of CredentialRepository.
type GORMCredentialRepository struct {
	db *gorm.DB
}

func NewGORMCredentialRepository(db *gorm.DB) *GORMCredentialRepository {
	return &GORMCredentialRepository{db: db}
}

func (r *GORMCredentialRepository) Create(ctx context.Context, credential *models.Credential) error {
	if credential.UID == "" {
		credential.UID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(credential).Error; err != nil {
		return errors.Wrap(err, "failed to create credential")
	}
	return nil
}

func (r *GORMCredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var credential models.Credential
	if err := r.db.WithContext(ctx).First(&credential, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "credential with email %s", email)
		}
		return nil, errors.Wrapf(err, "failed to get credential by email %s", email)
	}
	return &credential, nil
}

func (r *GORMCredentialRepository) Delete(ctx context.Context, uid string) error {
	res := r.db.WithContext(ctx).Delete(&models.Credential{}, "uid = ?", uid)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete credential")
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "credential %s", uid)
	}
	return nil
}
