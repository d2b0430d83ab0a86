package repositories

import (
	"context"
	"sync"

	"stagestyle/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MockCredentialRepository is an in-memory implementation of CredentialRepository.
type MockCredentialRepository struct {
	byUID map[string]models.Credential
	mu    sync.RWMutex
}

func NewMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{byUID: make(map[string]models.Credential)}
}

func (r *MockCredentialRepository) Create(_ context.Context, credential *models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.byUID {
		if c.Email == credential.Email {
			return errors.Errorf("credential for %s already exists", credential.Email)
		}
	}
	if credential.UID == "" {
		credential.UID = uuid.New().String()
	}
	r.byUID[credential.UID] = *credential
	return nil
}

func (r *MockCredentialRepository) GetByEmail(_ context.Context, email string) (*models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byUID {
		if c.Email == email {
			credential := c
			return &credential, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "credential with email %s", email)
}

func (r *MockCredentialRepository) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUID[uid]; !ok {
		return errors.Wrapf(ErrNotFound, "credential %s", uid)
	}
	delete(r.byUID, uid)
	return nil
}
