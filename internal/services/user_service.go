package services

import (
	"context"
	"strings"
	"time"

	"stagestyle/internal/identity"
	"stagestyle/internal/models"
	"stagestyle/internal/repositories"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CreateUserRequest is the body of an account creation request.
type CreateUserRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Telefono string `json:"telefono"`
	Region   string `json:"region"`
	Comuna   string `json:"comuna"`
	Role     string `json:"role" validate:"omitempty,oneof=Administrador Vendedor Cliente"`
}

// UserService creates accounts in the identity provider and the user store together.
type UserService struct {
	userRepo repositories.UserRepository
	provider identity.Provider
}

func NewUserService(userRepo repositories.UserRepository, provider identity.Provider) *UserService {
	return &UserService{userRepo: userRepo, provider: provider}
}

// CreateUser registers the login with the identity provider, then stores the account under
// the returned subject id. The login is removed again if the account cannot be stored.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	uid, err := s.provider.CreateAccount(ctx, identity.Credentials{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Nombre,
	})
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	user := &models.User{
		ID:        uid,
		Nombre:    req.Nombre,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Telefono:  req.Telefono,
		Region:    req.Region,
		Comuna:    req.Comuna,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if rollbackErr := s.provider.DeleteAccount(ctx, uid); rollbackErr != nil {
			log.WithError(rollbackErr).WithField("uid", uid).Error("Failed to roll back identity after account store failure")
		}
		return nil, errors.Wrap(err, "failed to store user account")
	}

	log.WithFields(log.Fields{"uid": uid, "role": role}).Info("User created")
	return user, nil
}

// ListUsers returns every stored account.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// BootstrapAdmin creates an Administrador account for email unless one is already stored.
// It reports whether an account was created.
func (s *UserService) BootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}
	if _, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email))); err == nil {
		return false, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return false, errors.Wrap(err, "failed to look up admin account")
	}

	_, err := s.CreateUser(ctx, CreateUserRequest{
		Nombre:   "Administrador",
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
