package identity

import (
	"context"
	"strings"
	"time"

	"stagestyle/internal/models"
	"stagestyle/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider issues HS256 tokens for logins kept in a CredentialRepository.
type LocalProvider struct {
	credentials repositories.CredentialRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewLocalProvider(credentials repositories.CredentialRepository, jwtSecret string, tokenTTL time.Duration) *LocalProvider {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &LocalProvider{
		credentials: credentials,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

// CreateAccount hashes the password and stores a new credential.
func (p *LocalProvider) CreateAccount(ctx context.Context, creds Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if _, err := p.credentials.GetByEmail(ctx, email); err == nil {
		return "", errors.Wrapf(ErrEmailTaken, "%s", email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", errors.Wrap(err, "failed to look up credential")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	credential := &models.Credential{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  creds.DisplayName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.credentials.Create(ctx, credential); err != nil {
		return "", errors.Wrap(err, "failed to store credential")
	}
	return credential.UID, nil
}

func (p *LocalProvider) DeleteAccount(ctx context.Context, uid string) error {
	return p.credentials.Delete(ctx, uid)
}

// Login checks the password and returns a signed token.
func (p *LocalProvider) Login(ctx context.Context, email, password string) (string, error) {
	credential, err := p.credentials.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", errors.Wrap(err, "failed to look up credential")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return p.IssueToken(credential.UID)
}

// IssueToken signs a token for uid.
func (p *LocalProvider) IssueToken(uid string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uid,
		"exp":     now.Add(p.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(p.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate token")
	}
	return tokenString, nil
}

func (p *LocalProvider) VerifyToken(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.jwtSecret, nil
	})
	if err != nil {
		log.WithError(err).Debug("Token validation failed")
		return "", errors.Wrap(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	uid, ok := claims["user_id"].(string)
	if !ok || uid == "" {
		return "", errors.Wrap(ErrInvalidToken, "missing user_id claim")
	}
	return uid, nil
}
