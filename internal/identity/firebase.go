package identity

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// FirebaseAuth is the subset of the Firebase Admin auth client used here.
type FirebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

// FirebaseProvider delegates identities to Firebase Authentication.
type FirebaseProvider struct {
	client FirebaseAuth
}

func NewFirebaseProvider(client FirebaseAuth) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	decoded, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", errors.Wrap(ErrInvalidToken, err.Error())
	}
	return decoded.UID, nil
}

func (p *FirebaseProvider) CreateAccount(ctx context.Context, creds Credentials) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(creds.Email).
		Password(creds.Password).
		DisplayName(creds.DisplayName)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", errors.Wrapf(ErrEmailTaken, "%s", creds.Email)
		}
		return "", errors.Wrap(err, "failed to create firebase user")
	}
	return record.UID, nil
}

func (p *FirebaseProvider) DeleteAccount(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		return errors.Wrapf(err, "failed to delete firebase user %s", uid)
	}
	return nil
}
