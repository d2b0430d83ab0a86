package repositories

import (
	"context"

	"stagestyle/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CredentialsCollection holds logins of the built-in identity provider.
const CredentialsCollection = "credentials"

// FirestoreCredentialRepository stores credentials as Firestore documents keyed by uid.
type FirestoreCredentialRepository struct {
	client *firestore.Client
}

func NewFirestoreCredentialRepository(client *firestore.Client) *FirestoreCredentialRepository {
	return &FirestoreCredentialRepository{client: client}
}

func (r *FirestoreCredentialRepository) Create(ctx context.Context, credential *models.Credential) error {
	ref := r.client.Collection(CredentialsCollection).NewDoc()
	if credential.UID != "" {
		ref = r.client.Collection(CredentialsCollection).Doc(credential.UID)
	}
	credential.UID = ref.ID
	if _, err := ref.Create(ctx, credential); err != nil {
		return errors.Wrap(err, "failed to create credential")
	}
	return nil
}

func (r *FirestoreCredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	docs, err := r.client.Collection(CredentialsCollection).Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get credential by email %s", email)
	}
	if len(docs) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "credential with email %s", email)
	}
	var credential models.Credential
	if err := docs[0].DataTo(&credential); err != nil {
		return nil, errors.Wrap(err, "failed to decode credential")
	}
	credential.UID = docs[0].Ref.ID
	return &credential, nil
}

func (r *FirestoreCredentialRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.client.Collection(CredentialsCollection).Doc(uid).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.Wrapf(ErrNotFound, "credential %s", uid)
		}
		return errors.Wrap(err, "failed to delete credential")
	}
	return nil
}
