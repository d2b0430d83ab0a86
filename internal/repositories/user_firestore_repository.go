package repositories

import (
	"context"

	"stagestyle/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UsersCollection is the Firestore collection holding accounts, keyed by subject id.
const UsersCollection = "users"

// FirestoreUserRepository stores accounts as Firestore documents.
type FirestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) *FirestoreUserRepository {
	return &FirestoreUserRepository{client: client}
}

func (r *FirestoreUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	docs, err := r.client.Collection(UsersCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get users")
	}
	return decodeUsers(docs)
}

func (r *FirestoreUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.client.Collection(UsersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.Wrapf(ErrNotFound, "user with ID %s", id)
		}
		return nil, errors.Wrapf(err, "failed to get user by ID %s", id)
	}
	var u models.User
	if err := doc.DataTo(&u); err != nil {
		return nil, errors.Wrapf(err, "failed to decode user %s", id)
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

func (r *FirestoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := r.client.Collection(UsersCollection).Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user by email %s", email)
	}
	if len(docs) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "user with email %s", email)
	}
	users, err := decodeUsers(docs)
	if err != nil {
		return nil, err
	}
	return &users[0], nil
}

func (r *FirestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID is required")
	}
	if _, err := r.client.Collection(UsersCollection).Doc(user.ID).Set(ctx, user); err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

func decodeUsers(docs []*firestore.DocumentSnapshot) ([]models.User, error) {
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var u models.User
		if err := doc.DataTo(&u); err != nil {
			return nil, errors.Wrapf(err, "failed to decode user %s", doc.Ref.ID)
		}
		u.ID = doc.Ref.ID
		users = append(users, u)
	}
	return users, nil
}
