package repositories

import (
	"context"

	"stagestyle/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProductsCollection is the Firestore collection holding products.
const ProductsCollection = "productos"

// FirestoreProductRepository stores products as Firestore documents.
type FirestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) *FirestoreProductRepository {
	return &FirestoreProductRepository{client: client}
}

func (r *FirestoreProductRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(ProductsCollection)
}

func (r *FirestoreProductRepository) GetAll(ctx context.Context, category string) ([]models.Product, error) {
	query := r.collection().Query
	if category != "" {
		query = query.Where("category", "==", category)
	}
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get products")
	}
	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		var p models.Product
		if err := doc.DataTo(&p); err != nil {
			return nil, errors.Wrapf(err, "failed to decode product %s", doc.Ref.ID)
		}
		p.ID = doc.Ref.ID
		products = append(products, p)
	}
	return products, nil
}

func (r *FirestoreProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.Wrapf(ErrNotFound, "product with ID %s", id)
		}
		return nil, errors.Wrapf(err, "failed to get product by ID %s", id)
	}
	var p models.Product
	if err := doc.DataTo(&p); err != nil {
		return nil, errors.Wrapf(err, "failed to decode product %s", id)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// Create writes the product under its own ID, or under a generated document ID.
func (r *FirestoreProductRepository) Create(ctx context.Context, product *models.Product) error {
	var ref *firestore.DocumentRef
	if product.ID != "" {
		ref = r.collection().Doc(product.ID)
	} else {
		ref = r.collection().NewDoc()
		product.ID = ref.ID
	}
	if _, err := ref.Set(ctx, product); err != nil {
		return errors.Wrap(err, "failed to create product")
	}
	return nil
}

func (r *FirestoreProductRepository) Update(ctx context.Context, id string, patch *models.ProductPatch) error {
	fields := patch.Fields()
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if _, err := r.collection().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.Wrapf(ErrNotFound, "product with ID %s for update", id)
		}
		return errors.Wrap(err, "failed to update product")
	}
	return nil
}

func (r *FirestoreProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.Wrapf(ErrNotFound, "product with ID %s for deletion", id)
		}
		return errors.Wrap(err, "failed to delete product")
	}
	return nil
}

func (r *FirestoreProductRepository) ExistsByField(ctx context.Context, field, value, excludeID string) (bool, error) {
	if _, ok := productColumns[field]; !ok {
		return false, errors.Errorf("unsupported product field %q", field)
	}
	// Document IDs are not stored as a field on every document.
	if field == ProductFieldID {
		if value == excludeID {
			return false, nil
		}
		_, err := r.collection().Doc(value).Get(ctx)
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrapf(err, "failed to look up product %s", value)
		}
		return true, nil
	}
	query := r.collection().Where(field, "==", value)
	if excludeID != "" {
		query = query.Where(firestore.DocumentID, "!=", excludeID)
	}
	docs, err := query.Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up products by %s", field)
	}
	return len(docs) > 0, nil
}
