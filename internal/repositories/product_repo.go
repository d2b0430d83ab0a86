package repositories

import (
	"context"

	"stagestyle/internal/models"
)

// Product fields that can be probed with ExistsByField.
const (
	ProductFieldID    = "id"
	ProductFieldTitle = "title"
	ProductFieldImage = "image"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product, or only those in category when it is not empty.
	GetAll(ctx context.Context, category string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Create stores product, assigning an ID when it has none.
	Create(ctx context.Context, product *models.Product) error
	// Update merges patch into the stored product.
	Update(ctx context.Context, id string, patch *models.ProductPatch) error
	Delete(ctx context.Context, id string) error
	// ExistsByField reports whether a product other than excludeID has field equal to value.
	ExistsByField(ctx context.Context, field, value, excludeID string) (bool, error)
}
