package repositories

import (
	"context"

	"stagestyle/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productColumns whitelists the fields ExistsByField may filter on.
var productColumns = map[string]string{
	ProductFieldID:    "id",
	ProductFieldTitle: "title",
	ProductFieldImage: "image",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves products from the database, optionally filtered by category.
func (r *GORMProductRepository) GetAll(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	query := r.db.WithContext(ctx).Order("created_at, id")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get products")
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "product with ID %s", id)
		}
		return nil, errors.Wrapf(err, "failed to get product by ID %s", id)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return errors.Wrap(err, "failed to create product")
	}
	return nil
}

// Update loads the product, merges patch and saves it back.
func (r *GORMProductRepository) Update(ctx context.Context, id string, patch *models.ProductPatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrapf(ErrNotFound, "product with ID %s for update", id)
			}
			return errors.Wrapf(err, "failed to load product %s for update", id)
		}
		patch.Apply(&product)
		// Save writes zero values too, and runs the json serializer for sizes.
		if err := tx.Save(&product).Error; err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		return nil
	})
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete product")
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "product with ID %s for deletion", id)
	}
	return nil
}

// ExistsByField counts products other than excludeID whose field equals value.
func (r *GORMProductRepository) ExistsByField(ctx context.Context, field, value, excludeID string) (bool, error) {
	column, ok := productColumns[field]
	if !ok {
		return false, errors.Errorf("unsupported product field %q", field)
	}
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where(column+" = ?", value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "failed to look up products by %s", field)
	}
	return count > 0, nil
}
