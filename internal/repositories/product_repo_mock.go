package repositories

import (
	"context"
	"sort"
	"sync"

	"stagestyle/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products, oldest first.
func (r *MockProductRepository) GetAll(_ context.Context, category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if category != "" && p.Category != category {
			continue
		}
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		if productList[i].CreatedAt.Equal(productList[j].CreatedAt) {
			return productList[i].ID < productList[j].ID
		}
		return productList[i].CreatedAt.Before(productList[j].CreatedAt)
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "product with ID %s", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update merges patch into an existing product.
func (r *MockProductRepository) Update(_ context.Context, id string, patch *models.ProductPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return errors.Wrapf(ErrNotFound, "product with ID %s for update", id)
	}
	patch.Apply(&product)
	r.products[id] = product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errors.Wrapf(ErrNotFound, "product with ID %s for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// ExistsByField reports whether another product already holds value in field.
func (r *MockProductRepository) ExistsByField(_ context.Context, field, value, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, p := range r.products {
		if id == excludeID {
			continue
		}
		var got string
		switch field {
		case ProductFieldID:
			got = p.ID
		case ProductFieldTitle:
			got = p.Title
		case ProductFieldImage:
			got = p.Image
		default:
			return false, errors.Errorf("unsupported product field %q", field)
		}
		if got == value {
			return true, nil
		}
	}
	return false, nil
}
