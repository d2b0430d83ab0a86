package services

import (
	"context"

	"stagestyle/internal/models"
	"stagestyle/internal/repositories"
	"stagestyle/internal/validation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.ProductValidator
}

// NewProductService creates a new ProductService. The repository also serves as the
// catalog for uniqueness checks.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:      repo,
		validator: validation.NewProductValidator(repo),
	}
}

// ListProducts returns every product, or only those in category when it is non-empty.
func (s *ProductService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.repo.GetAll(ctx, category)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates the payload and stores the resulting product.
func (s *ProductService) CreateProduct(ctx context.Context, payload validation.Payload) (*models.Product, error) {
	product, err := s.validator.ValidateCreate(ctx, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	log.WithFields(log.Fields{"id": product.ID, "title": product.Title}).Info("Product created")
	return product, nil
}

// UpdateProduct merges the valid fields of payload into the product id.
// A missing product is reported before the payload is inspected.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, payload validation.Payload) (*models.ProductPatch, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	patch, err := s.validator.ValidateUpdate(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, errors.Wrapf(err, "failed to update product %s", id)
	}
	return patch, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
