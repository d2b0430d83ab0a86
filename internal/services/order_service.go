package services

import (
	"context"

	"stagestyle/internal/models"
	"stagestyle/internal/repositories"
	"stagestyle/internal/validation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// OrderEventPublisher announces new orders to other systems.
type OrderEventPublisher interface {
	PublishOrderCreated(event models.OrderCreatedEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	validator *validation.OrderValidator
	publisher OrderEventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		validator: validation.NewOrderValidator(),
		publisher: publisher,
	}
}

// ListOrders returns all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// CreateOrder validates and stores an order, then publishes an order.created event.
// Publication failures are logged and do not fail the order.
func (s *OrderService) CreateOrder(ctx context.Context, payload validation.Payload) (*models.Order, error) {
	order, err := s.validator.ValidateCreate(payload)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order in repository")
	}

	if s.publisher == nil {
		log.WithField("order_id", order.ID).Debug("No event publisher configured. Skipping order.created")
		return order, nil
	}
	if err := s.publisher.PublishOrderCreated(models.NewOrderCreatedEvent(order)); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Warn("Failed to publish order created event")
	} else {
		log.WithField("order_id", order.ID).Info("Published order created event")
	}
	return order, nil
}

// UpdateOrderStatus moves an order to status and returns the stored result.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.IsOrderStatus(status) {
		return nil, errors.Wrapf(ErrInvalidOrderStatus, "%q", status)
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, id)
}
