package services_test

import (
	"context"
	"testing"

	"stagestyle/internal/models"
	"stagestyle/internal/repositories"
	"stagestyle/internal/services"
	"stagestyle/internal/validation"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(event models.OrderCreatedEvent) error {
	return m.Called(event).Error(0)
}

func TestOrderService_CreateOrder_Publishes(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockOrderRepository()
	publisher := new(MockPublisher)
	service := services.NewOrderService(repo, publisher)

	publisher.On("PublishOrderCreated", mock.MatchedBy(func(e models.OrderCreatedEvent) bool {
		return e.User == models.GuestUser && e.Items == 1 && e.Total == 10
	})).Return(nil).Once()

	order, err := service.CreateOrder(ctx, validation.Payload{"items": []any{map[string]any{"sku": "A"}}, "total": 10.0})

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockOrderRepository()
	publisher := new(MockPublisher)
	service := services.NewOrderService(repo, publisher)

	publisher.On("PublishOrderCreated", mock.Anything).Return(errors.New("channel closed")).Once()

	order, err := service.CreateOrder(ctx, validation.Payload{"items": []any{"x"}})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	service := services.NewOrderService(repositories.NewMockOrderRepository(), nil)

	_, err := service.CreateOrder(context.Background(), validation.Payload{"items": []any{}})

	reason, ok := validation.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, validation.ReasonCartEmpty, reason)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order, err := service.CreateOrder(ctx, validation.Payload{"items": []any{"x"}})
	require.NoError(t, err)

	updated, err := service.UpdateOrderStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	_, err = service.UpdateOrderStatus(ctx, order.ID, "lost")
	assert.True(t, errors.Is(err, services.ErrInvalidOrderStatus))

	_, err = service.UpdateOrderStatus(ctx, "missing", models.OrderStatusShipped)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
