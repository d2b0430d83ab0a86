package rabbitmq

import (
	"encoding/json"
	"testing"
	"time"

	"stagestyle/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAcknowledger struct {
	mock.Mock
}

func (m *mockAcknowledger) Ack(multiple bool) error {
	return m.Called(multiple).Error(0)
}

func (m *mockAcknowledger) Nack(multiple, requeue bool) error {
	return m.Called(multiple, requeue).Error(0)
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.OrderCreatedEvent{
		OrderID:   "o-1",
		User:      models.GuestUser,
		Total:     10,
		Status:    models.OrderStatusPending,
		Items:     2,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return body
}

func TestSettle_AcksHandledEvent(t *testing.T) {
	ack := new(mockAcknowledger)
	ack.On("Ack", false).Return(nil).Once()

	var got models.OrderCreatedEvent
	settle(ack, 1, eventBody(t), func(e models.OrderCreatedEvent) error {
		got = e
		return nil
	})

	assert.Equal(t, "o-1", got.OrderID)
	assert.Equal(t, 2, got.Items)
	ack.AssertExpectations(t)
}

func TestSettle_RequeuesOnHandlerError(t *testing.T) {
	ack := new(mockAcknowledger)
	ack.On("Nack", false, true).Return(nil).Once()

	settle(ack, 2, eventBody(t), func(models.OrderCreatedEvent) error {
		return errors.New("mailer down")
	})

	ack.AssertExpectations(t)
}

func TestSettle_DropsUndecodableMessage(t *testing.T) {
	ack := new(mockAcknowledger)
	ack.On("Nack", false, false).Return(nil).Once()
	called := false

	settle(ack, 3, []byte("not json"), func(models.OrderCreatedEvent) error {
		called = true
		return nil
	})

	assert.False(t, called)
	ack.AssertExpectations(t)
}

func TestLogOrderEvent(t *testing.T) {
	assert.NoError(t, LogOrderEvent(models.OrderCreatedEvent{OrderID: "o-1"}))
}
