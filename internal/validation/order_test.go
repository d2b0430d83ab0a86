package validation_test

import (
	"testing"
	"time"

	"stagestyle/internal/models"
	"stagestyle/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderValidator() *validation.OrderValidator {
	v := validation.NewOrderValidator()
	v.SetClock(func() time.Time { return fixedNow })
	return v
}

func TestOrderValidateCreate_Defaults(t *testing.T) {
	order, err := newOrderValidator().ValidateCreate(validation.Payload{
		"items": []any{map[string]any{"sku": "A"}},
		"total": 10.0,
	})

	require.NoError(t, err)
	assert.Equal(t, models.GuestUser, order.User)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 10.0, order.Total)
	assert.Equal(t, fixedNow, order.Date)
	assert.Equal(t, fixedNow, order.CreatedAt)
	assert.Len(t, order.Items, 1)
}

func TestOrderValidateCreate_KeepsSuppliedFields(t *testing.T) {
	order, err := newOrderValidator().ValidateCreate(validation.Payload{
		"items": []any{"x"},
		"user":  "ana@example.com",
		"total": "abc",
		"date":  "2025-01-02T03:04:05Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", order.User)
	assert.Equal(t, 0.0, order.Total)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), order.Date.UTC())
}

func TestOrderValidateCreate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload validation.Payload
		want    validation.Reason
	}{
		{"empty items", validation.Payload{"items": []any{}}, validation.ReasonCartEmpty},
		{"missing items", validation.Payload{"total": 5.0}, validation.ReasonCartEmpty},
		{"items not list", validation.Payload{"items": "sku"}, validation.ReasonItemsNotList},
		{"bad date", validation.Payload{"items": []any{1.0}, "date": "yesterday"}, validation.ReasonDateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newOrderValidator().ValidateCreate(tt.payload)
			assertReason(t, err, tt.want)
		})
	}
}
