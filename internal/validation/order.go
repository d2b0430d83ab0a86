package validation

import (
	"time"

	"stagestyle/internal/models"
)

// OrderValidator decides whether an order payload may be stored.
type OrderValidator struct {
	now func() time.Time
}

func NewOrderValidator() *OrderValidator {
	return &OrderValidator{now: func() time.Time { return time.Now().UTC() }}
}

// SetClock replaces the time source used for timestamps.
func (v *OrderValidator) SetClock(now func() time.Time) { v.now = now }

// ValidateCreate requires a non-empty cart and fills in defaults. Item contents are not inspected.
func (v *OrderValidator) ValidateCreate(p Payload) (*models.Order, error) {
	raw, ok := p.get("items")
	if !ok {
		return nil, reject(ReasonCartEmpty)
	}
	items, isList := raw.([]any)
	if !isList {
		return nil, reject(ReasonItemsNotList)
	}
	if len(items) == 0 {
		return nil, reject(ReasonCartEmpty)
	}

	now := v.now()
	order := &models.Order{
		User:      models.GuestUser,
		Items:     items,
		Date:      now,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
	}
	if user, ok := p.get("user"); ok {
		if s, isText := user.(string); isText && s != "" {
			order.User = s
		}
	}
	if total, ok := p.get("total"); ok {
		// Non-numeric totals are stored as zero.
		order.Total, _ = toNumber(total)
	}
	if date, ok := p.get("date"); ok {
		s, isText := date.(string)
		if !isText {
			return nil, reject(ReasonDateInvalid)
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, reject(ReasonDateInvalid)
		}
		order.Date = parsed
	}
	return order, nil
}
