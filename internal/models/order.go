package models

import "time"

const (
	// GuestUser is recorded when an order is placed without naming a user.
	GuestUser = "invitado"

	OrderStatusPending    = "pendiente"
	OrderStatusProcessing = "procesando"
	OrderStatusShipped    = "enviado"
	OrderStatusDelivered  = "entregado"
	OrderStatusCancelled  = "cancelado"
)

// OrderStatuses lists every status an order may hold.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsOrderStatus reports whether s is a known order status.
func IsOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Order represents a customer order. Item contents are stored as received.
type Order struct {
	ID        string    `json:"id" firestore:"-" gorm:"primaryKey;type:varchar(128)"`
	User      string    `json:"user" firestore:"user" gorm:"type:varchar(255)"`
	Items     []any     `json:"items" firestore:"items" gorm:"serializer:json;type:text"`
	Total     float64   `json:"total" firestore:"total"`
	Date      time.Time `json:"date" firestore:"date"`
	Status    string    `json:"status" firestore:"status" gorm:"type:varchar(32)"` // pendiente, procesando, enviado, entregado, cancelado
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" gorm:"autoCreateTime:false;index"`
}

func (Order) TableName() string { return "orders" }

// OrderCreatedEvent is published after an order is stored.
type OrderCreatedEvent struct {
	OrderID   string    `json:"orderId"`
	User      string    `json:"user"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	Items     int       `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewOrderCreatedEvent summarizes o for consumers.
func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:   o.ID,
		User:      o.User,
		Total:     o.Total,
		Status:    o.Status,
		Items:     len(o.Items),
		CreatedAt: o.CreatedAt,
	}
}
