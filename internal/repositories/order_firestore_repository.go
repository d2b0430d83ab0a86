package repositories

import (
	"context"

	"stagestyle/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// OrdersCollection is the Firestore collection holding orders.
const OrdersCollection = "orders"

// FirestoreOrderRepository stores orders as Firestore documents.
type FirestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) *FirestoreOrderRepository {
	return &FirestoreOrderRepository{client: client}
}

func (r *FirestoreOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	docs, err := r.client.Collection(OrdersCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get orders")
	}
	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		var o models.Order
		if err := doc.DataTo(&o); err != nil {
			return nil, errors.Wrapf(err, "failed to decode order %s", doc.Ref.ID)
		}
		o.ID = doc.Ref.ID
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *FirestoreOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	doc, err := r.client.Collection(OrdersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.Wrapf(ErrNotFound, "order with ID %s", id)
		}
		return nil, errors.Wrapf(err, "failed to get order by ID %s", id)
	}
	var o models.Order
	if err := doc.DataTo(&o); err != nil {
		return nil, errors.Wrapf(err, "failed to decode order %s", id)
	}
	o.ID = doc.Ref.ID
	return &o, nil
}

func (r *FirestoreOrderRepository) Create(ctx context.Context, order *models.Order) error {
	ref := r.client.Collection(OrdersCollection).NewDoc()
	if order.ID != "" {
		ref = r.client.Collection(OrdersCollection).Doc(order.ID)
	}
	if _, err := ref.Set(ctx, order); err != nil {
		return errors.Wrap(err, "failed to create order")
	}
	order.ID = ref.ID
	return nil
}

func (r *FirestoreOrderRepository) UpdateStatus(ctx context.Context, id string, orderStatus string) error {
	_, err := r.client.Collection(OrdersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: orderStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.Wrapf(ErrNotFound, "order with ID %s for status update", id)
		}
		return errors.Wrap(err, "failed to update order status")
	}
	return nil
}

