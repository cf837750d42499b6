// Package orders manages checkout and the order lifecycle.
package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
	"github.com/usmm07/foodcourt/pkg/logger"
)

// Service manages orders.
type Service struct {
	store storage.OrderStore
	log   *logger.Logger
}

// New constructs an order service.
func New(store storage.OrderStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	return &Service{store: store, log: log}
}

// History returns the user's orders in creation order.
func (s *Service) History(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.store.ListOrders(ctx, userID)
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id int64) (order.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// Items returns the frozen lines of one order. The order must exist.
func (s *Service) Items(ctx context.Context, orderID int64) ([]order.Line, error) {
	if _, err := s.store.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.store.ListOrderItems(ctx, orderID)
}

// PlaceOrder checks the user's cart out into a pending order. Delivery
// type defaults to delivery and payment method to cash when unset.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, in order.CheckoutInput) (order.Order, []order.Item, error) {
	if in.DeliveryType == "" {
		in.DeliveryType = order.DeliveryTypeDelivery
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = order.PaymentCash
	}
	if err := validateCheckout(in); err != nil {
		return order.Order{}, nil, err
	}

	o, items, err := s.store.Checkout(ctx, userID, in)
	if err != nil {
		return order.Order{}, nil, err
	}
	s.log.Infof("order %d placed by user %d, total %s", o.ID, userID, o.TotalAmount)
	return o, items, nil
}

// UpdateStatus moves an order to the given lifecycle state. Only
// membership in the known set is enforced; the kitchen staff may jump
// states or cancel at any point.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status order.Status) (order.Order, error) {
	if !status.Valid() {
		return order.Order{}, schema.NewValidationError("status", fmt.Sprintf("must be one of: %s", statusList()))
	}
	updated, err := s.store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return order.Order{}, err
	}
	s.log.Infof("order %d moved to %s", id, status)
	return updated, nil
}

func validateCheckout(in order.CheckoutInput) error {
	ve := &schema.ValidationError{}
	switch in.DeliveryType {
	case order.DeliveryTypeDelivery, order.DeliveryTypePickup:
	default:
		ve.Fields = append(ve.Fields, schema.FieldError{Field: "deliveryType", Message: "must be one of: delivery, pickup"})
	}
	switch in.PaymentMethod {
	case order.PaymentCash, order.PaymentCard, order.PaymentTelegramWallet:
	default:
		ve.Fields = append(ve.Fields, schema.FieldError{Field: "paymentMethod", Message: "must be one of: cash, card, telegram_wallet"})
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func statusList() string {
	parts := make([]string, 0, len(order.Statuses))
	for _, st := range order.Statuses {
		parts = append(parts, string(st))
	}
	return strings.Join(parts, ", ")
}
