package order

import (
	"time"

	"github.com/usmm07/foodcourt/internal/domain/catalog"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every recognised lifecycle state.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is one of the recognised lifecycle states.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Delivery types.
const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

// Payment methods.
const (
	PaymentCash           = "cash"
	PaymentCard           = "card"
	PaymentTelegramWallet = "telegram_wallet"
)

// Order is an immutable snapshot of a completed checkout. CreatedAt never
// changes; UpdatedAt is refreshed on every status mutation.
type Order struct {
	ID                    int64      `json:"id"`
	UserID                int64      `json:"userId"`
	Status                Status     `json:"status"`
	TotalAmount           string     `json:"totalAmount"`
	DeliveryAddress       string     `json:"deliveryAddress,omitempty"`
	DeliveryType          string     `json:"deliveryType"`
	PaymentMethod         string     `json:"paymentMethod"`
	Notes                 string     `json:"notes,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// Item freezes one cart line at checkout time. Later menu item price edits
// never alter it.
type Item struct {
	ID       int64  `json:"id"`
	OrderID  int64  `json:"orderId"`
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Notes    string `json:"notes,omitempty"`
}

// Line is an order item joined with the current menu item metadata for
// display. Quantity and price come from the frozen snapshot.
type Line struct {
	Item
	MenuItem catalog.MenuItem `json:"menuItem"`
}

// CheckoutInput carries the caller-supplied half of an order; totals and
// items come from the cart inside the checkout transaction.
type CheckoutInput struct {
	DeliveryType          string     `json:"deliveryType"`
	PaymentMethod         string     `json:"paymentMethod"`
	DeliveryAddress       string     `json:"deliveryAddress"`
	Notes                 string     `json:"notes"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
}
