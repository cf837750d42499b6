// Package carts manages per-user shopping carts.
package carts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/usmm07/foodcourt/internal/domain/cart"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
	"github.com/usmm07/foodcourt/pkg/logger"
)

// Summary is a cart view with its running total, priced at the current
// menu rates.
type Summary struct {
	Lines []cart.Line `json:"items"`
	Total string      `json:"total"`
}

// Service manages cart contents.
type Service struct {
	store storage.CartStore
	log   *logger.Logger
}

// New constructs a cart service.
func New(store storage.CartStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("carts")
	}
	return &Service{store: store, log: log}
}

// View returns the user's cart with a computed total.
func (s *Service) View(ctx context.Context, userID int64) (Summary, error) {
	lines, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	total := decimal.Zero
	for _, l := range lines {
		price, err := decimal.NewFromString(l.MenuItem.Price)
		if err != nil {
			return Summary{}, storage.WrapError("view", "cart", err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return Summary{Lines: lines, Total: total.StringFixed(2)}, nil
}

// Add puts an item into the cart, merging with an existing row for the
// same item.
func (s *Service) Add(ctx context.Context, in schema.InsertCart) (cart.Item, error) {
	if err := in.Validate(); err != nil {
		return cart.Item{}, err
	}
	return s.store.AddToCart(ctx, in)
}

// UpdateQuantity sets a cart row's quantity. A quantity of zero or less
// removes the row and returns its last state with quantity zero.
func (s *Service) UpdateQuantity(ctx context.Context, id int64, quantity int) (cart.Item, error) {
	if quantity <= 0 {
		removed, err := s.store.RemoveFromCart(ctx, id)
		if err != nil {
			return cart.Item{}, err
		}
		if !removed {
			return cart.Item{}, storage.ErrNotFound
		}
		return cart.Item{ID: id}, nil
	}
	return s.store.UpdateCartItem(ctx, id, quantity)
}

// Remove deletes one cart row; a miss is reported, not an error.
func (s *Service) Remove(ctx context.Context, id int64) (bool, error) {
	return s.store.RemoveFromCart(ctx, id)
}

// Clear empties the user's cart. Clearing an already empty cart succeeds.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.store.ClearCart(ctx, userID)
}
