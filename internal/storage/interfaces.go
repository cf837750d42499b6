package storage

import (
	"context"

	"github.com/usmm07/foodcourt/internal/domain/cart"
	"github.com/usmm07/foodcourt/internal/domain/catalog"
	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/domain/user"
	"github.com/usmm07/foodcourt/internal/schema"
)

// UserStore persists Telegram-backed identities.
type UserStore interface {
	// GetUser returns the user with the given id or ErrNotFound.
	GetUser(ctx context.Context, id int64) (user.User, error)
	// GetUserByTelegramID returns the user with the given telegram id or
	// ErrNotFound.
	GetUserByTelegramID(ctx context.Context, telegramID string) (user.User, error)
	// CreateUser inserts a new user. A duplicate telegram id yields
	// ErrConflict.
	CreateUser(ctx context.Context, in schema.InsertUser) (user.User, error)
}

// CatalogStore persists categories and menu items.
type CatalogStore interface {
	// ListCategories returns every category ordered by sort order
	// ascending, ties broken by id.
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	// GetCategory returns one category or ErrNotFound.
	GetCategory(ctx context.Context, id int64) (catalog.Category, error)
	// CreateCategory inserts a new category.
	CreateCategory(ctx context.Context, in schema.InsertCategory) (catalog.Category, error)
	// UpdateCategory applies the non-nil fields of upd. Returns
	// ErrNotFound when the category does not exist.
	UpdateCategory(ctx context.Context, id int64, upd catalog.CategoryUpdate) (catalog.Category, error)
	// DeleteCategory removes a category. The boolean reports whether a
	// row was deleted; a miss is not an error. Items are neither cascaded
	// nor blocked: they stay behind with a dangling category id.
	DeleteCategory(ctx context.Context, id int64) (bool, error)

	// ListMenuItems returns menu items ordered by sort order ascending,
	// ties broken by id. categoryID 0 means all categories.
	ListMenuItems(ctx context.Context, categoryID int64) ([]catalog.MenuItem, error)
	// GetMenuItem returns one menu item or ErrNotFound.
	GetMenuItem(ctx context.Context, id int64) (catalog.MenuItem, error)
	// CreateMenuItem inserts a new menu item. An unknown category yields
	// ErrConflict.
	CreateMenuItem(ctx context.Context, in schema.InsertMenuItem) (catalog.MenuItem, error)
	// UpdateMenuItem applies the non-nil fields of upd. Returns
	// ErrNotFound when the item does not exist.
	UpdateMenuItem(ctx context.Context, id int64, upd catalog.MenuItemUpdate) (catalog.MenuItem, error)
	// DeleteMenuItem removes a menu item. The boolean reports whether a
	// row was deleted; a miss is not an error.
	DeleteMenuItem(ctx context.Context, id int64) (bool, error)
}

// CartStore persists per-user shopping carts.
type CartStore interface {
	// GetCart returns the user's cart rows joined with their menu items,
	// oldest row first. An empty cart is an empty slice, not an error.
	GetCart(ctx context.Context, userID int64) ([]cart.Line, error)
	// AddToCart inserts a cart row, or atomically increments the quantity
	// of the existing (user, item) row. The returned item reflects the
	// merged state.
	AddToCart(ctx context.Context, in schema.InsertCart) (cart.Item, error)
	// UpdateCartItem sets the quantity of one cart row. Returns
	// ErrNotFound when the row does not exist.
	UpdateCartItem(ctx context.Context, id int64, quantity int) (cart.Item, error)
	// RemoveFromCart deletes one cart row. The boolean reports whether a
	// row was deleted; a miss is not an error.
	RemoveFromCart(ctx context.Context, id int64) (bool, error)
	// ClearCart removes every row of the user's cart. Clearing an empty
	// cart succeeds.
	ClearCart(ctx context.Context, userID int64) error
}

// OrderStore persists orders and their frozen line items.
type OrderStore interface {
	// ListOrders returns the user's orders in creation order, ties
	// broken by id.
	ListOrders(ctx context.Context, userID int64) ([]order.Order, error)
	// GetOrder returns one order or ErrNotFound.
	GetOrder(ctx context.Context, id int64) (order.Order, error)
	// CreateOrder inserts an order directly. Status is forced to pending
	// regardless of the caller.
	CreateOrder(ctx context.Context, in schema.InsertOrder) (order.Order, error)
	// UpdateOrderStatus sets the status and refreshes updatedAt. CreatedAt
	// never changes. Returns ErrNotFound when the order does not exist.
	UpdateOrderStatus(ctx context.Context, id int64, status order.Status) (order.Order, error)
	// ListOrderItems returns the frozen lines of one order joined with
	// the current menu item metadata.
	ListOrderItems(ctx context.Context, orderID int64) ([]order.Line, error)
	// CreateOrderItem inserts one frozen line. An unknown order yields
	// ErrConflict.
	CreateOrderItem(ctx context.Context, in schema.InsertOrderItem) (order.Item, error)

	// Checkout converts the user's cart into an order inside a single
	// transaction: it reads the cart with current prices, computes the
	// total, creates a pending order, freezes every line, and clears the
	// cart. Either all of it happens or none of it. An empty cart yields
	// ErrEmptyCart.
	Checkout(ctx context.Context, userID int64, in order.CheckoutInput) (order.Order, []order.Item, error)
}
