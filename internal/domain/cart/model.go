package cart

import (
	"time"

	"github.com/usmm07/foodcourt/internal/domain/catalog"
)

// Item is one cart row. At most one row exists per (user, menu item) pair;
// adding an item already present increments the existing row.
type Item struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ItemID    int64     `json:"itemId"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Line is a cart row joined with the current state of its menu item. The
// menu item is live data, not a frozen copy; prices freeze only at checkout.
type Line struct {
	Item
	MenuItem catalog.MenuItem `json:"menuItem"`
}
