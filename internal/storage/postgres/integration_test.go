package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"

	_ "github.com/lib/pq"
)

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := New(db)

	u, err := store.CreateUser(ctx, schema.InsertUser{TelegramID: "it-123", FirstName: "Ivan"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := store.CreateUser(ctx, schema.InsertUser{TelegramID: "it-123", FirstName: "Dup"}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate telegram id, got %v", err)
	}

	cat, err := store.CreateCategory(ctx, schema.InsertCategory{Name: "it-main"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := store.CreateMenuItem(ctx, schema.InsertMenuItem{
		CategoryID:  cat.ID,
		Name:        "it-borsch",
		Price:       "250.00",
		Ingredients: []string{"beet", "cabbage"},
	})
	if err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	if len(item.Ingredients) != 2 {
		t.Fatalf("ingredients round trip failed: %v", item.Ingredients)
	}

	first, err := store.AddToCart(ctx, schema.InsertCart{UserID: u.ID, ItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	second, err := store.AddToCart(ctx, schema.InsertCart{UserID: u.ID, ItemID: item.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if second.ID != first.ID || second.Quantity != 5 {
		t.Fatalf("upsert did not merge: first=%+v second=%+v", first, second)
	}

	o, items, err := store.Checkout(ctx, u.ID, order.CheckoutInput{DeliveryType: "pickup", PaymentMethod: "cash"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.Status != order.StatusPending || o.TotalAmount != "1250.00" || len(items) != 1 {
		t.Fatalf("unexpected checkout result: order=%+v items=%d", o, len(items))
	}

	lines, err := store.GetCart(ctx, u.ID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart not cleared after checkout")
	}

	if _, _, err := store.Checkout(ctx, u.ID, order.CheckoutInput{DeliveryType: "pickup", PaymentMethod: "cash"}); !errors.Is(err, storage.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	got, err := store.UpdateOrderStatus(ctx, o.ID, order.StatusDelivered)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != order.StatusDelivered || !got.CreatedAt.Equal(o.CreatedAt) {
		t.Fatalf("status update corrupted order: %+v", got)
	}

	deleted, err := store.DeleteCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if !deleted {
		t.Fatalf("delete category reported false")
	}
	kept, err := store.GetMenuItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("menu item should survive category delete: %v", err)
	}
	if kept.CategoryID != cat.ID {
		t.Fatalf("surviving item rewrote its category id: %d", kept.CategoryID)
	}
}
