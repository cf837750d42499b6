package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
	"github.com/usmm07/foodcourt/internal/storage/memory"
)

func seedCart(t *testing.T, store *memory.Store) int64 {
	t.Helper()
	ctx := context.Background()

	u, err := store.CreateUser(ctx, schema.InsertUser{TelegramID: "1", FirstName: "A"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	cat, err := store.CreateCategory(ctx, schema.InsertCategory{Name: "Main"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := store.CreateMenuItem(ctx, schema.InsertMenuItem{CategoryID: cat.ID, Name: "Borsch", Price: "250.00"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := store.AddToCart(ctx, schema.InsertCart{UserID: u.ID, ItemID: item.ID, Quantity: 2}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	return u.ID
}

func TestPlaceOrderDefaultsAndHistory(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()
	uid := seedCart(t, store)

	o, items, err := svc.PlaceOrder(ctx, uid, order.CheckoutInput{})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if o.DeliveryType != order.DeliveryTypeDelivery || o.PaymentMethod != order.PaymentCash {
		t.Fatalf("defaults not applied: %+v", o)
	}
	if o.Status != order.StatusPending {
		t.Fatalf("status = %q, want pending", o.Status)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 frozen line, got %d", len(items))
	}

	history, err := svc.History(ctx, uid)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != o.ID {
		t.Fatalf("order missing from history: %+v", history)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, schema.InsertUser{TelegramID: "2", FirstName: "B"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, _, err = svc.PlaceOrder(ctx, u.ID, order.CheckoutInput{})
	if !errors.Is(err, storage.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrderRejectsUnknownEnums(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	uid := seedCart(t, store)

	_, _, err := svc.PlaceOrder(context.Background(), uid, order.CheckoutInput{DeliveryType: "drone", PaymentMethod: "iou"})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected both enum fields flagged, got %+v", ve.Fields)
	}
}

func TestUpdateStatus(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()
	uid := seedCart(t, store)

	o, _, err := svc.PlaceOrder(ctx, uid, order.CheckoutInput{})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	// Any recognised state is reachable directly, including terminal ones.
	got, err := svc.UpdateStatus(ctx, o.ID, order.StatusDelivered)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != order.StatusDelivered {
		t.Fatalf("status = %q, want delivered", got.Status)
	}

	if _, err := svc.UpdateStatus(ctx, o.ID, "archived"); err == nil {
		t.Fatalf("expected rejection of unknown status")
	}
	if _, err := svc.UpdateStatus(ctx, 9999, order.StatusReady); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemsRequiresOrder(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)

	if _, err := svc.Items(context.Background(), 404); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
