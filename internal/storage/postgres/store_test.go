package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/usmm07/foodcourt/internal/domain/catalog"
	"github.com/usmm07/foodcourt/internal/domain/order"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestAddToCartUpsertIncrementsQuantity(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO carts .*ON CONFLICT \(user_id, item_id\).*DO UPDATE SET quantity = carts\.quantity \+ EXCLUDED\.quantity`).
		WithArgs(int64(1), int64(7), 3, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "quantity", "notes", "created_at"}).
			AddRow(int64(5), int64(1), int64(7), 8, "", time.Now()))

	row, err := store.AddToCart(context.Background(), schema.InsertCart{UserID: 1, ItemID: 7, Quantity: 3})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if row.Quantity != 8 {
		t.Fatalf("quantity = %d, want merged 8", row.Quantity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAddToCartUnknownItemMapsToConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO carts`).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := store.AddToCart(context.Background(), schema.InsertCart{UserID: 1, ItemID: 404, Quantity: 1})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateUserDuplicateMapsToConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := store.CreateUser(context.Background(), schema.InsertUser{TelegramID: "42", FirstName: "A"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE orders SET status`).
		WithArgs(int64(99), "ready").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.UpdateOrderStatus(context.Background(), 99, order.StatusReady)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCategoryMissReportsFalse(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM categories`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := store.DeleteCategory(context.Background(), 3)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Fatalf("miss reported as deleted")
	}
}

func TestCreateMenuItemUnknownCategoryMapsToConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO menu_items .*WHERE EXISTS \(SELECT 1 FROM categories WHERE id = \$1\)`).
		WillReturnRows(sqlmock.NewRows(menuItemTestColumns))

	_, err := store.CreateMenuItem(context.Background(), schema.InsertMenuItem{CategoryID: 999, Name: "Ghost", Price: "1"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestDeleteCategoryWithItemsSucceeds(t *testing.T) {
	store, mock := newMockStore(t)

	// Plain delete, no constraint in the way: the items keep their
	// dangling category id.
	mock.ExpectExec(`DELETE FROM categories`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := store.DeleteCategory(context.Background(), 3)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatalf("delete reported false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

var menuItemTestColumns = []string{
	"id", "category_id", "name", "description", "price", "image",
	"is_available", "preparation_time", "ingredients", "allergens", "tags", "sort_order",
}

func TestUpdateMenuItemUsesSingleStatement(t *testing.T) {
	store, mock := newMockStore(t)

	// One UPDATE with NULLs for the untouched columns; no read beforehand,
	// so a concurrent update of another column cannot be lost.
	mock.ExpectQuery(`UPDATE menu_items\s+SET category_id\s+= COALESCE\(\$2, category_id\)`).
		WithArgs(int64(5), nil, nil, nil, "300.00", nil, nil, nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(menuItemTestColumns).
			AddRow(int64(5), int64(1), "Borsch", "", "300.00", "", true, 15, "{}", "{}", "{}", 1))

	price := "300.00"
	got, err := store.UpdateMenuItem(context.Background(), 5, catalog.MenuItemUpdate{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Price != "300.00" || got.Name != "Borsch" {
		t.Fatalf("partial update corrupted item: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE categories\s+SET name\s+= COALESCE\(\$2, name\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	name := "Soups"
	_, err := store.UpdateCategory(context.Background(), 99, catalog.CategoryUpdate{Name: &name})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckoutEmptyCartRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT c\.item_id, c\.quantity, c\.notes, m\.price`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "quantity", "notes", "price"}))
	mock.ExpectRollback()

	_, _, err := store.Checkout(context.Background(), 1, order.CheckoutInput{DeliveryType: "pickup", PaymentMethod: "cash"})
	if !errors.Is(err, storage.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCheckoutCommitsOrderItemsAndClear(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT c\.item_id, c\.quantity, c\.notes, m\.price`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "quantity", "notes", "price"}).
			AddRow(int64(7), 2, "", "250.00").
			AddRow(int64(8), 1, "", "90.50"))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(1), "590.50", "Lenina 1", "delivery", "card", "", nil).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "status", "total_amount", "delivery_address", "delivery_type",
			"payment_method", "notes", "estimated_delivery_time", "created_at", "updated_at",
		}).AddRow(int64(10), int64(1), "pending", "590.50", "Lenina 1", "delivery", "card", "", nil, time.Now(), time.Now()))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(int64(10), int64(7), 2, "250.00", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "item_id", "quantity", "price", "notes"}).
			AddRow(int64(11), int64(10), int64(7), 2, "250.00", ""))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(int64(10), int64(8), 1, "90.50", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "item_id", "quantity", "price", "notes"}).
			AddRow(int64(12), int64(10), int64(8), 1, "90.50", ""))
	mock.ExpectExec(`DELETE FROM carts`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	o, items, err := store.Checkout(context.Background(), 1, order.CheckoutInput{
		DeliveryType: "delivery", PaymentMethod: "card", DeliveryAddress: "Lenina 1",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.Status != order.StatusPending {
		t.Fatalf("status = %q, want pending", o.Status)
	}
	if o.TotalAmount != "590.50" {
		t.Fatalf("total = %q, want 590.50", o.TotalAmount)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 frozen lines, got %d", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
