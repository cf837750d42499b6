package seed

import (
	"context"
	"testing"

	"github.com/usmm07/foodcourt/internal/storage/memory"
)

func TestRunIsIdempotent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if err := Run(ctx, store, store, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(ctx, store, store, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}

	cats, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(cats))
	}

	items, err := store.ListMenuItems(ctx, 0)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 13 {
		t.Fatalf("expected 13 menu items, got %d", len(items))
	}

	u, err := store.GetUserByTelegramID(ctx, "123456789")
	if err != nil {
		t.Fatalf("demo user missing: %v", err)
	}
	if u.Username != "alexivanov" {
		t.Fatalf("unexpected demo user: %+v", u)
	}
}

func TestRunScopesItemsToSeededCategories(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if err := Run(ctx, store, store, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	cats, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	total := 0
	for _, c := range cats {
		items, err := store.ListMenuItems(ctx, c.ID)
		if err != nil {
			t.Fatalf("list items for %d: %v", c.ID, err)
		}
		if len(items) == 0 {
			t.Fatalf("category %s has no items", c.Name)
		}
		total += len(items)
	}
	if total != 13 {
		t.Fatalf("items not fully attributed to categories: %d", total)
	}
}
