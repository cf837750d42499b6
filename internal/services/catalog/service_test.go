package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/usmm07/foodcourt/internal/domain/catalog"
	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage/memory"
)

func TestCategoryLifecycle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, schema.InsertCategory{Name: "Soups", SortOrder: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.IsActive {
		t.Fatalf("new category should default to active")
	}

	name := "First courses"
	updated, err := svc.UpdateCategory(ctx, created.ID, catalog.CategoryUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "First courses" || updated.SortOrder != 1 {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	deleted, err := svc.DeleteCategory(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = svc.DeleteCategory(ctx, created.ID)
	if err != nil || deleted {
		t.Fatalf("second delete should miss: deleted=%v err=%v", deleted, err)
	}
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.CreateMenuItem(context.Background(), schema.InsertMenuItem{Price: "abc"})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected categoryId, name and price flagged, got %+v", ve.Fields)
	}
}

func TestUpdateMenuItemRejectsBadPrice(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, schema.InsertCategory{Name: "Main"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := svc.CreateMenuItem(ctx, schema.InsertMenuItem{CategoryID: cat.ID, Name: "Borsch", Price: "250.00"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.PreparationTime != 15 {
		t.Fatalf("preparation time default not applied: %d", item.PreparationTime)
	}

	bad := "12,50"
	_, err = svc.UpdateMenuItem(ctx, item.ID, catalog.MenuItemUpdate{Price: &bad})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
