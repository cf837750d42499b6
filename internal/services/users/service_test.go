package users

import (
	"context"
	"errors"
	"testing"

	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage/memory"
)

func TestResolveCreatesThenReuses(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, schema.InsertUser{TelegramID: "123456789", FirstName: "Ivan"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	second, err := svc.Resolve(ctx, schema.InsertUser{TelegramID: "123456789", FirstName: "Different"})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("resolve created a second user: %d vs %d", second.ID, first.ID)
	}
	if second.FirstName != "Ivan" {
		t.Fatalf("existing record should win, got %q", second.FirstName)
	}
}

func TestResolveValidation(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.Resolve(context.Background(), schema.InsertUser{})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(ve.Fields))
	}
}
