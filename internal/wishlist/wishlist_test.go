package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/usmancout/ShopSense-AI/internal/catalog"
)

func sample(id, name string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Store: "Martello", Price: 10}
}

func TestService_AddListRemove(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if err := svc.Add(ctx, "user-1", sample("martello-1", "iPhone")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := svc.Add(ctx, "user-1", sample("prodexa-1", "Case")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Same raw id from another store is a distinct product.
	if err := svc.Add(ctx, "user-1", sample("storenta-1", "Lamp")); err != nil {
		t.Fatalf("Add() cross-store error = %v", err)
	}

	if err := svc.Add(ctx, "user-1", sample("martello-1", "iPhone")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Add() error = %v, want ErrDuplicate", err)
	}

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("List() = %d items, want 3", len(list))
	}
	if list[0].ID != "martello-1" {
		t.Errorf("List() order starts with %q, want insertion order", list[0].ID)
	}

	if err := svc.Remove(ctx, "user-1", "prodexa-1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := svc.Remove(ctx, "user-1", "prodexa-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}

	// Other users are untouched.
	other, _ := svc.List(ctx, "user-2")
	if len(other) != 0 {
		t.Errorf("user-2 list = %d items, want 0", len(other))
	}
}

func TestService_Toggle(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	p := sample("martello-9", "Monitor")

	action, err := svc.Toggle(ctx, "user-1", p)
	if err != nil || action != "added" {
		t.Fatalf("first Toggle() = %q, %v", action, err)
	}

	action, err = svc.Toggle(ctx, "user-1", p)
	if err != nil || action != "removed" {
		t.Fatalf("second Toggle() = %q, %v", action, err)
	}

	list, _ := svc.List(ctx, "user-1")
	if len(list) != 0 {
		t.Errorf("list = %d items after toggle off, want 0", len(list))
	}
}
