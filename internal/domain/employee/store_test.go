package employee

import (
	"context"
	"errors"
	"testing"
)

func TestBuildUpdateSortsColumns(t *testing.T) {
	query, args, err := buildUpdate("emp-1", map[string]any{
		"site":       "charlotte",
		"manager_id": nil,
		"name":       "Pat",
	})
	if err != nil {
		t.Fatalf("buildUpdate: %v", err)
	}

	want := "UPDATE employees SET manager_id = $1, name = $2, site = $3, updated_at = now() WHERE id = $4"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
	if args[0] != nil || args[1] != "Pat" || args[2] != "charlotte" || args[3] != "emp-1" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildUpdateRejectsUnknownColumn(t *testing.T) {
	if _, _, err := buildUpdate("emp-1", map[string]any{"salary": 1}); err == nil {
		t.Fatal("expected rejection for non-whitelisted column")
	}
}

func TestBuildUpdateRejectsEmptyPatch(t *testing.T) {
	if _, _, err := buildUpdate("emp-1", nil); err == nil {
		t.Fatal("expected rejection for empty patch")
	}
}

func TestUnconfiguredStoreDegrades(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)

	emps, err := store.List(ctx)
	if err != nil || len(emps) != 0 {
		t.Fatalf("expected empty list without error, got %v, %v", emps, err)
	}
	emps, err = store.ListBySite(ctx, SiteAustin)
	if err != nil || len(emps) != 0 {
		t.Fatalf("expected empty site list without error, got %v, %v", emps, err)
	}
	teams, err := store.ListTeams(ctx)
	if err != nil || len(teams) != 0 {
		t.Fatalf("expected empty teams without error, got %v, %v", teams, err)
	}
	changes, err := store.ListChanges(ctx, 10)
	if err != nil || len(changes) != 0 {
		t.Fatalf("expected empty changes without error, got %v, %v", changes, err)
	}

	unsubscribe, err := store.Subscribe(ctx, func([]Employee) {})
	if err != nil || unsubscribe == nil {
		t.Fatalf("expected noop subscription, got %v", err)
	}
	unsubscribe()

	if _, err := store.Create(ctx, Employee{Name: "Pat"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured on create, got %v", err)
	}
	if err := store.UpdateFields(ctx, "emp-1", map[string]any{"name": "Pat"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured on update, got %v", err)
	}
	if err := store.Delete(ctx, "emp-1"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured on delete, got %v", err)
	}
}
