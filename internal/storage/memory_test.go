package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

func TestMemoryStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	result := &domain.BlendResult{
		ID:       "blend_1",
		FuelType: domain.Gasoline,
		Recipe: domain.Recipe{
			{ID: "a", Name: "Isooctane", Percentage: 90},
			{ID: "b", Name: "Ethanol", Percentage: 10},
		},
		Properties: domain.PropertyBag{domain.RON: 98.2},
		CreatedAt:  time.Now(),
	}

	// Save.
	if err := store.Save(ctx, result); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Load.
	loaded, err := store.Load(ctx, "blend_1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != result.ID {
		t.Fatalf("expected ID %s, got %s", result.ID, loaded.ID)
	}

	// Load missing.
	if _, err := store.Load(ctx, "nonexistent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Delete.
	if err := store.Delete(ctx, "blend_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "blend_1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("expected ErrNotFound after delete")
	}
	if err := store.Delete(ctx, "blend_1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("expected ErrNotFound deleting twice")
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	blends := []*domain.BlendResult{
		{ID: "g1", FuelType: domain.Gasoline, CreatedAt: base},
		{ID: "d1", FuelType: domain.Diesel, CreatedAt: base.Add(time.Minute)},
		{ID: "g2", FuelType: domain.Gasoline, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "g3", FuelType: domain.Gasoline, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, b := range blends {
		if err := store.Save(ctx, b); err != nil {
			t.Fatalf("save %s: %v", b.ID, err)
		}
	}

	got, err := store.List(ctx, domain.Gasoline)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"g3", "g2", "g1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d blends, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	diesel, _ := store.List(ctx, domain.Diesel)
	if len(diesel) != 1 || diesel[0].ID != "d1" {
		t.Fatalf("unexpected diesel list %v", diesel)
	}
}
