package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rabbit-catalog/internal/domain"
)

const seedSnapshot = `[
	{"id": "C0001", "breed": "Mini Lop", "sex": "Male", "price": 0,
	 "birthDate": "10-03-2023", "mainPhoto": "c0001.jpg",
	 "isBreedingStock": true, "category": "sire"},
	{"id": "C0014", "breed": "Holland Lop", "sex": "Female", "price": 9000,
	 "hasDiscount": true, "birthDate": "01-06-2026", "mainPhoto": "c0014.jpg"}
]`

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rabbits.json")
	if err := os.WriteFile(path, []byte(seedSnapshot), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSeedRepository_LoadsAndDefaults(t *testing.T) {
	repo, err := NewSeedRabbitRepository(writeSeedFile(t))
	if err != nil {
		t.Fatalf("failed to load seed: %v", err)
	}
	ctx := context.Background()

	all, err := repo.List(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rabbits, got %d", len(all))
	}

	discounted, err := repo.FindByID(ctx, "C0014")
	if err != nil {
		t.Fatal(err)
	}
	if discounted.Category != domain.CategoryForSale {
		t.Errorf("missing category should default to for-sale, got %q", discounted.Category)
	}
	if discounted.DiscountPercent != domain.DefaultDiscountPercent {
		t.Errorf("discount flag without percent should default, got %d", discounted.DiscountPercent)
	}
	if !discounted.Visible {
		t.Error("seed rabbits are publicly visible")
	}
	if discounted.AdditionalPhotos == nil {
		t.Error("photo list should never be nil")
	}
}

func TestSeedRepository_WritesReportNotConfigured(t *testing.T) {
	repo, err := NewSeedRabbitRepository(writeSeedFile(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleRabbit("C9999")); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("upsert should report not configured, got %v", err)
	}
	visible := false
	if err := repo.Patch(ctx, "C0001", domain.RabbitPatch{Visible: &visible}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("patch should report not configured, got %v", err)
	}
	if err := repo.Delete(ctx, "C0001"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("delete should report not configured, got %v", err)
	}
}

func TestSeedRepository_ReadsReturnCopies(t *testing.T) {
	repo, err := NewSeedRabbitRepository(writeSeedFile(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first, err := repo.FindByID(ctx, "C0001")
	if err != nil {
		t.Fatal(err)
	}
	first.Breed = "mutated"

	again, err := repo.FindByID(ctx, "C0001")
	if err != nil {
		t.Fatal(err)
	}
	if again.Breed != "Mini Lop" {
		t.Fatal("callers must not be able to mutate the snapshot")
	}
}

func TestSeedRepository_MissingFile(t *testing.T) {
	if _, err := NewSeedRabbitRepository(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing snapshot file should fail loudly")
	}
}
