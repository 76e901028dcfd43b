package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"rabbit-catalog/internal/domain"
)

// ErrNotConfigured signals that the database is not configured and the
// operation has no backing store. Read paths fall back to the seed
// snapshot; write paths surface this as a distinct state.
var ErrNotConfigured = errors.New("storage backend not configured")

// seedRabbitRepository serves the catalog from a read-only JSON snapshot
// when no database is configured. It never persists anything: every write
// reports ErrNotConfigured.
type seedRabbitRepository struct {
	mu      sync.RWMutex
	rabbits []*domain.Rabbit
}

// NewSeedRabbitRepository loads the seed snapshot from path. The snapshot
// holds domain-shaped rabbits (camelCase, display dates).
func NewSeedRabbitRepository(path string) (RabbitRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var rabbits []*domain.Rabbit
	if err := json.Unmarshal(data, &rabbits); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, r := range rabbits {
		applySeedDefaults(r)
	}

	return &seedRabbitRepository{rabbits: rabbits}, nil
}

// applySeedDefaults fills the optional fields older snapshots omit
func applySeedDefaults(r *domain.Rabbit) {
	if r.Category == "" {
		r.Category = domain.CategoryForSale
	}
	if r.HasDiscount && r.DiscountPercent == 0 {
		r.DiscountPercent = domain.DefaultDiscountPercent
	}
	if r.AdditionalPhotos == nil {
		r.AdditionalPhotos = []string{}
	}
	// Snapshots predating the visible flag listed every rabbit publicly
	r.Visible = true
}

func (r *seedRabbitRepository) Upsert(ctx context.Context, rabbit *domain.Rabbit) error {
	return ErrNotConfigured
}

func (r *seedRabbitRepository) Patch(ctx context.Context, id string, patch domain.RabbitPatch) error {
	return ErrNotConfigured
}

func (r *seedRabbitRepository) Delete(ctx context.Context, id string) error {
	return ErrNotConfigured
}

func (r *seedRabbitRepository) FindByID(ctx context.Context, id string) (*domain.Rabbit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rabbit := range r.rabbits {
		if rabbit.ID == id {
			copied := *rabbit
			return &copied, nil
		}
	}
	return nil, ErrRabbitNotFound
}

func (r *seedRabbitRepository) List(ctx context.Context, onlyVisible bool) ([]*domain.Rabbit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Rabbit, 0, len(r.rabbits))
	for _, rabbit := range r.rabbits {
		if onlyVisible && !rabbit.Visible {
			continue
		}
		copied := *rabbit
		out = append(out, &copied)
	}
	return out, nil
}
