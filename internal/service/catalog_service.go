package service

import (
	"context"
	"time"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/repository"
)

// CatalogService serves the public, read-only side of the catalog
type CatalogService interface {
	Catalog(ctx context.Context, now time.Time) (domain.CatalogSections, error)
}

type catalogService struct {
	rabbits repository.RabbitRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(rabbits repository.RabbitRepository) CatalogService {
	return &catalogService{rabbits: rabbits}
}

// Catalog fetches the visible rabbit set and partitions it for sectioned
// display. now is the reference date for the new-litter cutoff.
func (s *catalogService) Catalog(ctx context.Context, now time.Time) (domain.CatalogSections, error) {
	rabbits, err := s.rabbits.List(ctx, true)
	if err != nil {
		return domain.CatalogSections{}, err
	}
	return domain.PartitionCatalog(rabbits, now), nil
}
