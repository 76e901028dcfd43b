package service

import (
	"context"
	"strings"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/repository"
)

// UpsertRabbitInput is the domain-shaped payload of a rabbit upsert.
// Pointer fields are optional; absent values fall back to the entity
// defaults when the record is constructed.
type UpsertRabbitInput struct {
	ID               string
	Breed            string
	Sex              domain.Sex
	Price            float64
	HasDiscount      bool
	DiscountPercent  *int
	BirthDate        string
	Availability     domain.Availability
	MainPhoto        string
	AdditionalPhotos []string
	IsBreedingStock  bool
	Category         domain.Category
	Visible          *bool
}

// RabbitService defines the business operations on rabbits
type RabbitService interface {
	Upsert(ctx context.Context, input UpsertRabbitInput) error
	Patch(ctx context.Context, id string, patch domain.RabbitPatch) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Rabbit, error)
	List(ctx context.Context) ([]*domain.Rabbit, error)
}

type rabbitService struct {
	rabbits repository.RabbitRepository
}

// NewRabbitService creates a new instance of RabbitService
func NewRabbitService(rabbits repository.RabbitRepository) RabbitService {
	return &rabbitService{rabbits: rabbits}
}

// newRabbit is the single place where upsert defaults apply: discount
// percent falls back to 30 when the flag is set without a percent, the
// flag itself follows the effective percent, visibility defaults to true,
// the category to for-sale and availability to available.
func newRabbit(input UpsertRabbitInput) *domain.Rabbit {
	percent := 0
	if input.DiscountPercent != nil {
		percent = *input.DiscountPercent
	} else if input.HasDiscount {
		percent = domain.DefaultDiscountPercent
	}

	visible := true
	if input.Visible != nil {
		visible = *input.Visible
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryForSale
	}

	availability := input.Availability
	if availability == "" {
		availability = domain.Available
	}

	photos := input.AdditionalPhotos
	if photos == nil {
		photos = []string{}
	}

	return &domain.Rabbit{
		ID:               input.ID,
		Breed:            input.Breed,
		Sex:              input.Sex,
		Price:            input.Price,
		HasDiscount:      percent > 0,
		DiscountPercent:  percent,
		BirthDate:        input.BirthDate,
		Availability:     availability,
		MainPhoto:        input.MainPhoto,
		AdditionalPhotos: photos,
		IsBreedingStock:  input.IsBreedingStock,
		Category:         category,
		Visible:          visible,
	}
}

// Upsert validates the payload and writes it with replace semantics
func (s *rabbitService) Upsert(ctx context.Context, input UpsertRabbitInput) error {
	if strings.TrimSpace(input.ID) == "" {
		return requiredField("id")
	}
	if strings.TrimSpace(input.Breed) == "" {
		return requiredField("breed")
	}
	if strings.TrimSpace(input.MainPhoto) == "" {
		return &FieldError{Field: "mainPhoto", Message: "a main photo is required before saving"}
	}
	if input.Price < 0 {
		return &FieldError{Field: "price", Message: "price must not be negative"}
	}
	if input.DiscountPercent != nil && (*input.DiscountPercent < 0 || *input.DiscountPercent > 100) {
		return &FieldError{Field: "discountPercent", Message: "discount percent must be between 0 and 100"}
	}

	return s.rabbits.Upsert(ctx, newRabbit(input))
}

// Patch applies a partial update to the identified rabbit. Only the
// provided fields change; nothing is defaulted here.
func (s *rabbitService) Patch(ctx context.Context, id string, patch domain.RabbitPatch) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	if patch.Empty() {
		return repository.ErrEmptyPatch
	}
	return s.rabbits.Patch(ctx, id, patch)
}

// Delete removes a rabbit unconditionally. A missing id is the only
// rejected case; deleting a nonexistent rabbit succeeds.
func (s *rabbitService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	return s.rabbits.Delete(ctx, id)
}

// Get retrieves a single rabbit
func (s *rabbitService) Get(ctx context.Context, id string) (*domain.Rabbit, error) {
	return s.rabbits.FindByID(ctx, id)
}

// List retrieves every rabbit, including those hidden from the public catalog
func (s *rabbitService) List(ctx context.Context) ([]*domain.Rabbit, error) {
	return s.rabbits.List(ctx, false)
}
