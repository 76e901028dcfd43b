package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/repository"
)

// UpsertPairInput is the domain-shaped payload of a breeding pair upsert
type UpsertPairInput struct {
	ID                string
	SireID            string
	DamID             string
	MatingDate        string
	ExpectedBirthDate string
	ActualBirthDate   string
	Status            domain.PairStatus
	Notes             string
}

// UpsertGestationInput is the domain-shaped payload of a gestation upsert
type UpsertGestationInput struct {
	ID                 string
	BreedingPairID     string
	NestBoxDate        string
	EstimatedBirthDate string
	Notes              string
}

// UpsertBirthInput is the domain-shaped payload of a birth upsert
type UpsertBirthInput struct {
	ID             string
	BreedingPairID string
	BirthDate      string
	TotalKits      *int
	LiveKits       *int
	Notes          string
}

/// BreedingService covers the breeding aggregate: pairs, gestations and
// birth records
type BreedingService interface {
	UpsertPair(ctx context.Context, input UpsertPairInput) error
	PatchPair(ctx context.Context, id string, patch domain.BreedingPairPatch) error
	DeletePair(ctx context.Context, id string) error
	GetPair(ctx context.Context, id string) (*domain.BreedingPair, error)
	ListPairs(ctx context.Context) ([]*domain.BreedingPair, error)

	UpsertGestation(ctx context.Context, input UpsertGestationInput) error
	PatchGestation(ctx context.Context, id string, patch domain.GestationPatch) error
	DeleteGestation(ctx context.Context, id string) error
	GetGestation(ctx context.Context, id string) (*domain.Gestation, error)
	ListGestations(ctx context.Context) ([]*domain.Gestation, error)

	UpsertBirth(ctx context.Context, input UpsertBirthInput) error
	PatchBirth(ctx context.Context, id string, patch domain.BirthPatch) error
	DeleteBirth(ctx context.Context, id string) error
	GetBirth(ctx context.Context, id string) (*domain.Birth, error)
	ListBirths(ctx context.Context) ([]*domain.Birth, error)
}

type breedingService struct {
	pairs      repository.BreedingPairRepository
	gestations repository.GestationRepository
	births     repository.BirthRepository
	rabbits    repository.RabbitRepository
}

// NewBreedingService creates a new instance of BreedingService
func NewBreedingService(
	pairs repository.BreedingPairRepository,
	gestations repository.GestationRepository,
	births repository.BirthRepository,
	rabbits repository.RabbitRepository,
) BreedingService {
	return &breedingService{
		pairs:      pairs,
		gestations: gestations,
		births:     births,
		rabbits:    rabbits,
	}
}

// UpsertPair validates parentage and writes the pair with replace
// semantics. The sire/dam references are checked here, at write time;
// the tables carry no foreign key between pairs and rabbits.
func (s *breedingService) UpsertPair(ctx context.Context, input UpsertPairInput) error {
	if strings.TrimSpace(input.ID) == "" {
		return requiredField("id")
	}
	if strings.TrimSpace(input.SireID) == "" {
		return requiredField("sireId")
	}
	if strings.TrimSpace(input.DamID) == "" {
		return requiredField("damId")
	}
	if strings.TrimSpace(input.MatingDate) == "" {
		return requiredField("matingDate")
	}
	if input.SireID == input.DamID {
		return &FieldError{Field: "damId", Message: "sire and dam must be different rabbits"}
	}

	if err := s.checkParent(ctx, "sireId", input.SireID, (*domain.Rabbit).EligibleSire); err != nil {
		return err
	}
	if err := s.checkParent(ctx, "damId", input.DamID, (*domain.Rabbit).EligibleDam); err != nil {
		return err
	}

	status := input.Status
	if status == "" {
		status = domain.PairScheduled
	}

	return s.pairs.Upsert(ctx, &domain.BreedingPair{
		ID:                input.ID,
		SireID:            input.SireID,
		DamID:             input.DamID,
		MatingDate:        input.MatingDate,
		ExpectedBirthDate: input.ExpectedBirthDate,
		ActualBirthDate:   input.ActualBirthDate,
		Status:            status,
		Notes:             input.Notes,
	})
}

func (s *breedingService) checkParent(ctx context.Context, field, id string, eligible func(*domain.Rabbit) bool) error {
	rabbit, err := s.rabbits.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRabbitNotFound) {
			return &FieldError{Field: field, Message: fmt.Sprintf("rabbit %s does not exist", id)}
		}
		return err
	}
	if !eligible(rabbit) {
		return &FieldError{Field: field, Message: fmt.Sprintf("rabbit %s is not eligible as %s", id, field)}
	}
	return nil
}

// PatchPair applies a partial update to the identified pair
func (s *breedingService) PatchPair(ctx context.Context, id string, patch domain.BreedingPairPatch) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	return s.pairs.Patch(ctx, id, patch)
}

// DeletePair removes a pair unconditionally
func (s *breedingService) DeletePair(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	return s.pairs.Delete(ctx, id)
}

func (s *breedingService) GetPair(ctx context.Context, id string) (*domain.BreedingPair, error) {
	return s.pairs.FindByID(ctx, id)
}

func (s *breedingService) ListPairs(ctx context.Context) ([]*domain.BreedingPair, error) {
	return s.pairs.List(ctx)
}

// UpsertGestation validates the payload and writes it with replace
// semantics. Dates may stay blank; the backend derives them from the
// pair's mating date.
func (s *breedingService) UpsertGestation(ctx context.Context, input UpsertGestationInput) error {
	if strings.TrimSpace(input.ID) == "" {
		return requiredField("id")
	}
	if strings.TrimSpace(input.BreedingPairID) == "" {
		return requiredField("breedingPairId")
	}
	if err := s.checkPairExists(ctx, input.BreedingPairID); err != nil {
		return err
	}

	return s.gestations.Upsert(ctx, &domain.Gestation{
		ID:                 input.ID,
		BreedingPairID:     input.BreedingPairID,
		NestBoxDate:        input.NestBoxDate,
		EstimatedBirthDate: input.EstimatedBirthDate,
		Notes:              input.Notes,
	})
}

func (s *breedingService) PatchGestation(ctx context.Context, id string, patch domain.GestationPatch) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	return s.gestations.Patch(ctx, id, patch)
}

func (s *breedingService) DeleteGestation(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	return s.gestations.Delete(ctx, id)
}

func (s *breedingService) GetGestation(ctx context.Context, id string) (*domain.Gestation, error) {
	return s.gestations.FindByID(ctx, id)
}

func (s *breedingService) ListGestations(ctx context.Context) ([]*domain.Gestation, error) {
	return s.gestations.List(ctx)
}

// UpsertBirth validates the payload and writes it with replace semantics
func (s *breedingService) UpsertBirth(ctx context.Context, input UpsertBirthInput) error {
	if strings.TrimSpace(input.ID) == "" {
		return requiredField("id")
	}
	if strings.TrimSpace(input.BreedingPairID) == "" {
		return requiredField("breedingPairId")
	}
	if strings.TrimSpace(input.BirthDate) == "" {
		return requiredField("birthDate")
	}
	if input.TotalKits != nil && *input.TotalKits < 0 {
		return &FieldError{Field: "totalKits", Message: "kit count must not be negative"}
	}
	if input.LiveKits != nil && *input.LiveKits < 0 {
		return &FieldError{Field: "liveKits", Message: "kit count must not be negative"}
	}
	if err := s.checkPairExists(ctx, input.BreedingPairID); err != nil {
		return err
	}

	return s.births.Upsert(ctx, &domain.Birth{
		ID:             input.ID,
		BreedingPairID: input.BreedingPairID,
		BirthDate:      input.BirthDate,
		TotalKits:      input.TotalKits,
		LiveKits:       input.LiveKits,
		Notes:          input.Notes,
	})
}

func (s *breedingService) PatchBirth(ctx context.Context, id string, patch domain.BirthPatch) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	return s.births.Patch(ctx, id, patch)
}

func (s *breedingService) DeleteBirth(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return requiredField("id")
	}
	return s.births.Delete(ctx, id)
}

func (s *breedingService) GetBirth(ctx context.Context, id string) (*domain.Birth, error) {
	return s.births.FindByID(ctx, id)
}

func (s *breedingService) ListBirths(ctx context.Context) ([]*domain.Birth, error) {
	return s.births.List(ctx)
}

func (s *breedingService) checkPairExists(ctx context.Context, id string) error {
	if _, err := s.pairs.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBreedingPairNotFound) {
			return &FieldError{Field: "breedingPairId", Message: fmt.Sprintf("breeding pair %s does not exist", id)}
		}
		return err
	}
	return nil
}
