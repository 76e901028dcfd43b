package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rabbit-catalog/internal/domain"
)

var (
	ErrGestationNotFound = errors.New("gestation not found")
)

// GestationRepository defines the interface for gestation data access
type GestationRepository interface {
	Upsert(ctx context.Context, gestation *domain.Gestation) error
	Patch(ctx context.Context, id string, patch domain.GestationPatch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Gestation, error)
	List(ctx context.Context) ([]*domain.Gestation, error)
}

type gestationRepository struct {
	db *sql.DB
}

// NewGestationRepository creates a new instance of GestationRepository
func NewGestationRepository(db *sql.DB) GestationRepository {
	return &gestationRepository{db: db}
}

// Upsert inserts a gestation or replaces the existing record with the same
// id. Blank dates are stored as NULL; a database trigger may derive them
// from the pair's mating date.
func (r *gestationRepository) Upsert(ctx context.Context, gestation *domain.Gestation) error {
	query := `
		INSERT INTO gestations (id, breeding_pair_id, nest_box_date, estimated_birth_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			breeding_pair_id = EXCLUDED.breeding_pair_id,
			nest_box_date = EXCLUDED.nest_box_date,
			estimated_birth_date = EXCLUDED.estimated_birth_date,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		gestation.ID,
		gestation.BreedingPairID,
		storageDate(gestation.NestBoxDate),
		storageDate(gestation.EstimatedBirthDate),
		nullableText(gestation.Notes),
	)

	if err != nil {
		return fmt.Errorf("failed to upsert gestation: %w", err)
	}

	return nil
}

// Patch updates only the provided fields of an existing gestation
func (r *gestationRepository) Patch(ctx context.Context, id string, patch domain.GestationPatch) error {
	sets := []string{}
	args := []interface{}{id}
	argIndex := 2

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.NestBoxDate != nil {
		add("nest_box_date", storageDate(*patch.NestBoxDate))
	}
	if patch.EstimatedBirthDate != nil {
		add("estimated_birth_date", storageDate(*patch.EstimatedBirthDate))
	}
	if patch.Notes != nil {
		add("notes", nullableText(*patch.Notes))
	}

	if len(sets) == 0 {
		return ErrEmptyPatch
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE gestations SET %s WHERE id = $1", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch gestation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGestationNotFound
	}

	return nil
}

// Delete removes a gestation by id; deleting a missing id is a no-op
func (r *gestationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM gestations WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete gestation: %w", err)
	}

	return nil
}

func scanGestation(scan func(dest ...interface{}) error) (*domain.Gestation, error) {
	gestation := &domain.Gestation{}
	var nestBox, estimated, notes sql.NullString

	err := scan(
		&gestation.ID,
		&gestation.BreedingPairID,
		&nestBox,
		&estimated,
		&notes,
		&gestation.CreatedAt,
		&gestation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	gestation.NestBoxDate = displayDate(nestBox)
	gestation.EstimatedBirthDate = displayDate(estimated)
	gestation.Notes = notes.String

	return gestation, nil
}

// FindByID retrieves a gestation by id
func (r *gestationRepository) FindByID(ctx context.Context, id string) (*domain.Gestation, error) {
	query := `
		SELECT id, breeding_pair_id, nest_box_date, estimated_birth_date,
		       notes, created_at, updated_at
		FROM gestations
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	gestation, err := scanGestation(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGestationNotFound
		}
		return nil, fmt.Errorf("failed to find gestation by ID: %w", err)
	}

	return gestation, nil
}

// List retrieves all gestations, most recently created first
func (r *gestationRepository) List(ctx context.Context) ([]*domain.Gestation, error) {
	query := `
		SELECT id, breeding_pair_id, nest_box_date, estimated_birth_date,
		       notes, created_at, updated_at
		FROM gestations
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list gestations: %w", err)
	}
	defer rows.Close()

	gestations := []*domain.Gestation{}
	for rows.Next() {
		gestation, err := scanGestation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gestation: %w", err)
		}
		gestations = append(gestations, gestation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gestations: %w", err)
	}

	return gestations, nil
}
