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
	ErrBreedingPairNotFound = errors.New("breeding pair not found")
)

// BreedingPairRepository defines the interface for breeding pair data access
type BreedingPairRepository interface {
	Upsert(ctx context.Context, pair *domain.BreedingPair) error
	Patch(ctx context.Context, id string, patch domain.BreedingPairPatch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.BreedingPair, error)
	List(ctx context.Context) ([]*domain.BreedingPair, error)
}

type breedingPairRepository struct {
	db *sql.DB
}

// NewBreedingPairRepository creates a new instance of BreedingPairRepository
func NewBreedingPairRepository(db *sql.DB) BreedingPairRepository {
	return &breedingPairRepository{db: db}
}

// storageDate converts a display date to ISO, mapping the empty string to
// NULL for nullable date columns
func storageDate(display string) sql.NullString {
	if display == "" {
		return sql.NullString{}
	}
	iso, _ := domain.ToStorageDate(display)
	return sql.NullString{String: iso, Valid: true}
}

// displayDate converts a nullable stored ISO date back to display form
func displayDate(stored sql.NullString) string {
	if !stored.Valid {
		return ""
	}
	display, _ := domain.ToDisplayDate(stored.String)
	return display
}

func nullableText(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Upsert inserts a breeding pair or replaces the existing record with the same id
func (r *breedingPairRepository) Upsert(ctx context.Context, pair *domain.BreedingPair) error {
	matingISO, _ := domain.ToStorageDate(pair.MatingDate)

	query := `
		INSERT INTO breeding_pairs (id, sire_id, dam_id, mating_date,
		                            expected_birth_date, actual_birth_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			sire_id = EXCLUDED.sire_id,
			dam_id = EXCLUDED.dam_id,
			mating_date = EXCLUDED.mating_date,
			expected_birth_date = EXCLUDED.expected_birth_date,
			actual_birth_date = EXCLUDED.actual_birth_date,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		pair.ID,
		pair.SireID,
		pair.DamID,
		matingISO,
		storageDate(pair.ExpectedBirthDate),
		storageDate(pair.ActualBirthDate),
		string(pair.Status),
		nullableText(pair.Notes),
	)

	if err != nil {
		return fmt.Errorf("failed to upsert breeding pair: %w", err)
	}

	return nil
}

// Patch updates only the provided fields of an existing breeding pair
func (r *breedingPairRepository) Patch(ctx context.Context, id string, patch domain.BreedingPairPatch) error {
	sets := []string{}
	args := []interface{}{id}
	argIndex := 2

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.MatingDate != nil {
		iso, _ := domain.ToStorageDate(*patch.MatingDate)
		add("mating_date", iso)
	}
	if patch.ExpectedBirthDate != nil {
		add("expected_birth_date", storageDate(*patch.ExpectedBirthDate))
	}
	if patch.ActualBirthDate != nil {
		add("actual_birth_date", storageDate(*patch.ActualBirthDate))
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Notes != nil {
		add("notes", nullableText(*patch.Notes))
	}

	if len(sets) == 0 {
		return ErrEmptyPatch
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE breeding_pairs SET %s WHERE id = $1", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch breeding pair: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBreedingPairNotFound
	}

	return nil
}

// Delete removes a breeding pair by id; deleting a missing id is a no-op
func (r *breedingPairRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM breeding_pairs WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete breeding pair: %w", err)
	}

	return nil
}

func scanBreedingPair(scan func(dest ...interface{}) error) (*domain.BreedingPair, error) {
	pair := &domain.BreedingPair{}
	var matingDate string
	var expected, actual, notes sql.NullString
	var status string

	err := scan(
		&pair.ID,
		&pair.SireID,
		&pair.DamID,
		&matingDate,
		&expected,
		&actual,
		&status,
		&notes,
		&pair.CreatedAt,
		&pair.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pair.MatingDate, _ = domain.ToDisplayDate(matingDate)
	pair.ExpectedBirthDate = displayDate(expected)
	pair.ActualBirthDate = displayDate(actual)
	pair.Status = domain.PairStatus(status)
	if pair.Status == "" {
		pair.Status = domain.PairScheduled
	}
	pair.Notes = notes.String

	return pair, nil
}

// FindByID retrieves a breeding pair by id
func (r *breedingPairRepository) FindByID(ctx context.Context, id string) (*domain.BreedingPair, error) {
	query := `
		SELECT id, sire_id, dam_id, mating_date, expected_birth_date,
		       actual_birth_date, status, notes, created_at, updated_at
		FROM breeding_pairs
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	pair, err := scanBreedingPair(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBreedingPairNotFound
		}
		return nil, fmt.Errorf("failed to find breeding pair by ID: %w", err)
	}

	return pair, nil
}

// List retrieves all breeding pairs ordered by most recent mating date
func (r *breedingPairRepository) List(ctx context.Context) ([]*domain.BreedingPair, error) {
	query := `
		SELECT id, sire_id, dam_id, mating_date, expected_birth_date,
		       actual_birth_date, status, notes, created_at, updated_at
		FROM breeding_pairs
		ORDER BY mating_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list breeding pairs: %w", err)
	}
	defer rows.Close()

	pairs := []*domain.BreedingPair{}
	for rows.Next() {
		pair, err := scanBreedingPair(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan breeding pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating breeding pairs: %w", err)
	}

	return pairs, nil
}
