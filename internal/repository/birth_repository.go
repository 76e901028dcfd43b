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
	ErrBirthNotFound = errors.New("birth not found")
)

// BirthRepository defines the interface for birth record data access
type BirthRepository interface {
	Upsert(ctx context.Context, birth *domain.Birth) error
	Patch(ctx context.Context, id string, patch domain.BirthPatch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Birth, error)
	List(ctx context.Context) ([]*domain.Birth, error)
}

type birthRepository struct {
	db *sql.DB
}

// NewBirthRepository creates a new instance of BirthRepository
func NewBirthRepository(db *sql.DB) BirthRepository {
	return &birthRepository{db: db}
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// Upsert inserts a birth record or replaces the existing one with the same id
func (r *birthRepository) Upsert(ctx context.Context, birth *domain.Birth) error {
	birthISO, _ := domain.ToStorageDate(birth.BirthDate)

	query := `
		INSERT INTO births (id, breeding_pair_id, birth_date, total_kits, live_kits, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			breeding_pair_id = EXCLUDED.breeding_pair_id,
			birth_date = EXCLUDED.birth_date,
			total_kits = EXCLUDED.total_kits,
			live_kits = EXCLUDED.live_kits,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		birth.ID,
		birth.BreedingPairID,
		birthISO,
		nullableInt(birth.TotalKits),
		nullableInt(birth.LiveKits),
		nullableText(birth.Notes),
	)

	if err != nil {
		return fmt.Errorf("failed to upsert birth: %w", err)
	}

	return nil
}

// Patch updates only the provided fields of an existing birth record
func (r *birthRepository) Patch(ctx context.Context, id string, patch domain.BirthPatch) error {
	sets := []string{}
	args := []interface{}{id}
	argIndex := 2

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.BirthDate != nil {
		iso, _ := domain.ToStorageDate(*patch.BirthDate)
		add("birth_date", iso)
	}
	if patch.TotalKits != nil {
		add("total_kits", *patch.TotalKits)
	}
	if patch.LiveKits != nil {
		add("live_kits", *patch.LiveKits)
	}
	if patch.Notes != nil {
		add("notes", nullableText(*patch.Notes))
	}

	if len(sets) == 0 {
		return ErrEmptyPatch
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE births SET %s WHERE id = $1", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch birth: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBirthNotFound
	}

	return nil
}

// Delete removes a birth record by id; deleting a missing id is a no-op
func (r *birthRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM births WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete birth: %w", err)
	}

	return nil
}

func scanBirth(scan func(dest ...interface{}) error) (*domain.Birth, error) {
	birth := &domain.Birth{}
	var birthDate string
	var totalKits, liveKits sql.NullInt64
	var notes sql.NullString

	err := scan(
		&birth.ID,
		&birth.BreedingPairID,
		&birthDate,
		&totalKits,
		&liveKits,
		&notes,
		&birth.CreatedAt,
		&birth.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	birth.BirthDate, _ = domain.ToDisplayDate(birthDate)
	if totalKits.Valid {
		v := int(totalKits.Int64)
		birth.TotalKits = &v
	}
	if liveKits.Valid {
		v := int(liveKits.Int64)
		birth.LiveKits = &v
	}
	birth.Notes = notes.String

	return birth, nil
}

// FindByID retrieves a birth record by id
func (r *birthRepository) FindByID(ctx context.Context, id string) (*domain.Birth, error) {
	query := `
		SELECT id, breeding_pair_id, birth_date, total_kits, live_kits,
		       notes, created_at, updated_at
		FROM births
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	birth, err := scanBirth(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBirthNotFound
		}
		return nil, fmt.Errorf("failed to find birth by ID: %w", err)
	}

	return birth, nil
}

// List retrieves all birth records, most recently created first
func (r *birthRepository) List(ctx context.Context) ([]*domain.Birth, error) {
	query := `
		SELECT id, breeding_pair_id, birth_date, total_kits, live_kits,
		       notes, created_at, updated_at
		FROM births
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list births: %w", err)
	}
	defer rows.Close()

	births := []*domain.Birth{}
	for rows.Next() {
		birth, err := scanBirth(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan birth: %w", err)
		}
		births = append(births, birth)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating births: %w", err)
	}

	return births, nil
}
