package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rabbit-catalog/internal/domain"
)

var (
	ErrRabbitNotFound = errors.New("rabbit not found")
	ErrEmptyPatch     = errors.New("no fields to update")
)

// RabbitRepository defines the interface for rabbit data access
type RabbitRepository interface {
	Upsert(ctx context.Context, rabbit *domain.Rabbit) error
	Patch(ctx context.Context, id string, patch domain.RabbitPatch) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Rabbit, error)
	List(ctx context.Context, onlyVisible bool) ([]*domain.Rabbit, error)
}

type rabbitRepository struct {
	db *sql.DB
}

// NewRabbitRepository creates a new instance of RabbitRepository
func NewRabbitRepository(db *sql.DB) RabbitRepository {
	return &rabbitRepository{db: db}
}

// rabbitRow is the storage shape of a rabbit: snake_case columns, ISO
// dates, photos as a JSON array.
type rabbitRow struct {
	ID               string
	Breed            string
	Sex              string
	Price            float64
	HasDiscount      bool
	DiscountPercent  int
	BirthDate        string
	Availability     string
	MainPhoto        string
	AdditionalPhotos []byte
	IsBreedingStock  bool
	Category         string
	Visible          bool
}

// rabbitToRow maps a domain rabbit to its storage shape, normalizing the
// birth date to ISO
func rabbitToRow(rabbit *domain.Rabbit) (*rabbitRow, error) {
	photos := rabbit.AdditionalPhotos
	if photos == nil {
		photos = []string{}
	}
	encoded, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("failed to encode additional photos: %w", err)
	}

	iso, _ := domain.ToStorageDate(rabbit.BirthDate)

	return &rabbitRow{
		ID:               rabbit.ID,
		Breed:            rabbit.Breed,
		Sex:              string(rabbit.Sex),
		Price:            rabbit.Price,
		HasDiscount:      rabbit.HasDiscount,
		DiscountPercent:  rabbit.DiscountPercent,
		BirthDate:        iso,
		Availability:     string(rabbit.Availability),
		MainPhoto:        rabbit.MainPhoto,
		AdditionalPhotos: encoded,
		IsBreedingStock:  rabbit.IsBreedingStock,
		Category:         string(rabbit.Category),
		Visible:          rabbit.Visible,
	}, nil
}

// scanRabbit reads one rabbit row into domain shape, converting the stored
// ISO date back to display form and filling defaults so the result never
// has missing required fields.
func scanRabbit(scan func(dest ...interface{}) error) (*domain.Rabbit, error) {
	row := rabbitRow{}
	rabbit := &domain.Rabbit{}

	err := scan(
		&row.ID,
		&row.Breed,
		&row.Sex,
		&row.Price,
		&row.HasDiscount,
		&row.DiscountPercent,
		&row.BirthDate,
		&row.Availability,
		&row.MainPhoto,
		&row.AdditionalPhotos,
		&row.IsBreedingStock,
		&row.Category,
		&row.Visible,
		&rabbit.CreatedAt,
		&rabbit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	display, _ := domain.ToDisplayDate(row.BirthDate)

	photos := []string{}
	if len(row.AdditionalPhotos) > 0 {
		if err := json.Unmarshal(row.AdditionalPhotos, &photos); err != nil {
			return nil, fmt.Errorf("failed to decode additional photos: %w", err)
		}
	}

	category := domain.Category(row.Category)
	if category == "" {
		category = domain.CategoryForSale
	}
	percent := row.DiscountPercent
	if row.HasDiscount && percent == 0 {
		percent = domain.DefaultDiscountPercent
	}

	rabbit.ID = row.ID
	rabbit.Breed = row.Breed
	rabbit.Sex = domain.Sex(row.Sex)
	rabbit.Price = row.Price
	rabbit.HasDiscount = row.HasDiscount
	rabbit.DiscountPercent = percent
	rabbit.BirthDate = display
	rabbit.Availability = domain.Availability(row.Availability)
	rabbit.MainPhoto = row.MainPhoto
	rabbit.AdditionalPhotos = photos
	rabbit.IsBreedingStock = row.IsBreedingStock
	rabbit.Category = category
	rabbit.Visible = row.Visible

	return rabbit, nil
}

// Upsert inserts a rabbit or replaces the existing row with the same id.
// Replace semantics: every column is overwritten, absent payload fields
// having been defaulted upstream.
func (r *rabbitRepository) Upsert(ctx context.Context, rabbit *domain.Rabbit) error {
	row, err := rabbitToRow(rabbit)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rabbits (id, breed, sex, price, has_discount, discount_percent,
		                     birth_date, availability, main_photo, additional_photos,
		                     is_breeding_stock, category, visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			breed = EXCLUDED.breed,
			sex = EXCLUDED.sex,
			price = EXCLUDED.price,
			has_discount = EXCLUDED.has_discount,
			discount_percent = EXCLUDED.discount_percent,
			birth_date = EXCLUDED.birth_date,
			availability = EXCLUDED.availability,
			main_photo = EXCLUDED.main_photo,
			additional_photos = EXCLUDED.additional_photos,
			is_breeding_stock = EXCLUDED.is_breeding_stock,
			category = EXCLUDED.category,
			visible = EXCLUDED.visible,
			updated_at = NOW()
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		row.ID,
		row.Breed,
		row.Sex,
		row.Price,
		row.HasDiscount,
		row.DiscountPercent,
		row.BirthDate,
		row.Availability,
		row.MainPhoto,
		row.AdditionalPhotos,
		row.IsBreedingStock,
		row.Category,
		row.Visible,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert rabbit: %w", err)
	}

	return nil
}

// Patch updates only the provided fields of an existing rabbit
func (r *rabbitRepository) Patch(ctx context.Context, id string, patch domain.RabbitPatch) error {
	sets := []string{}
	args := []interface{}{id}
	argIndex := 2

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.Breed != nil {
		add("breed", *patch.Breed)
	}
	if patch.Sex != nil {
		add("sex", string(*patch.Sex))
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.HasDiscount != nil {
		add("has_discount", *patch.HasDiscount)
	}
	if patch.DiscountPercent != nil {
		add("discount_percent", *patch.DiscountPercent)
	}
	if patch.BirthDate != nil {
		iso, _ := domain.ToStorageDate(*patch.BirthDate)
		add("birth_date", iso)
	}
	if patch.Availability != nil {
		add("availability", string(*patch.Availability))
	}
	if patch.MainPhoto != nil {
		add("main_photo", *patch.MainPhoto)
	}
	if patch.AdditionalPhotos != nil {
		encoded, err := json.Marshal(*patch.AdditionalPhotos)
		if err != nil {
			return fmt.Errorf("failed to encode additional photos: %w", err)
		}
		add("additional_photos", encoded)
	}
	if patch.IsBreedingStock != nil {
		add("is_breeding_stock", *patch.IsBreedingStock)
	}
	if patch.Category != nil {
		add("category", string(*patch.Category))
	}
	if patch.Visible != nil {
		add("visible", *patch.Visible)
	}

	if len(sets) == 0 {
		return ErrEmptyPatch
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE rabbits SET %s WHERE id = $1", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch rabbit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRabbitNotFound
	}

	return nil
}

// Delete removes a rabbit by id. Deleting an id that does not exist is a
// no-op, not an error.
func (r *rabbitRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM rabbits WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete rabbit: %w", err)
	}

	return nil
}

const rabbitColumns = `id, breed, sex, price, has_discount, discount_percent,
	birth_date, availability, main_photo, additional_photos,
	is_breeding_stock, category, visible, created_at, updated_at`

// FindByID retrieves a rabbit by id
func (r *rabbitRepository) FindByID(ctx context.Context, id string) (*domain.Rabbit, error) {
	query := fmt.Sprintf(`SELECT %s FROM rabbits WHERE id = $1`, rabbitColumns)

	row := r.db.QueryRowContext(ctx, query, id)
	rabbit, err := scanRabbit(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRabbitNotFound
		}
		return nil, fmt.Errorf("failed to find rabbit by ID: %w", err)
	}

	return rabbit, nil
}

// List retrieves rabbits ordered by most recently created, optionally
// restricted to the publicly visible set
func (r *rabbitRepository) List(ctx context.Context, onlyVisible bool) ([]*domain.Rabbit, error) {
	query := fmt.Sprintf(`SELECT %s FROM rabbits`, rabbitColumns)
	if onlyVisible {
		query += ` WHERE visible = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rabbits: %w", err)
	}
	defer rows.Close()

	rabbits := []*domain.Rabbit{}
	for rows.Next() {
		rabbit, err := scanRabbit(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rabbit: %w", err)
		}
		rabbits = append(rabbits, rabbit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rabbits: %w", err)
	}

	return rabbits, nil
}
