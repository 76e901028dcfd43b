package domain

import "time"

// Sex identifies a rabbit's sex
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Availability indicates whether a rabbit can currently be sold
type Availability string

const (
	Available    Availability = "Available"
	NotAvailable Availability = "NotAvailable"
)

// Category classifies a rabbit for catalog display and parent selection
type Category string

const (
	CategoryBreedingStock Category = "breeding-stock"
	CategoryForSale       Category = "for-sale"
	CategorySire          Category = "sire"
	CategoryDam           Category = "dam"
)

const (
	// DefaultDiscountPercent applies when the discount flag is set without an explicit percent
	DefaultDiscountPercent = 30
)

// Rabbit represents a rabbit in the breeder's catalog.
// BirthDate is kept in display form (DD-MM-YYYY); the repository layer
// converts to ISO on the way to storage.
type Rabbit struct {
	ID               string       `json:"id"`
	Breed            string       `json:"breed"`
	Sex              Sex          `json:"sex"`
	Price            float64      `json:"price"`
	HasDiscount      bool         `json:"hasDiscount"`
	DiscountPercent  int          `json:"discountPercent"`
	BirthDate        string       `json:"birthDate"`
	Availability     Availability `json:"availability"`
	MainPhoto        string       `json:"mainPhoto"`
	AdditionalPhotos []string     `json:"additionalPhotos"`
	IsBreedingStock  bool         `json:"isBreedingStock"`
	Category         Category     `json:"category"`
	Visible          bool         `json:"visible"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// EligibleSire reports whether the rabbit can be recorded as the sire of a breeding pair
func (r *Rabbit) EligibleSire() bool {
	return r.Sex == SexMale &&
		(r.Category == CategoryBreedingStock || r.Category == CategorySire)
}

// EligibleDam reports whether the rabbit can be recorded as the dam of a breeding pair
func (r *Rabbit) EligibleDam() bool {
	return r.Sex == SexFemale &&
		(r.Category == CategoryBreedingStock || r.Category == CategoryDam)
}

// RabbitPatch carries the fields of a partial update. Nil means "leave unchanged".
type RabbitPatch struct {
	Breed            *string       `json:"breed"`
	Sex              *Sex          `json:"sex"`
	Price            *float64      `json:"price"`
	HasDiscount      *bool         `json:"hasDiscount"`
	DiscountPercent  *int          `json:"discountPercent"`
	BirthDate        *string       `json:"birthDate"`
	Availability     *Availability `json:"availability"`
	MainPhoto        *string       `json:"mainPhoto"`
	AdditionalPhotos *[]string     `json:"additionalPhotos"`
	IsBreedingStock  *bool         `json:"isBreedingStock"`
	Category         *Category     `json:"category"`
	Visible          *bool         `json:"visible"`
}

// Empty reports whether the patch carries no fields at all
func (p *RabbitPatch) Empty() bool {
	return p.Breed == nil && p.Sex == nil && p.Price == nil &&
		p.HasDiscount == nil && p.DiscountPercent == nil && p.BirthDate == nil &&
		p.Availability == nil && p.MainPhoto == nil && p.AdditionalPhotos == nil &&
		p.IsBreedingStock == nil && p.Category == nil && p.Visible == nil
}
