package domain

import "time"

// newLitterWindowMonths is the age below which a rabbit counts as new litter
const newLitterWindowMonths = 3

// CatalogSections is the public catalog partitioned for sectioned display
type CatalogSections struct {
	BreedingStock []*Rabbit `json:"breedingStock"`
	NewLitter     []*Rabbit `json:"newLitter"`
	Other         []*Rabbit `json:"other"`
}

// PartitionCatalog splits the visible rabbit set into breeding stock, new
// litter (born within the last 3 calendar months relative to now) and the
// rest. The cutoff uses calendar-month subtraction, not a fixed 90-day
// window, so the exact day distance shifts at month boundaries. A birth
// date that fails to parse counts as old and lands in Other.
func PartitionCatalog(rabbits []*Rabbit, now time.Time) CatalogSections {
	cutoff := now.AddDate(0, -newLitterWindowMonths, 0)

	sections := CatalogSections{
		BreedingStock: []*Rabbit{},
		NewLitter:     []*Rabbit{},
		Other:         []*Rabbit{},
	}

	for _, r := range rabbits {
		if r.IsBreedingStock {
			sections.BreedingStock = append(sections.BreedingStock, r)
			continue
		}
		born, ok := ParseDate(r.BirthDate)
		if ok && !born.Before(cutoff) {
			sections.NewLitter = append(sections.NewLitter, r)
			continue
		}
		sections.Other = append(sections.Other, r)
	}

	return sections
}

// DisplayPrice computes the price shown in the catalog. Without a discount
// the base price passes through exactly. With one, the stored percent
// applies, falling back to DefaultDiscountPercent when no percent was
// recorded. The result is not rounded; formatting happens at render time.
func DisplayPrice(basePrice float64, hasDiscount bool, discountPercent int) float64 {
	if !hasDiscount {
		return basePrice
	}
	pct := discountPercent
	if pct <= 0 {
		pct = DefaultDiscountPercent
	}
	return basePrice - basePrice*float64(pct)/100
}
