package domain

import "time"

// PairStatus tracks the lifecycle of a breeding pair record
type PairStatus string

const (
	PairScheduled  PairStatus = "scheduled"
	PairInProgress PairStatus = "in-progress"
	PairCompleted  PairStatus = "completed"
	PairCancelled  PairStatus = "cancelled"
)

// BreedingPair records a mating event between one sire and one dam.
// Dates are kept in display form (DD-MM-YYYY); optional dates are empty
// strings when unset.
type BreedingPair struct {
	ID                string     `json:"id"`
	SireID            string     `json:"sireId"`
	DamID             string     `json:"damId"`
	MatingDate        string     `json:"matingDate"`
	ExpectedBirthDate string     `json:"expectedBirthDate"`
	ActualBirthDate   string     `json:"actualBirthDate"`
	Status            PairStatus `json:"status"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// BreedingPairPatch carries the fields of a partial update. Nil means "leave unchanged".
type BreedingPairPatch struct {
	MatingDate        *string     `json:"matingDate"`
	ExpectedBirthDate *string     `json:"expectedBirthDate"`
	ActualBirthDate   *string     `json:"actualBirthDate"`
	Status            *PairStatus `json:"status"`
	Notes             *string     `json:"notes"`
}

// Gestation tracks the pregnancy period that follows a breeding pair.
// Both dates may be blank; the backend derives them from the pair's
// mating date when left unset.
type Gestation struct {
	ID                 string    `json:"id"`
	BreedingPairID     string    `json:"breedingPairId"`
	NestBoxDate        string    `json:"nestBoxDate"`
	EstimatedBirthDate string    `json:"estimatedBirthDate"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// GestationPatch carries the fields of a partial update
type GestationPatch struct {
	NestBoxDate        *string `json:"nestBoxDate"`
	EstimatedBirthDate *string `json:"estimatedBirthDate"`
	Notes              *string `json:"notes"`
}

// Birth records the outcome of a gestation. Kit counts are nil when the
// breeder has not counted the litter yet.
type Birth struct {
	ID             string    `json:"id"`
	BreedingPairID string    `json:"breedingPairId"`
	BirthDate      string    `json:"birthDate"`
	TotalKits      *int      `json:"totalKits"`
	LiveKits       *int      `json:"liveKits"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BirthPatch carries the fields of a partial update
type BirthPatch struct {
	BirthDate *string `json:"birthDate"`
	TotalKits *int    `json:"totalKits"`
	LiveKits  *int    `json:"liveKits"`
	Notes     *string `json:"notes"`
}
