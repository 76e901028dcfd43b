package transport

import (
	"net/http"
	"time"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogRabbit is a catalog entry with its computed display price
type CatalogRabbit struct {
	ID               string   `json:"id"`
	Breed            string   `json:"breed"`
	Sex              string   `json:"sex"`
	Price            float64  `json:"price"`
	HasDiscount      bool     `json:"hasDiscount"`
	DiscountPercent  int      `json:"discountPercent"`
	DisplayPrice     float64  `json:"displayPrice"`
	BirthDate        string   `json:"birthDate"`
	Availability     string   `json:"availability"`
	MainPhoto        string   `json:"mainPhoto"`
	AdditionalPhotos []string `json:"additionalPhotos"`
}

// CatalogResponse is the sectioned public catalog
type CatalogResponse struct {
	BreedingStock []CatalogRabbit `json:"breedingStock"`
	NewLitter     []CatalogRabbit `json:"newLitter"`
	Other         []CatalogRabbit `json:"other"`
}

// CatalogHandler serves the public catalog
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public catalog route
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/catalog", h.Catalog)
}

// Catalog returns the visible rabbits partitioned into display sections.
// A failing backend yields an empty catalog rather than an error; the
// public page shows "no rabbits available" instead of breaking.
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	sections, err := h.catalogService.Catalog(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("Catalog fetch failed, serving empty catalog", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusOK, CatalogResponse{
			BreedingStock: []CatalogRabbit{},
			NewLitter:     []CatalogRabbit{},
			Other:         []CatalogRabbit{},
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CatalogResponse{
		BreedingStock: toCatalogRabbits(sections.BreedingStock),
		NewLitter:     toCatalogRabbits(sections.NewLitter),
		Other:         toCatalogRabbits(sections.Other),
	})
}

func toCatalogRabbits(rabbits []*domain.Rabbit) []CatalogRabbit {
	out := make([]CatalogRabbit, 0, len(rabbits))
	for _, r := range rabbits {
		out = append(out, CatalogRabbit{
			ID:               r.ID,
			Breed:            r.Breed,
			Sex:              string(r.Sex),
			Price:            r.Price,
			HasDiscount:      r.HasDiscount,
			DiscountPercent:  r.DiscountPercent,
			DisplayPrice:     domain.DisplayPrice(r.Price, r.HasDiscount, r.DiscountPercent),
			BirthDate:        r.BirthDate,
			Availability:     string(r.Availability),
			MainPhoto:        r.MainPhoto,
			AdditionalPhotos: r.AdditionalPhotos,
		})
	}
	return out
}
