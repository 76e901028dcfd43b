package transport

import (
	"net/http"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpsertRabbitRequest represents the rabbit create-or-replace payload
type UpsertRabbitRequest struct {
	ID               string   `json:"id" validate:"required"`
	Breed            string   `json:"breed" validate:"required"`
	Sex              string   `json:"sex" validate:"required,oneof=Male Female"`
	Price            float64  `json:"price" validate:"gte=0"`
	HasDiscount      bool     `json:"hasDiscount"`
	DiscountPercent  *int     `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
	BirthDate        string   `json:"birthDate"`
	Availability     string   `json:"availability" validate:"omitempty,oneof=Available NotAvailable"`
	MainPhoto        string   `json:"mainPhoto" validate:"required"`
	AdditionalPhotos []string `json:"additionalPhotos"`
	IsBreedingStock  bool     `json:"isBreedingStock"`
	Category         string   `json:"category" validate:"omitempty,oneof=breeding-stock for-sale sire dam"`
	Visible          *bool    `json:"visible"`
}

// PatchRabbitRequest represents a partial rabbit update: an id plus any
// subset of fields
type PatchRabbitRequest struct {
	ID string `json:"id" validate:"required"`
	domain.RabbitPatch
}

// RabbitHandler handles HTTP requests for rabbit CRUD
type RabbitHandler struct {
	rabbitService service.RabbitService
	logger        *zap.Logger
}

// NewRabbitHandler creates a new RabbitHandler
func NewRabbitHandler(rabbitService service.RabbitService, logger *zap.Logger) *RabbitHandler {
	return &RabbitHandler{
		rabbitService: rabbitService,
		logger:        logger,
	}
}

// RegisterRoutes registers the rabbit admin routes
func (h *RabbitHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/rabbits", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Upsert)
		r.Patch("/", h.Patch)
		r.Delete("/", h.Delete)
	})
}

// Upsert handles create-or-replace of a rabbit
func (h *RabbitHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRabbitRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Rabbit upsert validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, ok := domain.ToStorageDate(req.BirthDate); !ok {
		// Lenient passthrough: the value is stored as-is, but worth a trace
		h.logger.Warn("Rabbit birth date did not normalize",
			zap.String("rabbit_id", req.ID),
			zap.String("birth_date", req.BirthDate),
		)
	}

	input := service.UpsertRabbitInput{
		ID:               req.ID,
		Breed:            req.Breed,
		Sex:              domain.Sex(req.Sex),
		Price:            req.Price,
		HasDiscount:      req.HasDiscount,
		DiscountPercent:  req.DiscountPercent,
		BirthDate:        req.BirthDate,
		Availability:     domain.Availability(req.Availability),
		MainPhoto:        req.MainPhoto,
		AdditionalPhotos: req.AdditionalPhotos,
		IsBreedingStock:  req.IsBreedingStock,
		Category:         domain.Category(req.Category),
		Visible:          req.Visible,
	}

	if err := h.rabbitService.Upsert(r.Context(), input); err != nil {
		h.logger.Error("Rabbit upsert failed", zap.String("rabbit_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Rabbit upserted", zap.String("rabbit_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Patch handles a partial update of a rabbit
func (h *RabbitHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchRabbitRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Rabbit patch validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.rabbitService.Patch(r.Context(), req.ID, req.RabbitPatch); err != nil {
		h.logger.Error("Rabbit patch failed", zap.String("rabbit_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Rabbit patched", zap.String("rabbit_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Delete handles unconditional deletion by id
func (h *RabbitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.rabbitService.Delete(r.Context(), id); err != nil {
		h.logger.Error("Rabbit delete failed", zap.String("rabbit_id", id), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Rabbit deleted", zap.String("rabbit_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Get handles retrieval of a single rabbit
func (h *RabbitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rabbit, err := h.rabbitService.Get(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, rabbit)
}

// List returns every rabbit, including those hidden from the public catalog
func (h *RabbitHandler) List(w http.ResponseWriter, r *http.Request) {
	rabbits, err := h.rabbitService.List(r.Context())
	if err != nil {
		h.logger.Error("Rabbit list failed", zap.Error(err))
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, rabbits)
}
