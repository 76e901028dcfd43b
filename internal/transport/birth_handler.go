package transport

import (
	"net/http"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpsertBirthRequest represents the birth record create-or-replace payload
type UpsertBirthRequest struct {
	ID             string `json:"id" validate:"required"`
	BreedingPairID string `json:"breedingPairId" validate:"required"`
	BirthDate      string `json:"birthDate" validate:"required"`
	TotalKits      *int   `json:"totalKits" validate:"omitempty,gte=0"`
	LiveKits       *int   `json:"liveKits" validate:"omitempty,gte=0"`
	Notes          string `json:"notes"`
}

// PatchBirthRequest represents a partial birth record update
type PatchBirthRequest struct {
	ID string `json:"id" validate:"required"`
	domain.BirthPatch
}

// BirthHandler handles HTTP requests for birth records
type BirthHandler struct {
	breedingService service.BreedingService
	logger          *zap.Logger
}

// NewBirthHandler creates a new BirthHandler
func NewBirthHandler(breedingService service.BreedingService, logger *zap.Logger) *BirthHandler {
	return &BirthHandler{
		breedingService: breedingService,
		logger:          logger,
	}
}

// RegisterRoutes registers the birth record admin routes
func (h *BirthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/births", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Upsert)
		r.Patch("/", h.Patch)
		r.Delete("/", h.Delete)
	})
}

// Upsert handles create-or-replace of a birth record
func (h *BirthHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertBirthRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Birth upsert validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.UpsertBirthInput{
		ID:             req.ID,
		BreedingPairID: req.BreedingPairID,
		BirthDate:      req.BirthDate,
		TotalKits:      req.TotalKits,
		LiveKits:       req.LiveKits,
		Notes:          req.Notes,
	}

	if err := h.breedingService.UpsertBirth(r.Context(), input); err != nil {
		h.logger.Error("Birth upsert failed", zap.String("birth_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Birth upserted", zap.String("birth_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Patch handles a partial update of a birth record
func (h *BirthHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchBirthRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Birth patch validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.breedingService.PatchBirth(r.Context(), req.ID, req.BirthPatch); err != nil {
		h.logger.Error("Birth patch failed", zap.String("birth_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Birth patched", zap.String("birth_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Delete handles unconditional deletion by id
func (h *BirthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.breedingService.DeleteBirth(r.Context(), id); err != nil {
		h.logger.Error("Birth delete failed", zap.String("birth_id", id), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Birth deleted", zap.String("birth_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Get handles retrieval of a single birth record
func (h *BirthHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	birth, err := h.breedingService.GetBirth(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, birth)
}

// List returns all birth records, newest first
func (h *BirthHandler) List(w http.ResponseWriter, r *http.Request) {
	births, err := h.breedingService.ListBirths(r.Context())
	if err != nil {
		h.logger.Error("Birth list failed", zap.Error(err))
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, births)
}
