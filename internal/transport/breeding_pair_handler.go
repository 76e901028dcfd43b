package transport

import (
	"net/http"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpsertPairRequest represents the breeding pair create-or-replace payload
type UpsertPairRequest struct {
	ID                string `json:"id" validate:"required"`
	SireID            string `json:"sireId" validate:"required"`
	DamID             string `json:"damId" validate:"required"`
	MatingDate        string `json:"matingDate" validate:"required"`
	ExpectedBirthDate string `json:"expectedBirthDate"`
	ActualBirthDate   string `json:"actualBirthDate"`
	Status            string `json:"status" validate:"omitempty,oneof=scheduled in-progress completed cancelled"`
	Notes             string `json:"notes"`
}

// PatchPairRequest represents a partial breeding pair update
type PatchPairRequest struct {
	ID string `json:"id" validate:"required"`
	domain.BreedingPairPatch
}

// BreedingPairHandler handles HTTP requests for breeding pair CRUD
type BreedingPairHandler struct {
	breedingService service.BreedingService
	logger          *zap.Logger
}

// NewBreedingPairHandler creates a new BreedingPairHandler
func NewBreedingPairHandler(breedingService service.BreedingService, logger *zap.Logger) *BreedingPairHandler {
	return &BreedingPairHandler{
		breedingService: breedingService,
		logger:          logger,
	}
}

// RegisterRoutes registers the breeding pair admin routes
func (h *BreedingPairHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/breeding-pairs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Upsert)
		r.Patch("/", h.Patch)
		r.Delete("/", h.Delete)
	})
}

// Upsert handles create-or-replace of a breeding pair
func (h *BreedingPairHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertPairRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Breeding pair upsert validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.UpsertPairInput{
		ID:                req.ID,
		SireID:            req.SireID,
		DamID:             req.DamID,
		MatingDate:        req.MatingDate,
		ExpectedBirthDate: req.ExpectedBirthDate,
		ActualBirthDate:   req.ActualBirthDate,
		Status:            domain.PairStatus(req.Status),
		Notes:             req.Notes,
	}

	if err := h.breedingService.UpsertPair(r.Context(), input); err != nil {
		h.logger.Error("Breeding pair upsert failed", zap.String("pair_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Breeding pair upserted", zap.String("pair_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Patch handles a partial update of a breeding pair
func (h *BreedingPairHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchPairRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Breeding pair patch validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.breedingService.PatchPair(r.Context(), req.ID, req.BreedingPairPatch); err != nil {
		h.logger.Error("Breeding pair patch failed", zap.String("pair_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Breeding pair patched", zap.String("pair_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Delete handles unconditional deletion by id
func (h *BreedingPairHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.breedingService.DeletePair(r.Context(), id); err != nil {
		h.logger.Error("Breeding pair delete failed", zap.String("pair_id", id), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Breeding pair deleted", zap.String("pair_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Get handles retrieval of a single breeding pair
func (h *BreedingPairHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pair, err := h.breedingService.GetPair(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, pair)
}

// List returns all breeding pairs, most recent mating first
func (h *BreedingPairHandler) List(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.breedingService.ListPairs(r.Context())
	if err != nil {
		h.logger.Error("Breeding pair list failed", zap.Error(err))
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, pairs)
}
