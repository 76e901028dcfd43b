package transport

import (
	"net/http"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpsertGestationRequest represents the gestation create-or-replace payload
type UpsertGestationRequest struct {
	ID                 string `json:"id" validate:"required"`
	BreedingPairID     string `json:"breedingPairId" validate:"required"`
	NestBoxDate        string `json:"nestBoxDate"`
	EstimatedBirthDate string `json:"estimatedBirthDate"`
	Notes              string `json:"notes"`
}

// PatchGestationRequest represents a partial gestation update
type PatchGestationRequest struct {
	ID string `json:"id" validate:"required"`
	domain.GestationPatch
}

// GestationHandler handles HTTP requests for gestation tracking
type GestationHandler struct {
	breedingService service.BreedingService
	logger          *zap.Logger
}

// NewGestationHandler creates a new GestationHandler
func NewGestationHandler(breedingService service.BreedingService, logger *zap.Logger) *GestationHandler {
	return &GestationHandler{
		breedingService: breedingService,
		logger:          logger,
	}
}

// RegisterRoutes registers the gestation admin routes
func (h *GestationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/gestations", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Upsert)
		r.Patch("/", h.Patch)
		r.Delete("/", h.Delete)
	})
}

// Upsert handles create-or-replace of a gestation record
func (h *GestationHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertGestationRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Gestation upsert validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.UpsertGestationInput{
		ID:                 req.ID,
		BreedingPairID:     req.BreedingPairID,
		NestBoxDate:        req.NestBoxDate,
		EstimatedBirthDate: req.EstimatedBirthDate,
		Notes:              req.Notes,
	}

	if err := h.breedingService.UpsertGestation(r.Context(), input); err != nil {
		h.logger.Error("Gestation upsert failed", zap.String("gestation_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Gestation upserted", zap.String("gestation_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Patch handles a partial update of a gestation record
func (h *GestationHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchGestationRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Gestation patch validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.breedingService.PatchGestation(r.Context(), req.ID, req.GestationPatch); err != nil {
		h.logger.Error("Gestation patch failed", zap.String("gestation_id", req.ID), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Gestation patched", zap.String("gestation_id", req.ID))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Delete handles unconditional deletion by id
func (h *GestationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.breedingService.DeleteGestation(r.Context(), id); err != nil {
		h.logger.Error("Gestation delete failed", zap.String("gestation_id", id), zap.Error(err))
		respondWriteError(w, err)
		return
	}

	h.logger.Info("Gestation deleted", zap.String("gestation_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, acknowledged)
}

// Get handles retrieval of a single gestation record
func (h *GestationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	gestation, err := h.breedingService.GetGestation(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, gestation)
}

// List returns all gestation records, newest first
func (h *GestationHandler) List(w http.ResponseWriter, r *http.Request) {
	gestations, err := h.breedingService.ListGestations(r.Context())
	if err != nil {
		h.logger.Error("Gestation list failed", zap.Error(err))
		respondReadError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, gestations)
}
