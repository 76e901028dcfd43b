package transport

import (
	"errors"
	"net/http"

	"rabbit-catalog/internal/middleware"
	"rabbit-catalog/internal/objectstore"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadResponse carries the public URL of a stored image
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadHandler handles multipart image uploads to object storage
type UploadHandler struct {
	store  *objectstore.Client
	logger *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(store *objectstore.Client, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers the upload admin route
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/upload", h.Upload)
}

// Upload accepts a multipart form with a "file" part and a "path" field
// naming the destination inside the bucket. It responds with the public
// URL of the stored object.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, objectstore.MaxUploadSize)

	if err := r.ParseMultipartForm(objectstore.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, objectstore.ErrTooLarge.Error())
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	path := r.FormValue("path")
	if path == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "path is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > objectstore.MaxUploadSize {
		middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, objectstore.ErrTooLarge.Error())
		return
	}

	url, err := h.store.Upload(r.Context(), path, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, objectstore.ErrNotConfigured):
			middleware.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, objectstore.ErrEmptyPath):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, objectstore.ErrTooLarge):
			middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
		default:
			h.logger.Error("Image upload failed", zap.String("path", path), zap.Error(err))
			middleware.RespondWithError(w, http.StatusBadGateway, "upload failed")
		}
		return
	}

	h.logger.Info("Image uploaded", zap.String("path", path), zap.Int64("size", header.Size))
	middleware.RespondWithJSON(w, http.StatusOK, UploadResponse{URL: url})
}
