package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/scoutzos/internal/api/dto"
	"github.com/hugh/scoutzos/internal/api/middleware"
	"github.com/hugh/scoutzos/internal/api/render"
	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/repository"
	"github.com/hugh/scoutzos/internal/storage"
)

const defaultDownloadExpiry = 15 * time.Minute

// DocumentHandler hands out presigned download links for document blobs.
// Metadata CRUD goes through the generic ResourceHandler.
type DocumentHandler struct {
	repo   *repository.Repository[models.Document]
	store  storage.ObjectStore
	expiry time.Duration
	logger *slog.Logger
}

// NewDocumentHandler accepts a nil store; downloads then answer 503.
func NewDocumentHandler(repo *repository.Repository[models.Document], store storage.ObjectStore, expiry time.Duration, logger *slog.Logger) *DocumentHandler {
	if expiry <= 0 {
		expiry = defaultDownloadExpiry
	}
	return &DocumentHandler{repo: repo, store: store, expiry: expiry, logger: logger}
}

// Download handles GET /documents/{id}/download
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := h.repo.Get(ctx, middleware.GetOrganizationID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	if h.store == nil {
		render.Error(w, r, h.logger, apperr.Unavailable("document storage is not configured"))
		return
	}

	// Rows written before keys were namespaced may point anywhere.
	if !models.StorageKeyOwnedBy(doc.OrgID, doc.StorageKey) {
		h.logger.Warn("document key outside tenant namespace", "document_id", doc.ID, "org_id", doc.OrgID)
		render.Error(w, r, h.logger, apperr.NotFound("Document"))
		return
	}

	expiresAt := time.Now().UTC().Add(h.expiry)
	url, err := h.store.PresignGet(ctx, doc.StorageKey, h.expiry)
	if err != nil {
		render.Error(w, r, h.logger, apperr.Storage("presign document download", err))
		return
	}

	h.logger.Info("document download issued", "document_id", doc.ID, "org_id", doc.OrgID)
	render.JSON(w, http.StatusOK, dto.DownloadResponse{URL: url, ExpiresAt: expiresAt})
}
