package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/scoutzos/internal/api/middleware"
	"github.com/hugh/scoutzos/internal/api/render"
	"github.com/hugh/scoutzos/internal/paging"
	"github.com/hugh/scoutzos/internal/repository"
)

// ResourceHandler serves the list/create/get/patch/delete contract shared
// by every tenant-scoped entity. The tenant comes from RequireTenant and the
// actor, if any, from Actor.
type ResourceHandler[T any] struct {
	repo   *repository.Repository[T]
	logger *slog.Logger
}

func NewResourceHandler[T any](repo *repository.Repository[T], logger *slog.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{repo: repo, logger: logger}
}

// Routes registers the five operations relative to the resource's mount
// point.
func (h *ResourceHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Patch)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /{resource}?page=&page_size=
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	params, err := paging.FromQuery(r.URL.Query())
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	page, err := h.repo.List(r.Context(), middleware.GetOrganizationID(r.Context()), params)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	render.JSON(w, http.StatusOK, page)
}

// Create handles POST /{resource}
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	ctx := r.Context()
	rec, err := h.repo.Create(ctx, middleware.GetOrganizationID(ctx), middleware.GetActor(ctx), in)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	render.JSON(w, http.StatusCreated, rec)
}

// Get handles GET /{resource}/{id}
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.repo.Get(r.Context(), middleware.GetOrganizationID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	render.JSON(w, http.StatusOK, rec)
}

// Patch handles PATCH /{resource}/{id}. Only keys present in the body are
// written; an explicit null clears a nullable field.
func (h *ResourceHandler[T]) Patch(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	ctx := r.Context()
	rec, err := h.repo.Patch(ctx, middleware.GetOrganizationID(ctx), middleware.GetActor(ctx), chi.URLParam(r, "id"), in)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	render.JSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /{resource}/{id}
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.repo.Delete(ctx, middleware.GetOrganizationID(ctx), middleware.GetActor(ctx), chi.URLParam(r, "id")); err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	render.NoContent(w)
}
