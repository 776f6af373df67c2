package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/scoutzos/internal/api/dto"
	"github.com/hugh/scoutzos/internal/api/middleware"
	"github.com/hugh/scoutzos/internal/api/render"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/orgs"
)

// OrganizationHandler serves organizations, users and memberships. None of
// these routes take a tenant header.
type OrganizationHandler struct {
	svc    *orgs.Service
	logger *slog.Logger
}

func NewOrganizationHandler(svc *orgs.Service, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{svc: svc, logger: logger}
}

// List handles GET /orgs. The response is a bare, unpaginated array.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusOK, list)
}

// Create handles POST /orgs
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrganizationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	org, err := h.svc.Create(r.Context(), middleware.GetActor(r.Context()), req.Name)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusCreated, org)
}

// Get handles GET /orgs/{id}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusOK, org)
}

// AddMember handles POST /orgs/{id}/members
func (h *OrganizationHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	m, err := h.svc.AddMember(r.Context(), middleware.GetActor(r.Context()), chi.URLParam(r, "id"), req.UserID, req.Role)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusCreated, m)
}

// ListMembers handles GET /orgs/{id}/members
func (h *OrganizationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusOK, dto.ListResponse[models.UserOrgRole]{Items: members})
}

// CreateUser handles POST /users
func (h *OrganizationHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.Email, req.Name)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusCreated, user)
}

// GetUser handles GET /users/{id}
func (h *OrganizationHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusOK, user)
}
