package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hugh/scoutzos/internal/api/middleware"
	"github.com/hugh/scoutzos/internal/api/render"
	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/audit"
	"github.com/hugh/scoutzos/internal/orgs"
	"github.com/hugh/scoutzos/internal/paging"
	"github.com/hugh/scoutzos/internal/schema"
	"gorm.io/gorm"
)

type AuditHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAuditHandler(db *gorm.DB, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{db: db, logger: logger}
}

// List handles GET /audit?entity=&entity_id=&page=&page_size=
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := paging.FromQuery(q)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}

	filter := audit.Filter{
		Entity:   q.Get("entity"),
		EntityID: q.Get("entity_id"),
	}
	if filter.Entity != "" && !auditedEntity(filter.Entity) {
		render.Error(w, r, h.logger, apperr.Field("entity", "unknown entity"))
		return
	}

	page, err := audit.List(r.Context(), h.db, middleware.GetOrganizationID(r.Context()), filter, params)
	if err != nil {
		render.Error(w, r, h.logger, err)
		return
	}
	render.JSON(w, http.StatusOK, page)
}

// auditedEntity reports whether entity names something the audit log
// records: a registered resource, an organization or a membership.
func auditedEntity(entity string) bool {
	switch entity {
	case orgs.AuditEntityOrganization, orgs.AuditEntityMembership:
		return true
	}
	_, ok := schema.Lookup(entity)
	return ok
}
