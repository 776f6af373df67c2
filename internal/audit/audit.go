// Package audit appends and reads the per-tenant mutation log.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/paging"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry describes one mutation. Before is nil for creates, After is nil for
// deletes. Both are marshaled to JSON as they are.
type Entry struct {
	OrgID    string
	Actor    *string
	Action   models.AuditAction
	Entity   string
	EntityID string
	Before   any
	After    any
}

// Recorder writes entries inside the caller's transaction so the entry and
// the mutation commit or roll back together.
type Recorder struct {
	logger *slog.Logger
}

func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger}
}

// Record appends e using tx. A returned error must abort the transaction.
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, e Entry) error {
	before, err := snapshot(e.Before)
	if err != nil {
		return fmt.Errorf("encoding before snapshot: %w", err)
	}
	after, err := snapshot(e.After)
	if err != nil {
		return fmt.Errorf("encoding after snapshot: %w", err)
	}

	entry := models.AuditLog{
		Tenant:      models.Tenant{OrgID: e.OrgID},
		ActorUserID: e.Actor,
		Action:      e.Action,
		Entity:      e.Entity,
		EntityID:    e.EntityID,
		Before:      before,
		After:       after,
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}

	r.logger.Debug("audit entry recorded",
		"org_id", e.OrgID,
		"action", e.Action,
		"entity", e.Entity,
		"entity_id", e.EntityID,
	)
	return nil
}

func snapshot(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// Filter narrows List to one entity type and optionally one record.
type Filter struct {
	Entity   string
	EntityID string
}

// List returns a page of the tenant's audit log in the order it was written.
func List(ctx context.Context, db *gorm.DB, tenant string, f Filter, params paging.Params) (paging.Page[models.AuditLog], error) {
	if err := params.Validate(); err != nil {
		return paging.Page[models.AuditLog]{}, err
	}

	query := db.WithContext(ctx).Model(&models.AuditLog{}).Where("org_id = ?", tenant)
	if f.Entity != "" {
		query = query.Where("entity = ?", f.Entity)
	}
	if f.EntityID != "" {
		query = query.Where("entity_id = ?", f.EntityID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return paging.Page[models.AuditLog]{}, apperr.Storage("count audit entries", err)
	}

	items := make([]models.AuditLog, 0, params.PageSize)
	if err := query.Order("created_at ASC, id ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&items).Error; err != nil {
		return paging.Page[models.AuditLog]{}, apperr.Storage("list audit entries", err)
	}

	return paging.Page[models.AuditLog]{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}
