// Package repository implements create, list, get, patch and delete for any
// tenant-owned model described by a schema.Descriptor. Every read is
// filtered by org_id and every mutation commits together with its audit
// entry.
package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/audit"
	"github.com/hugh/scoutzos/internal/database"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/ids"
	"github.com/hugh/scoutzos/internal/paging"
	"github.com/hugh/scoutzos/internal/schema"
	"gorm.io/gorm"
)

// Repository is safe for concurrent use; it holds no per-request state.
type Repository[T any] struct {
	db       *gorm.DB
	desc     *schema.Descriptor
	recorder *audit.Recorder
	logger   *slog.Logger

	afterDelete []func(ctx context.Context, tenant string, rec *T)
}

type Option[T any] func(*Repository[T])

// WithAfterDelete registers fn to run once a delete has committed.
func WithAfterDelete[T any](fn func(ctx context.Context, tenant string, rec *T)) Option[T] {
	return func(r *Repository[T]) {
		r.afterDelete = append(r.afterDelete, fn)
	}
}

func New[T any](db *gorm.DB, desc *schema.Descriptor, recorder *audit.Recorder, logger *slog.Logger, opts ...Option[T]) *Repository[T] {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Repository[T]{
		db:       db,
		desc:     desc,
		recorder: recorder,
		logger:   logger.With("entity", desc.Entity),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository[T]) Create(ctx context.Context, tenant string, actor *string, in schema.Input) (*T, error) {
	values, err := r.desc.ValidateCreate(in)
	if err != nil {
		return nil, err
	}
	if err := r.desc.ValidateTenant(tenant, values); err != nil {
		return nil, err
	}

	var rec T
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTenant(tx, tenant); err != nil {
			return err
		}
		if err := r.checkReferences(tx, tenant, values); err != nil {
			return err
		}

		id := ids.New()
		now := time.Now().UTC()
		row := make(map[string]interface{}, len(values)+4)
		for k, v := range values {
			row[k] = v
		}
		row["id"] = id
		row["org_id"] = tenant
		row["created_at"] = now
		row["updated_at"] = now

		if err := tx.Model(new(T)).Create(row).Error; err != nil {
			return r.storageError("create", err)
		}
		if err := tx.Where("id = ?", id).First(&rec).Error; err != nil {
			return r.storageError("reload", err)
		}

		return r.recorder.Record(ctx, tx, audit.Entry{
			OrgID:    tenant,
			Actor:    actor,
			Action:   models.AuditCreate,
			Entity:   r.desc.Entity,
			EntityID: id,
			After:    rec,
		})
	})
	if err != nil {
		return nil, r.fail("create", err)
	}

	r.logger.Info("record created", "org_id", tenant, "id", idOf(&rec))
	return &rec, nil
}

// List returns one page of the tenant's records in insertion order.
func (r *Repository[T]) List(ctx context.Context, tenant string, params paging.Params) (paging.Page[T], error) {
	if err := params.Validate(); err != nil {
		return paging.Page[T]{}, err
	}

	query := r.scope(r.db.WithContext(ctx).Model(new(T)), tenant)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return paging.Page[T]{}, r.fail("count", r.storageError("count", err))
	}

	items := make([]T, 0, params.PageSize)
	if err := query.Order("created_at ASC, id ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&items).Error; err != nil {
		return paging.Page[T]{}, r.fail("list", r.storageError("list", err))
	}

	return paging.Page[T]{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// Get returns NotFound for a missing id, an id owned by another tenant and a
// soft-deleted record alike.
func (r *Repository[T]) Get(ctx context.Context, tenant, id string) (*T, error) {
	rec, err := r.find(r.db.WithContext(ctx), tenant, id)
	if err != nil {
		return nil, r.fail("get", err)
	}
	return rec, nil
}

// Patch writes only the keys present in partial. An explicit null clears a
// nullable field. An empty partial refreshes updated_at and nothing else.
func (r *Repository[T]) Patch(ctx context.Context, tenant string, actor *string, id string, partial schema.Input) (*T, error) {
	values, err := r.desc.ValidatePatch(partial)
	if err != nil {
		return nil, err
	}
	if err := r.desc.ValidateTenant(tenant, values); err != nil {
		return nil, err
	}

	var after *T
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := r.find(tx, tenant, id)
		if err != nil {
			return err
		}
		if err := r.checkReferences(tx, tenant, values); err != nil {
			return err
		}

		row := make(map[string]interface{}, len(values)+1)
		for k, v := range values {
			row[k] = v
		}
		row["updated_at"] = time.Now().UTC()

		if err := r.scope(tx.Model(new(T)), tenant).Where("id = ?", id).Updates(row).Error; err != nil {
			return r.storageError("update", err)
		}

		after, err = r.find(tx, tenant, id)
		if err != nil {
			return err
		}

		return r.recorder.Record(ctx, tx, audit.Entry{
			OrgID:    tenant,
			Actor:    actor,
			Action:   models.AuditUpdate,
			Entity:   r.desc.Entity,
			EntityID: id,
			Before:   before,
			After:    after,
		})
	})
	if err != nil {
		return nil, r.fail("patch", err)
	}

	r.logger.Info("record updated", "org_id", tenant, "id", id, "fields", len(values))
	return after, nil
}

// Delete soft deletes when the descriptor says so and removes the row
// otherwise. A record that is already gone is NotFound.
func (r *Repository[T]) Delete(ctx context.Context, tenant string, actor *string, id string) error {
	var before *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		before, err = r.find(tx, tenant, id)
		if err != nil {
			return err
		}

		query := r.scope(tx.Model(new(T)), tenant).Where("id = ?", id)
		if r.desc.SoftDelete {
			now := time.Now().UTC()
			err = query.Updates(map[string]interface{}{
				"deleted_at": now,
				"updated_at": now,
			}).Error
		} else {
			err = query.Delete(new(T)).Error
		}
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperr.Conflict(r.desc.Entity+" is still referenced by other records", err)
			}
			return r.storageError("delete", err)
		}

		return r.recorder.Record(ctx, tx, audit.Entry{
			OrgID:    tenant,
			Actor:    actor,
			Action:   models.AuditDelete,
			Entity:   r.desc.Entity,
			EntityID: id,
			Before:   before,
		})
	})
	if err != nil {
		return r.fail("delete", err)
	}

	r.logger.Info("record deleted", "org_id", tenant, "id", id, "soft", r.desc.SoftDelete)
	for _, fn := range r.afterDelete {
		fn(ctx, tenant, before)
	}
	return nil
}

func (r *Repository[T]) scope(tx *gorm.DB, tenant string) *gorm.DB {
	tx = tx.Where("org_id = ?", tenant)
	if r.desc.SoftDelete {
		tx = tx.Where("deleted_at IS NULL")
	}
	return tx
}

func (r *Repository[T]) find(tx *gorm.DB, tenant, id string) (*T, error) {
	if !ids.Valid(id) {
		return nil, apperr.NotFound(r.desc.Entity)
	}

	var rec T
	err := r.scope(tx.Model(new(T)), tenant).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(r.desc.Entity)
	}
	if err != nil {
		return nil, r.storageError("fetch", err)
	}
	return &rec, nil
}

// checkReferences verifies that every id in values points at an existing
// row. Tenant-owned targets must belong to the same tenant, so a foreign
// id reads the same as a missing one.
func (r *Repository[T]) checkReferences(tx *gorm.DB, tenant string, values schema.Values) error {
	errs := make(map[string]string)
	for _, ref := range r.desc.References(values) {
		query := tx.Table(ref.Target.Table).Where("id = ?", ref.ID)
		if ref.Target.Scoped {
			query = query.Where("org_id = ?", tenant)
		}
		if ref.Target.SoftDelete {
			query = query.Where("deleted_at IS NULL")
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return r.storageError("check "+ref.Field, err)
		}
		if count == 0 {
			errs[ref.Field] = ref.Target.Entity + " not found"
		}
	}
	if len(errs) > 0 {
		return apperr.Validation("Validation failed", errs)
	}
	return nil
}

func checkTenant(tx *gorm.DB, tenant string) error {
	if !ids.Valid(tenant) {
		return apperr.Field("org_id", "organization not found")
	}
	var count int64
	if err := tx.Model(&models.Organization{}).Where("id = ?", tenant).Count(&count).Error; err != nil {
		return apperr.Storage("check organization", err)
	}
	if count == 0 {
		return apperr.Field("org_id", "organization not found")
	}
	return nil
}

func (r *Repository[T]) storageError(op string, err error) error {
	if database.IsUniqueViolation(err) {
		return apperr.Conflict(r.desc.Entity+" already exists", err)
	}
	return apperr.Storage(op+" "+strings.ToLower(r.desc.Entity), err)
}

// fail converts err to an *apperr.Error and logs storage failures, whose
// cause never reaches the client.
func (r *Repository[T]) fail(op string, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Storage(op+" "+strings.ToLower(r.desc.Entity), err)
	}
	if e.Kind == apperr.KindStorage {
		r.logger.Error("repository operation failed", "op", op, "error", err)
	}
	return e
}

type identified interface {
	GetID() string
}

func idOf(v any) string {
	if rec, ok := v.(identified); ok {
		return rec.GetID()
	}
	return ""
}
