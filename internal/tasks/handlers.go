package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/storage"
	"gorm.io/gorm"
)

// DefaultSweepLookback is used when a sweep payload names no window.
const DefaultSweepLookback = 48

type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
	store  storage.ObjectStore
}

// NewHandler returns a handler; store may be nil when object storage is
// not configured, in which case purges are dropped without retry.
func NewHandler(db *gorm.DB, logger *slog.Logger, store storage.ObjectStore) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
		store:  store,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeDocumentPurge, h.HandleDocumentPurge)
	mux.HandleFunc(TypeBlobSweep, h.HandleBlobSweep)
}

func (h *Handler) HandleDocumentPurge(ctx context.Context, t *asynq.Task) error {
	var payload DocumentPurgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.StorageKey == "" {
		return fmt.Errorf("empty storage key: %w", asynq.SkipRetry)
	}
	if h.store == nil {
		return fmt.Errorf("object storage not configured: %w", asynq.SkipRetry)
	}

	purged, err := h.purge(ctx, payload.OrgID, payload.StorageKey)
	if err != nil {
		return err
	}

	h.logger.Info("document purge finished",
		"org_id", payload.OrgID,
		"document_id", payload.DocumentID,
		"purged", purged,
	)
	return nil
}

// HandleBlobSweep replays purges for documents deleted within the lookback
// window, covering purge tasks that were never enqueued or ran out of
// retries. The audit log supplies each deleted document's storage key.
func (h *Handler) HandleBlobSweep(ctx context.Context, t *asynq.Task) error {
	var payload BlobSweepPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w", err)
		}
	}
	if payload.LookbackHours <= 0 {
		payload.LookbackHours = DefaultSweepLookback
	}
	if h.store == nil {
		h.logger.Debug("skipping blob sweep, object storage not configured")
		return nil
	}

	since := time.Now().UTC().Add(-time.Duration(payload.LookbackHours) * time.Hour)
	var entries []models.AuditLog
	if err := h.db.WithContext(ctx).
		Where("entity = ? AND action = ? AND created_at >= ?", "Document", models.AuditDelete, since).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return fmt.Errorf("loading deleted documents: %w", err)
	}

	var purged, failed int
	for _, entry := range entries {
		var doc models.Document
		if err := json.Unmarshal(entry.Before, &doc); err != nil || doc.StorageKey == "" {
			h.logger.Warn("audit entry has no usable document snapshot", "audit_id", entry.ID)
			continue
		}

		ok, err := h.purge(ctx, entry.OrgID, doc.StorageKey)
		if err != nil {
			h.logger.Error("sweep purge failed", "document_id", entry.EntityID, "error", err)
			failed++
			continue
		}
		if ok {
			purged++
		}
	}

	h.logger.Info("blob sweep finished",
		"lookback_hours", payload.LookbackHours,
		"candidates", len(entries),
		"purged", purged,
		"failed", failed,
	)
	if failed > 0 {
		return fmt.Errorf("blob sweep: %d of %d purges failed", failed, len(entries))
	}
	return nil
}

// purge deletes key unless it lies outside orgID's namespace or a live
// document of any tenant still points at it.
func (h *Handler) purge(ctx context.Context, orgID, key string) (bool, error) {
	if !models.StorageKeyOwnedBy(orgID, key) {
		h.logger.Warn("storage key outside tenant namespace, keeping blob", "org_id", orgID, "key", key)
		return false, nil
	}

	var live int64
	if err := h.db.WithContext(ctx).Model(&models.Document{}).
		Where("storage_key = ?", key).
		Count(&live).Error; err != nil {
		return false, fmt.Errorf("checking live references: %w", err)
	}
	if live > 0 {
		h.logger.Info("storage key still referenced, keeping blob", "org_id", orgID, "live", live)
		return false, nil
	}

	if err := h.store.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("deleting blob: %w", err)
	}
	return true, nil
}

// EnqueueDocumentPurge schedules removal of doc's blob. Failures are
// logged only; the sweep picks up anything missed.
func EnqueueDocumentPurge(ctx context.Context, enq Enqueuer, logger *slog.Logger, doc *models.Document) {
	if enq == nil || doc == nil || doc.StorageKey == "" {
		return
	}

	task, err := NewDocumentPurgeTask(DocumentPurgePayload{
		OrgID:      doc.OrgID,
		DocumentID: doc.ID,
		StorageKey: doc.StorageKey,
	})
	if err != nil {
		logger.Error("failed to build purge task", "document_id", doc.ID, "error", err)
		return
	}

	info, err := enq.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("failed to enqueue purge task", "document_id", doc.ID, "error", err)
		return
	}
	logger.Debug("purge task enqueued", "document_id", doc.ID, "task_id", info.ID)
}
