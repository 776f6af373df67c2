package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeDocumentPurge = "document:purge"
	TypeBlobSweep     = "document:sweep"
)

// Enqueuer is the part of *asynq.Client the API needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

var _ Enqueuer = (*asynq.Client)(nil)

// DocumentPurgePayload names the blob left behind by a deleted document
type DocumentPurgePayload struct {
	OrgID      string `json:"org_id"`
	DocumentID string `json:"document_id"`
	StorageKey string `json:"storage_key"`
}

func NewDocumentPurgeTask(payload DocumentPurgePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDocumentPurge, data,
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	), nil
}

// BlobSweepPayload bounds how far back the sweep reads the audit log
type BlobSweepPayload struct {
	LookbackHours int `json:"lookback_hours"`
}

func NewBlobSweepTask(payload BlobSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBlobSweep, data, asynq.Queue("low")), nil
}
