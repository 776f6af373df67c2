package models

import (
	"time"

	"github.com/hugh/scoutzos/internal/ids"
	"gorm.io/gorm"
)

// Base model with a ULID primary key and timestamps
type Base struct {
	ID        string    `gorm:"type:varchar(26);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (b Base) GetID() string {
	return b.ID
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ids.New()
	}
	return nil
}

// Tenant is embedded by every organization-scoped model. OrgID is set at
// creation and never written again.
type Tenant struct {
	OrgID string `gorm:"type:varchar(26);index;not null" json:"org_id"`
}
