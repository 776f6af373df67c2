package models

import "gorm.io/datatypes"

type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditLog is an append-only record of one mutation. Before is null on
// create and After is null on delete.
type AuditLog struct {
	Base
	Tenant
	ActorUserID *string        `gorm:"type:varchar(26);index" json:"actor_user_id"`
	Action      AuditAction    `gorm:"size:100;not null" json:"action"`
	Entity      string         `gorm:"size:100;not null;index:idx_audit_entity" json:"entity"`
	EntityID    string         `gorm:"type:varchar(26);not null;index:idx_audit_entity" json:"entity_id"`
	Before      datatypes.JSON `json:"before"`
	After       datatypes.JSON `json:"after"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
