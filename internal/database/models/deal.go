package models

import "gorm.io/datatypes"

type DealType string

const (
	DealTypeAcquisition DealType = "acquisition"
	DealTypeLease       DealType = "lease"
	DealTypeManagement  DealType = "management"
)

var DealTypes = []DealType{DealTypeAcquisition, DealTypeLease, DealTypeManagement}

type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

var DealStatuses = []DealStatus{DealStatusOpen, DealStatusWon, DealStatusLost}

// Deal is a transaction that came out of a lead.
type Deal struct {
	Base
	Tenant
	LeadID     string          `gorm:"type:varchar(26);index;not null" json:"lead_id"`
	PropertyID *string         `gorm:"type:varchar(26);index" json:"property_id"`
	UnitID     *string         `gorm:"type:varchar(26);index" json:"unit_id"`
	Type       DealType        `gorm:"size:20;not null" json:"type"`
	Amount     *float64        `gorm:"type:numeric(12,2)" json:"amount"`
	Status     DealStatus      `gorm:"size:20;not null;default:'open'" json:"status"`
	CloseDate  *datatypes.Date `json:"close_date"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	Lead         *Lead         `gorm:"foreignKey:LeadID" json:"-"`
	Property     *Property     `gorm:"foreignKey:PropertyID" json:"-"`
	Unit         *Unit         `gorm:"foreignKey:UnitID" json:"-"`
}

func (Deal) TableName() string {
	return "deals"
}
