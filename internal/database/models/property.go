package models

import "time"

type PropertyType string

const (
	PropertyTypeSingleFamily PropertyType = "single_family"
	PropertyTypeTownhome     PropertyType = "townhome"
	PropertyTypeMulti        PropertyType = "multi"
	PropertyTypeApt          PropertyType = "apt"
	PropertyTypeLand         PropertyType = "land"
)

var PropertyTypes = []PropertyType{
	PropertyTypeSingleFamily, PropertyTypeTownhome, PropertyTypeMulti, PropertyTypeApt, PropertyTypeLand,
}

type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "draft"
	PropertyStatusActive    PropertyStatus = "active"
	PropertyStatusOffmarket PropertyStatus = "offmarket"
)

var PropertyStatuses = []PropertyStatus{PropertyStatusDraft, PropertyStatusActive, PropertyStatusOffmarket}

// Property is a building or parcel. It is the only soft-deleted model:
// DeletedAt marks the row invisible while keeping it and its units and
// documents in place.
type Property struct {
	Base
	Tenant
	OwnerID    *string        `gorm:"type:varchar(26);index" json:"owner_id"`
	Address1   string         `gorm:"size:255;not null" json:"address1"`
	Address2   *string        `gorm:"size:255" json:"address2"`
	City       string         `gorm:"size:100;not null" json:"city"`
	State      string         `gorm:"size:100;not null" json:"state"`
	PostalCode string         `gorm:"size:20;not null" json:"postal_code"`
	County     *string        `gorm:"size:100" json:"county"`
	Lat        *float64       `json:"lat"`
	Lng        *float64       `json:"lng"`
	Type       PropertyType   `gorm:"size:20;not null" json:"type"`
	YearBuilt  *int           `json:"year_built"`
	Status     PropertyStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	Search     *string        `gorm:"type:text" json:"search"`
	DeletedAt  *time.Time     `gorm:"index" json:"-"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	Owner        *Owner        `gorm:"foreignKey:OwnerID" json:"-"`
	Units        []Unit        `gorm:"foreignKey:PropertyID" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}
