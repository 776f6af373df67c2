package models

type UnitStatus string

const (
	UnitStatusVacant   UnitStatus = "vacant"
	UnitStatusOccupied UnitStatus = "occupied"
	UnitStatusDown     UnitStatus = "down"
)

var UnitStatuses = []UnitStatus{UnitStatusVacant, UnitStatusOccupied, UnitStatusDown}

// Unit is a rentable space within a property.
type Unit struct {
	Base
	Tenant
	PropertyID string     `gorm:"type:varchar(26);index;not null" json:"property_id"`
	UnitLabel  string     `gorm:"size:50;not null" json:"unit_label"`
	Beds       *int       `json:"beds"`
	Baths      *float64   `json:"baths"`
	Sqft       *int       `json:"sqft"`
	MarketRent *int       `json:"market_rent"`
	Status     UnitStatus `gorm:"size:20;not null;default:'vacant'" json:"status"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	Property     *Property     `gorm:"foreignKey:PropertyID" json:"-"`
}

func (Unit) TableName() string {
	return "units"
}
