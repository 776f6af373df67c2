package models

// Owner is the legal owner of one or more properties.
type Owner struct {
	Base
	Tenant
	LegalName    string  `gorm:"size:255;not null" json:"legal_name"`
	ContactEmail *string `gorm:"size:255" json:"contact_email"`
	Phone        *string `gorm:"size:50" json:"phone"`
	Notes        *string `gorm:"type:text" json:"notes"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	Properties   []Property    `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Owner) TableName() string {
	return "owners"
}
