package models

type ContactType string

const (
	ContactTypeOwner    ContactType = "owner"
	ContactTypeVendor   ContactType = "vendor"
	ContactTypeInvestor ContactType = "investor"
	ContactTypeTenant   ContactType = "tenant"
	ContactTypeBroker   ContactType = "broker"
	ContactTypeLender   ContactType = "lender"
)

var ContactTypes = []ContactType{
	ContactTypeOwner, ContactTypeVendor, ContactTypeInvestor, ContactTypeTenant, ContactTypeBroker, ContactTypeLender,
}

type Contact struct {
	Base
	Tenant
	Name    string      `gorm:"size:255;not null" json:"name"`
	Email   *string     `gorm:"size:255" json:"email"`
	Phone   *string     `gorm:"size:50" json:"phone"`
	Company *string     `gorm:"size:255" json:"company"`
	Type    ContactType `gorm:"size:20;not null" json:"type"`
	Notes   *string     `gorm:"type:text" json:"notes"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
}

func (Contact) TableName() string {
	return "contacts"
}
