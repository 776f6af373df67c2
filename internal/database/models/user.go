package models

// User is an application user. Credentials live with the external identity
// provider.
type User struct {
	Base
	Email string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name  *string `gorm:"size:255" json:"name"`

	Memberships []UserOrgRole `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
