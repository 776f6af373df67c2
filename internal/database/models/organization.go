package models

type Organization struct {
	Base
	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;uniqueIndex;not null" json:"slug"`

	// Relationships
	Members []UserOrgRole `gorm:"foreignKey:OrgID" json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleAgent  Role = "agent"
	RoleViewer Role = "viewer"
)

var Roles = []Role{RoleOwner, RoleAdmin, RoleAgent, RoleViewer}

// UserOrgRole is a user's membership in an organization.
type UserOrgRole struct {
	Base
	UserID string `gorm:"type:varchar(26);not null;uniqueIndex:idx_user_org" json:"user_id"`
	OrgID  string `gorm:"type:varchar(26);not null;uniqueIndex:idx_user_org;index" json:"org_id"`
	Role   Role   `gorm:"size:20;not null;default:'viewer'" json:"role"`

	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
}

func (UserOrgRole) TableName() string {
	return "user_org_roles"
}
