package models

import "gorm.io/datatypes"

type LeadSource string

const (
	LeadSourceZillow    LeadSource = "zillow"
	LeadSourceWebsite   LeadSource = "website"
	LeadSourceReferral  LeadSource = "referral"
	LeadSourceWholesale LeadSource = "wholesale"
	LeadSourceAgent     LeadSource = "agent"
	LeadSourceImport    LeadSource = "import"
	LeadSourceOther     LeadSource = "other"
)

var LeadSources = []LeadSource{
	LeadSourceZillow, LeadSourceWebsite, LeadSourceReferral, LeadSourceWholesale,
	LeadSourceAgent, LeadSourceImport, LeadSourceOther,
}

type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageQualified LeadStage = "qualified"
	LeadStageToured    LeadStage = "toured"
	LeadStageApplied   LeadStage = "applied"
	LeadStageWon       LeadStage = "won"
	LeadStageLost      LeadStage = "lost"
)

var LeadStages = []LeadStage{
	LeadStageNew, LeadStageQualified, LeadStageToured, LeadStageApplied, LeadStageWon, LeadStageLost,
}

// Lead is a prospective tenant or investor contact.
type Lead struct {
	Base
	Tenant
	Source     *LeadSource    `gorm:"size:20" json:"source"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      *string        `gorm:"size:255" json:"email"`
	Phone      *string        `gorm:"size:50" json:"phone"`
	Tags       datatypes.JSON `json:"tags"` // ordered list of strings
	Stage      LeadStage      `gorm:"size:20;not null;default:'new'" json:"stage"`
	AssignedTo *string        `gorm:"type:varchar(26);index" json:"assigned_to"`
	Notes      *string        `gorm:"type:text" json:"notes"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	AssignedUser *User         `gorm:"foreignKey:AssignedTo" json:"-"`
	Deals        []Deal        `gorm:"foreignKey:LeadID" json:"-"`
}

func (Lead) TableName() string {
	return "leads"
}
