package models

import "strings"

// Document is metadata for a file held in object storage under StorageKey.
type Document struct {
	Base
	Tenant
	RelatedType *RelatedKind `gorm:"size:20;index:idx_documents_related" json:"related_type"`
	RelatedID   *string      `gorm:"type:varchar(26);index:idx_documents_related" json:"related_id"`
	Filename    string       `gorm:"size:255;not null" json:"filename"`
	MimeType    string       `gorm:"size:100;not null" json:"mime_type"`
	StorageKey  string       `gorm:"size:255;not null" json:"storage_key"`
	Bytes       *int64       `json:"bytes"`
	UploadedBy  *string      `gorm:"type:varchar(26)" json:"uploaded_by"`

	Organization *Organization `gorm:"foreignKey:OrgID" json:"-"`
	Uploader     *User         `gorm:"foreignKey:UploadedBy" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) Related() (Related, bool) {
	return related(d.RelatedType, d.RelatedID)
}

// StorageKeyPrefix is the object-store namespace owned by orgID.
func StorageKeyPrefix(orgID string) string {
	return orgID + "/"
}

// StorageKeyOwnedBy reports whether key names an object inside orgID's
// namespace. Keys with empty or dot segments are never owned.
func StorageKeyOwnedBy(orgID, key string) bool {
	if orgID == "" {
		return false
	}
	rest, ok := strings.CutPrefix(key, StorageKeyPrefix(orgID))
	if !ok || rest == "" {
		return false
	}
	for _, seg := range strings.Split(rest, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
