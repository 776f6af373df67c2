package schema

import "github.com/hugh/scoutzos/internal/database/models"

var (
	ownerTarget    = &Target{Entity: "Owner", Table: "owners", Scoped: true}
	propertyTarget = &Target{Entity: "Property", Table: "properties", Scoped: true, SoftDelete: true}
	unitTarget     = &Target{Entity: "Unit", Table: "units", Scoped: true}
	leadTarget     = &Target{Entity: "Lead", Table: "leads", Scoped: true}
	userTarget     = &Target{Entity: "User", Table: "users"}
)

var relatedKinds = EnumOf(models.RelatedKinds...)

var Owner = New("Owner", "owners", false,
	Field{Name: "legal_name", Kind: String, Required: true, MaxLen: 255},
	Field{Name: "contact_email", Kind: String, MaxLen: 255},
	Field{Name: "phone", Kind: String, MaxLen: 50},
	Field{Name: "notes", Kind: String},
)

var Property = New("Property", "properties", true,
	Field{Name: "owner_id", Kind: Ref, Target: ownerTarget},
	Field{Name: "address1", Kind: String, Required: true, MaxLen: 255},
	Field{Name: "address2", Kind: String, MaxLen: 255},
	Field{Name: "city", Kind: String, Required: true, MaxLen: 100},
	Field{Name: "state", Kind: String, Required: true, MaxLen: 100},
	Field{Name: "postal_code", Kind: String, Required: true, MaxLen: 20},
	Field{Name: "county", Kind: String, MaxLen: 100},
	Field{Name: "lat", Kind: Float},
	Field{Name: "lng", Kind: Float},
	Field{Name: "type", Kind: Enum, Required: true, Enum: EnumOf(models.PropertyTypes...)},
	Field{Name: "year_built", Kind: Int},
	Field{Name: "status", Kind: Enum, Enum: EnumOf(models.PropertyStatuses...), Default: string(models.PropertyStatusDraft)},
	Field{Name: "search", Kind: String},
)

var Unit = New("Unit", "units", false,
	Field{Name: "property_id", Kind: Ref, Required: true, Target: propertyTarget},
	Field{Name: "unit_label", Kind: String, Required: true, MaxLen: 50},
	Field{Name: "beds", Kind: Int},
	Field{Name: "baths", Kind: Float},
	Field{Name: "sqft", Kind: Int},
	Field{Name: "market_rent", Kind: Int},
	Field{Name: "status", Kind: Enum, Enum: EnumOf(models.UnitStatuses...), Default: string(models.UnitStatusVacant)},
)

var Lead = New("Lead", "leads", false,
	Field{Name: "name", Kind: String, Required: true, MaxLen: 255},
	Field{Name: "email", Kind: String, MaxLen: 255},
	Field{Name: "phone", Kind: String, MaxLen: 50},
	Field{Name: "source", Kind: Enum, Enum: EnumOf(models.LeadSources...)},
	Field{Name: "tags", Kind: StringList},
	Field{Name: "stage", Kind: Enum, Enum: EnumOf(models.LeadStages...), Default: string(models.LeadStageNew)},
	Field{Name: "assigned_to", Kind: Ref, Target: userTarget},
	Field{Name: "notes", Kind: String},
)

var Deal = New("Deal", "deals", false,
	Field{Name: "lead_id", Kind: Ref, Required: true, Target: leadTarget, CreateOnly: true},
	Field{Name: "property_id", Kind: Ref, Target: propertyTarget},
	Field{Name: "unit_id", Kind: Ref, Target: unitTarget},
	Field{Name: "type", Kind: Enum, Required: true, Enum: EnumOf(models.DealTypes...)},
	Field{Name: "amount", Kind: Float},
	Field{Name: "status", Kind: Enum, Enum: EnumOf(models.DealStatuses...), Default: string(models.DealStatusOpen)},
	Field{Name: "close_date", Kind: Date},
)

var Contact = New("Contact", "contacts", false,
	Field{Name: "name", Kind: String, Required: true, MaxLen: 255},
	Field{Name: "email", Kind: String, MaxLen: 255},
	Field{Name: "phone", Kind: String, MaxLen: 50},
	Field{Name: "company", Kind: String, MaxLen: 255},
	Field{Name: "type", Kind: Enum, Required: true, Enum: EnumOf(models.ContactTypes...)},
	Field{Name: "notes", Kind: String},
)

// Task and Document links are polymorphic: related_type is validated
// against the closed set of kinds, related_id only for shape.
var Task = New("Task", "tasks", false,
	Field{Name: "title", Kind: String, Required: true, MaxLen: 255},
	Field{Name: "description", Kind: String},
	Field{Name: "due_date", Kind: Date},
	Field{Name: "status", Kind: Enum, Enum: EnumOf(models.TaskStatuses...), Default: string(models.TaskStatusTodo)},
	Field{Name: "assigned_to", Kind: Ref, Target: userTarget},
	Field{Name: "related_type", Kind: Enum, Enum: relatedKinds},
	Field{Name: "related_id", Kind: String, MaxLen: 26},
)

var Document = New("Document", "documents", false,
	Field{Name: "related_type", Kind: Enum, Enum: relatedKinds},
	Field{Name: "related_id", Kind: String, MaxLen: 26},
	Field{Name: "filename", Kind: String, Required: true, MaxLen: 255},
	Field{Name: "mime_type", Kind: String, Required: true, MaxLen: 100},
	Field{Name: "storage_key", Kind: String, Required: true, MaxLen: 255, TenantKey: true},
	Field{Name: "bytes", Kind: Int},
	Field{Name: "uploaded_by", Kind: Ref, Target: userTarget},
)

// Registry indexes every tenant-scoped writable entity by name.
var Registry = map[string]*Descriptor{
	Owner.Entity:    Owner,
	Property.Entity: Property,
	Unit.Entity:     Unit,
	Lead.Entity:     Lead,
	Deal.Entity:     Deal,
	Contact.Entity:  Contact,
	Task.Entity:     Task,
	Document.Entity: Document,
}

func Lookup(entity string) (*Descriptor, bool) {
	d, ok := Registry[entity]
	return d, ok
}
