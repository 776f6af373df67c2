package models

// RelatedKind tags the target table of a polymorphic task or document link.
// The pair (kind, id) is stored as two bare columns with no foreign key,
// since the target table varies per row.
type RelatedKind string

const (
	RelatedLead     RelatedKind = "lead"
	RelatedDeal     RelatedKind = "deal"
	RelatedProperty RelatedKind = "property"
	RelatedUnit     RelatedKind = "unit"
	RelatedContact  RelatedKind = "contact"
)

var RelatedKinds = []RelatedKind{RelatedLead, RelatedDeal, RelatedProperty, RelatedUnit, RelatedContact}

// Related is a resolved polymorphic reference.
type Related struct {
	Kind RelatedKind
	ID   string
}

func related(kind *RelatedKind, id *string) (Related, bool) {
	if kind == nil || id == nil || *id == "" {
		return Related{}, false
	}
	return Related{Kind: *kind, ID: *id}, true
}
