// Package schema declares, per entity type, the fields a client may write,
// their types, enumerations, references and defaults. The repository uses a
// descriptor both to validate input and to build the column map it stores.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/ids"
	"gorm.io/datatypes"
)

type Kind int

const (
	String Kind = iota
	Int
	Float
	Date
	Enum
	StringList
	Ref
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "number"
	case Date:
		return "date"
	case Enum:
		return "enum"
	case StringList:
		return "list of strings"
	case Ref:
		return "reference"
	}
	return "unknown"
}

// DateLayout is the wire format of Date fields.
const DateLayout = "2006-01-02"

// Target names the table a Ref field points at.
type Target struct {
	Entity     string
	Table      string
	Scoped     bool // target rows carry org_id and must belong to the same tenant
	SoftDelete bool
}

type Field struct {
	Name     string // JSON key and column name
	Kind     Kind
	Required bool
	Enum     []string
	Default  any
	MaxLen   int
	Target   *Target
	// CreateOnly fields are accepted on create and rejected on patch.
	CreateOnly bool
	// TenantKey fields hold object-store keys, which must sit under the
	// writing tenant's prefix.
	TenantKey bool
}

// Nullable reports whether the field may hold null.
func (f Field) Nullable() bool {
	return !f.Required && f.Default == nil
}

type Descriptor struct {
	Entity     string
	Table      string
	SoftDelete bool
	Fields     []Field

	byName map[string]int
}

// Input is a decoded JSON object. A key that is absent was not sent; a key
// holding the literal null was explicitly cleared.
type Input map[string]json.RawMessage

// Values maps column names to storable values.
type Values map[string]any

// Reference is a foreign id found in validated values.
type Reference struct {
	Field  string
	ID     string
	Target Target
}

// ReadOnly lists keys every entity manages itself.
var ReadOnly = []string{"id", "org_id", "created_at", "updated_at", "deleted_at"}

func New(entity, table string, softDelete bool, fields ...Field) *Descriptor {
	d := &Descriptor{
		Entity:     entity,
		Table:      table,
		SoftDelete: softDelete,
		Fields:     fields,
		byName:     make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := d.byName[f.Name]; dup {
			panic(fmt.Sprintf("schema: duplicate field %q on %s", f.Name, entity))
		}
		if f.Kind == Enum && len(f.Enum) == 0 {
			panic(fmt.Sprintf("schema: enum field %q on %s has no values", f.Name, entity))
		}
		if f.Kind == Ref && f.Target == nil {
			panic(fmt.Sprintf("schema: ref field %q on %s has no target", f.Name, entity))
		}
		d.byName[f.Name] = i
	}
	return d
}

func (d *Descriptor) Field(name string) (Field, bool) {
	i, ok := d.byName[name]
	if !ok {
		return Field{}, false
	}
	return d.Fields[i], true
}

// ValidateCreate checks a create payload and returns the values to store,
// with defaults filled in. Unknown keys are ignored.
func (d *Descriptor) ValidateCreate(in Input) (Values, error) {
	errs := make(map[string]string)
	checkReadOnly(in, errs)

	values := make(Values, len(d.Fields))
	for _, f := range d.Fields {
		raw, present := in[f.Name]
		if !present {
			switch {
			case f.Required:
				errs[f.Name] = "is required"
			case f.Default != nil:
				values[f.Name] = f.Default
			}
			continue
		}
		v, msg := f.normalize(raw)
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		values[f.Name] = v
	}

	if len(errs) > 0 {
		return nil, apperr.Validation("Validation failed", errs)
	}
	return values, nil
}

// ValidatePatch checks a partial payload. Only keys present in the input
// appear in the result; an empty input yields empty values.
func (d *Descriptor) ValidatePatch(in Input) (Values, error) {
	errs := make(map[string]string)
	checkReadOnly(in, errs)

	values := make(Values, len(in))
	for key, raw := range in {
		f, ok := d.Field(key)
		if !ok {
			continue
		}
		if f.CreateOnly {
			errs[key] = "cannot be changed"
			continue
		}
		v, msg := f.normalize(raw)
		if msg != "" {
			errs[key] = msg
			continue
		}
		values[key] = v
	}

	if len(errs) > 0 {
		return nil, apperr.Validation("Validation failed", errs)
	}
	return values, nil
}

// ValidateTenant checks values that depend on the writing tenant. It runs
// after ValidateCreate or ValidatePatch.
func (d *Descriptor) ValidateTenant(tenant string, values Values) error {
	errs := make(map[string]string)
	for _, f := range d.Fields {
		if !f.TenantKey {
			continue
		}
		v, ok := values[f.Name].(string)
		if !ok {
			continue
		}
		if !models.StorageKeyOwnedBy(tenant, v) {
			errs[f.Name] = fmt.Sprintf("must be a key under %q", models.StorageKeyPrefix(tenant))
		}
	}
	if len(errs) > 0 {
		return apperr.Validation("Validation failed", errs)
	}
	return nil
}

// References returns the non-null Ref values in values, sorted by field.
func (d *Descriptor) References(values Values) []Reference {
	var refs []Reference
	for _, f := range d.Fields {
		if f.Kind != Ref {
			continue
		}
		id, ok := values[f.Name].(string)
		if !ok {
			continue
		}
		refs = append(refs, Reference{Field: f.Name, ID: id, Target: *f.Target})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Field < refs[j].Field })
	return refs
}

func checkReadOnly(in Input, errs map[string]string) {
	for _, key := range ReadOnly {
		if _, ok := in[key]; ok {
			errs[key] = "is read-only"
		}
	}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// normalize decodes raw into the value stored for f. A non-empty message
// reports why raw is unacceptable.
func (f Field) normalize(raw json.RawMessage) (any, string) {
	if isNull(raw) {
		if !f.Nullable() {
			return nil, "may not be null"
		}
		return nil, ""
	}

	switch f.Kind {
	case String:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "must be a string"
		}
		if f.Required && strings.TrimSpace(s) == "" {
			return nil, "is required"
		}
		if f.MaxLen > 0 && len(s) > f.MaxLen {
			return nil, fmt.Sprintf("must be at most %d characters", f.MaxLen)
		}
		return s, ""

	case Int:
		n, ok := decodeNumber(raw)
		if !ok {
			return nil, "must be an integer"
		}
		i, err := n.Int64()
		if err != nil {
			return nil, "must be an integer"
		}
		return i, ""

	case Float:
		n, ok := decodeNumber(raw)
		if !ok {
			return nil, "must be a number"
		}
		x, err := n.Float64()
		if err != nil {
			return nil, "must be a number"
		}
		return x, ""

	case Date:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "must be a date (YYYY-MM-DD)"
		}
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, "must be a date (YYYY-MM-DD)"
		}
		return datatypes.Date(t), ""

	case Enum:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "must be a string"
		}
		for _, allowed := range f.Enum {
			if s == allowed {
				return s, ""
			}
		}
		return nil, "must be one of: " + strings.Join(f.Enum, ", ")

	case StringList:
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, "must be a list of strings"
		}
		if list == nil {
			list = []string{}
		}
		b, err := json.Marshal(list)
		if err != nil {
			return nil, "must be a list of strings"
		}
		return datatypes.JSON(b), ""

	case Ref:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "must be a string id"
		}
		if !ids.Valid(s) {
			return nil, "must be a valid id"
		}
		return s, ""
	}

	return nil, "unsupported field type"
}

func decodeNumber(raw json.RawMessage) (json.Number, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	return n, ok
}

// EnumOf converts typed enum constants to their string values.
func EnumOf[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
