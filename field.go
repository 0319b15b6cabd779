package baserow

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Field describes one column of a table schema: identity, flags, and the
// type-specific validation and wire-formatting rules for its values.
//
// Fields are created once when a Table first loads its schema and are
// immutable for the Table's lifetime.
type Field interface {
	Name() string
	ID() int
	TableID() int
	// Order returns the schema position and whether the server supplied one.
	Order() (int, bool)
	Type() string
	IsPrimary() bool
	IsReadOnly() bool

	// Attr exposes a raw schema attribute by key.
	Attr(key string) (any, bool)

	// ValidateValue checks a candidate value against the field's rules.
	ValidateValue(v any) error

	// FormatForAPI converts an accepted value into the JSON shape the server
	// expects on write. It also accepts the server's own read shape, so a
	// server echo round-trips without mutation.
	FormatForAPI(v any) (any, error)

	// CompatibleFilters lists the filter operators this field accepts. For
	// formula and lookup fields the list is advisory (the server arbitrates).
	CompatibleFilters() []string
}

// fieldData is the raw schema record for one field, as decoded from the
// fields endpoint. Kept as a map so unknown attributes survive for Generic
// fields and Attr lookups.
type fieldData map[string]any

func (d fieldData) str(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

func (d fieldData) strOr(key, def string) string {
	if v, ok := d.str(key); ok {
		return v
	}
	return def
}

func (d fieldData) boolOr(key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

// intVal tolerates the numeric shapes JSON decoding can produce.
func (d fieldData) intVal(key string) (int, bool) {
	switch v := d[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// baseField carries the identity and flag handling shared by every type.
type baseField struct {
	name string
	data fieldData
}

func newBaseField(name string, data fieldData) (baseField, error) {
	if name == "" {
		return baseField{}, fmt.Errorf("field name must not be empty")
	}
	if len(data) == 0 {
		return baseField{}, fmt.Errorf("field %q: schema record must not be empty", name)
	}
	return baseField{name: name, data: data}, nil
}

func (f *baseField) Name() string { return f.name }

func (f *baseField) ID() int {
	id, _ := f.data.intVal("id")
	return id
}

func (f *baseField) TableID() int {
	id, _ := f.data.intVal("table_id")
	return id
}

func (f *baseField) Order() (int, bool) { return f.data.intVal("order") }

func (f *baseField) Type() string { return f.data.strOr("type", "") }

func (f *baseField) IsPrimary() bool { return f.data.boolOr("primary", false) }

func (f *baseField) IsReadOnly() bool { return f.data.boolOr("read_only", false) }

func (f *baseField) Attr(key string) (any, bool) {
	v, ok := f.data[key]
	return v, ok
}

// validateAndPass is the default write path: validate, then submit as-is.
func validateAndPass(f Field, v any) (any, error) {
	if err := f.ValidateValue(v); err != nil {
		return nil, err
	}
	return v, nil
}

// fieldConstructor builds the concrete Field for one type tag.
type fieldConstructor func(name string, data fieldData) (Field, error)

// fieldRegistry maps the closed set of known type tags to constructors.
// Unknown tags fall through to GenericField.
var fieldRegistry = map[string]fieldConstructor{
	TypeText:                  newTextField,
	TypeLongText:              newLongTextField,
	TypeURL:                   newURLField,
	TypeEmail:                 newEmailField,
	TypePhoneNumber:           newPhoneNumberField,
	TypeBoolean:               newBooleanField,
	TypeNumber:                newNumberField,
	TypeRating:                newRatingField,
	TypeDate:                  newDateField,
	TypeLastModified:          newLastModifiedField,
	TypeCreatedOn:             newCreatedOnField,
	TypeFile:                  newFileField,
	TypeSingleSelect:          newSingleSelectField,
	TypeMultipleSelect:        newMultipleSelectField,
	TypeFormula:               newFormulaField,
	TypeLinkRow:               newTableLinkField,
	TypeCount:                 newCountField,
	TypeLookup:                newLookupField,
	TypeMultipleCollaborators: newMultipleCollaboratorsField,
	TypePassword:              newPasswordField,
	TypeAutonumber:            newAutonumberField,
	TypeUUID:                  newUUIDField,
}

// Field type tags as they appear in the schema's type discriminator.
const (
	TypeText                  = "text"
	TypeLongText              = "long_text"
	TypeURL                   = "url"
	TypeEmail                 = "email"
	TypePhoneNumber           = "phone_number"
	TypeBoolean               = "boolean"
	TypeNumber                = "number"
	TypeRating                = "rating"
	TypeDate                  = "date"
	TypeLastModified          = "last_modified"
	TypeCreatedOn             = "created_on"
	TypeFile                  = "file"
	TypeSingleSelect          = "single_select"
	TypeMultipleSelect        = "multiple_select"
	TypeFormula               = "formula"
	TypeLinkRow               = "link_row"
	TypeCount                 = "count"
	TypeLookup                = "lookup"
	TypeMultipleCollaborators = "multiple_collaborators"
	TypePassword              = "password"
	TypeAutonumber            = "autonumber"
	TypeUUID                  = "uuid"
)

// newField dispatches on the type tag, degrading to Generic for tags this
// library does not know.
func newField(name string, data fieldData) (Field, error) {
	tag, _ := data.str("type")
	if ctor, ok := fieldRegistry[tag]; ok {
		return ctor(name, data)
	}
	return newGenericField(name, data)
}

// FieldList is the ordered field collection of one table schema.
type FieldList struct {
	fields []Field
	byName map[string]Field
}

func newFieldList(fields []Field) *FieldList {
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name()] = f
	}
	return &FieldList{fields: fields, byName: byName}
}

// Get returns the field with the given name.
func (l *FieldList) Get(name string) (Field, error) {
	f, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return f, nil
}

// Contains reports whether a field with the given name exists.
func (l *FieldList) Contains(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// All returns the fields in schema order.
func (l *FieldList) All() []Field { return l.fields }

func (l *FieldList) Len() int { return len(l.fields) }

// Names returns field names sorted by schema order, fields without an order
// last, ties broken by name for determinism.
func (l *FieldList) Names() []string {
	type entry struct {
		name     string
		order    int
		hasOrder bool
	}
	entries := make([]entry, 0, len(l.fields))
	for _, f := range l.fields {
		o, ok := f.Order()
		entries = append(entries, entry{name: f.Name(), order: o, hasOrder: ok})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		if a.hasOrder && a.order != b.order {
			return a.order < b.order
		}
		return a.name < b.name
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// asNumber coerces the numeric shapes a caller or the JSON decoder can hand
// us. Numeric strings are accepted because the server itself echoes numbers
// as fixed-decimal strings.
func asNumber(v any) (float64, string, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), strconv.Itoa(n), true
	case int64:
		return float64(n), strconv.FormatInt(n, 10), true
	case float64:
		return n, strconv.FormatFloat(n, 'f', -1, 64), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, "", false
		}
		return f, n.String(), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, "", false
		}
		return f, n, true
	default:
		return 0, "", false
	}
}

// asInt coerces int-like values, rejecting fractional floats.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
