package baserow

import (
	"fmt"
	"reflect"
)

// RowValue pairs one cell's raw value with the field that governs it. The
// raw value keeps the server's read shape; FormatForAPI converts it to the
// write shape on demand.
type RowValue interface {
	Name() string
	Field() Field
	Value() any
	// Set validates and stores a new in-memory value. It fails with a
	// ReadOnlyError on server-computed fields.
	Set(v any) error
	// FormatForAPI renders the current value in the shape a row write
	// expects.
	FormatForAPI() (any, error)
	IsReadOnly() bool

	// setRaw replaces the stored value without validation. Used to roll
	// back multi-cell edits.
	setRaw(v any)
}

// baseRowValue carries the field binding and the raw value shared by every
// concrete row value type.
type baseRowValue struct {
	field Field
	raw   any
}

func (v *baseRowValue) Name() string { return v.field.Name() }

func (v *baseRowValue) Field() Field { return v.field }

func (v *baseRowValue) Value() any { return v.raw }

func (v *baseRowValue) IsReadOnly() bool { return v.field.IsReadOnly() }

func (v *baseRowValue) setRaw(raw any) { v.raw = raw }

func (v *baseRowValue) Set(newValue any) error {
	if v.field.IsReadOnly() {
		return &ReadOnlyError{FieldName: v.field.Name()}
	}
	if err := v.field.ValidateValue(newValue); err != nil {
		return err
	}
	v.raw = newValue
	return nil
}

func (v *baseRowValue) FormatForAPI() (any, error) {
	return v.field.FormatForAPI(v.raw)
}

// GenericRowValue is the plain cell wrapper used by every field type that
// needs no extra accessors.
type GenericRowValue struct {
	baseRowValue
}

// newRowValue binds a raw cell value to its field, picking the concrete
// wrapper for types with extra behavior.
func newRowValue(field Field, raw any, client *Client) (RowValue, error) {
	if field == nil {
		return nil, fmt.Errorf("row value requires a field")
	}
	base := baseRowValue{field: field, raw: raw}
	switch field.Type() {
	case TypeDate, TypeLastModified, TypeCreatedOn:
		return &DateRowValue{baseRowValue: base}, nil
	case TypeSingleSelect:
		return &SingleSelectRowValue{baseRowValue: base}, nil
	case TypeMultipleSelect:
		return &MultipleSelectRowValue{baseRowValue: base}, nil
	case TypeFile:
		return &FileRowValue{baseRowValue: base, client: client}, nil
	case TypePassword:
		return &PasswordRowValue{baseRowValue: base}, nil
	default:
		return &GenericRowValue{baseRowValue: base}, nil
	}
}

// RowValueList is the ordered cell collection of one row.
type RowValueList struct {
	values []RowValue
	byName map[string]RowValue
}

func newRowValueList(values []RowValue) *RowValueList {
	byName := make(map[string]RowValue, len(values))
	for _, v := range values {
		byName[v.Name()] = v
	}
	return &RowValueList{values: values, byName: byName}
}

// Get returns the cell for the given field name.
func (l *RowValueList) Get(name string) (RowValue, error) {
	v, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return v, nil
}

// Contains reports whether the row has a cell for the given field name.
func (l *RowValueList) Contains(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// All returns the cells in field order.
func (l *RowValueList) All() []RowValue { return l.values }

func (l *RowValueList) Len() int { return len(l.values) }

// equalValues compares two raw cell values structurally. JSON-decoded
// values are maps, slices, and scalars, so reflect.DeepEqual is exact.
func equalValues(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
