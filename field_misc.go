package baserow

import (
	"github.com/google/uuid"
)

var booleanFilters = []string{"boolean", "empty", "not_empty"}

// BooleanField holds a true/false value.
type BooleanField struct {
	baseField
}

func newBooleanField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &BooleanField{baseField: base}, nil
}

func (f *BooleanField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	if _, ok := v.(bool); !ok {
		return newValidationError(f.name, "expected a bool for boolean field, got %T", v)
	}
	return nil
}

func (f *BooleanField) FormatForAPI(v any) (any, error) { return validateAndPass(f, v) }

func (f *BooleanField) CompatibleFilters() []string { return booleanFilters }

// Passwords cannot be filtered on; the empty whitelist rejects every
// operator, unlike the nil whitelist of formula fields which defers to the
// server.
var passwordFilters = []string{}

// PasswordField stores a write-only secret. The server never returns the
// stored value; reads yield true when a password is set and null when not,
// so a bool is accepted alongside the write shapes.
type PasswordField struct {
	baseField
}

func newPasswordField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &PasswordField{baseField: base}, nil
}

func (f *PasswordField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case string, bool:
		return nil
	default:
		return newValidationError(f.name, "expected a string or nil for password field, got %T", v)
	}
}

// FormatForAPI accepts a new password string or nil to clear. The bool read
// shape is rejected on write because it carries no secret to store.
func (f *PasswordField) FormatForAPI(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if _, ok := v.(string); !ok {
		return nil, newValidationError(f.name, "expected a string or nil for password field, got %T", v)
	}
	return v, nil
}

func (f *PasswordField) CompatibleFilters() []string { return passwordFilters }

var uuidFilters = []string{
	"equal", "not_equal",
	"contains", "contains_not",
	"empty", "not_empty",
}

// UUIDField is a server-assigned unique identifier. Always read-only.
type UUIDField struct {
	baseField
}

func newUUIDField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &UUIDField{baseField: base}, nil
}

func (f *UUIDField) IsReadOnly() bool { return true }

func (f *UUIDField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return newValidationError(f.name, "expected a string for uuid field, got %T", v)
	}
	if _, err := uuid.Parse(s); err != nil {
		return newValidationError(f.name, "invalid uuid %q", s)
	}
	return nil
}

func (f *UUIDField) FormatForAPI(v any) (any, error) {
	return nil, &ReadOnlyError{FieldName: f.name}
}

func (f *UUIDField) CompatibleFilters() []string { return uuidFilters }

var collaboratorFilters = []string{
	"multiple_collaborators_has", "multiple_collaborators_has_not",
	"empty", "not_empty",
}

// MultipleCollaboratorsField holds a list of workspace users. Entries are
// objects carrying the user id; the server fills in the display name.
type MultipleCollaboratorsField struct {
	baseField
}

func newMultipleCollaboratorsField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &MultipleCollaboratorsField{baseField: base}, nil
}

func (f *MultipleCollaboratorsField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return newValidationError(f.name, "expected a list of collaborator objects, got %T", v)
	}
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return newValidationError(f.name, "expected a collaborator object in list, got %T", item)
		}
		if _, ok := fieldData(entry).intVal("id"); !ok {
			return newValidationError(f.name, "collaborator object missing id")
		}
	}
	return nil
}

// FormatForAPI reduces each entry to {"id": n}, which both the write shape
// and the server's read shape satisfy.
func (f *MultipleCollaboratorsField) FormatForAPI(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if err := f.ValidateValue(v); err != nil {
		return nil, err
	}
	list := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		id, _ := fieldData(item.(map[string]any)).intVal("id")
		out = append(out, map[string]any{"id": id})
	}
	return out, nil
}

func (f *MultipleCollaboratorsField) CompatibleFilters() []string { return collaboratorFilters }

// GenericField is the fallback for type tags this library does not know.
// It accepts any value unchanged. With no known whitelist, every filter
// operator is rejected locally; formula and lookup are the only types
// that defer operator checks to the server.
type GenericField struct {
	baseField
}

func newGenericField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &GenericField{baseField: base}, nil
}

func (f *GenericField) ValidateValue(v any) error { return nil }

func (f *GenericField) FormatForAPI(v any) (any, error) { return v, nil }

func (f *GenericField) CompatibleFilters() []string { return []string{} }
