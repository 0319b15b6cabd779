package baserow

import (
	"fmt"
)

var singleSelectFilters = []string{
	"contains", "contains_not",
	"contains_word", "doesnt_contain_word",
	"single_select_equal", "single_select_not_equal",
	"empty", "not_empty",
}

var multipleSelectFilters = []string{
	"contains", "contains_not",
	"contains_word", "doesnt_contain_word",
	"multiple_select_has", "multiple_select_has_not",
	"empty", "not_empty",
}

// SelectOption is one entry of a select field's closed option set.
type SelectOption struct {
	ID    int
	Value string
	Color string
}

// parseSelectOptions decodes the select_options schema attribute.
func parseSelectOptions(name string, data fieldData) ([]SelectOption, error) {
	raw, ok := data["select_options"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q: select_options must be a list, got %T", name, raw)
	}
	options := make([]SelectOption, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: select option must be an object, got %T", name, item)
		}
		opt := SelectOption{}
		opt.ID, _ = fieldData(entry).intVal("id")
		opt.Value = fieldData(entry).strOr("value", "")
		opt.Color = fieldData(entry).strOr("color", "")
		options = append(options, opt)
	}
	return options, nil
}

// selectField holds the option set shared by single and multiple select.
type selectField struct {
	baseField
	options []SelectOption
}

// Options returns the option labels in schema order.
func (f *selectField) Options() []string {
	values := make([]string, len(f.options))
	for i, opt := range f.options {
		values[i] = opt.Value
	}
	return values
}

// OptionsDetails returns the full option records.
func (f *selectField) OptionsDetails() []SelectOption {
	out := make([]SelectOption, len(f.options))
	copy(out, f.options)
	return out
}

func (f *selectField) optionByValue(value string) (SelectOption, bool) {
	for _, opt := range f.options {
		if opt.Value == value {
			return opt, true
		}
	}
	return SelectOption{}, false
}

func (f *selectField) optionByID(id int) (SelectOption, bool) {
	for _, opt := range f.options {
		if opt.ID == id {
			return opt, true
		}
	}
	return SelectOption{}, false
}

// resolveOption accepts an option label, an option id, or the server's read
// shape {id, value, color} and resolves it against the option set.
func (f *selectField) resolveOption(v any) (SelectOption, error) {
	switch val := v.(type) {
	case string:
		if opt, ok := f.optionByValue(val); ok {
			return opt, nil
		}
		return SelectOption{}, newValidationError(f.name, "unknown select option %q, valid options: %v", val, f.Options())
	case map[string]any:
		id, ok := fieldData(val).intVal("id")
		if !ok {
			return SelectOption{}, newValidationError(f.name, "select option object missing id")
		}
		if opt, ok := f.optionByID(id); ok {
			return opt, nil
		}
		return SelectOption{}, newValidationError(f.name, "unknown select option id %d", id)
	default:
		id, ok := asInt(v)
		if !ok {
			return SelectOption{}, newValidationError(f.name, "expected an option value or id for %s field, got %T", f.Type(), v)
		}
		if opt, ok := f.optionByID(id); ok {
			return opt, nil
		}
		return SelectOption{}, newValidationError(f.name, "unknown select option id %d", id)
	}
}

// SingleSelectField restricts values to one option from a closed set.
type SingleSelectField struct {
	selectField
}

func newSingleSelectField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	options, err := parseSelectOptions(name, data)
	if err != nil {
		return nil, err
	}
	return &SingleSelectField{selectField{baseField: base, options: options}}, nil
}

func (f *SingleSelectField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	_, err := f.resolveOption(v)
	return err
}

// FormatForAPI resolves any accepted shape to the option id the server
// expects on write.
func (f *SingleSelectField) FormatForAPI(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	opt, err := f.resolveOption(v)
	if err != nil {
		return nil, err
	}
	return opt.ID, nil
}

func (f *SingleSelectField) CompatibleFilters() []string { return singleSelectFilters }

// MultipleSelectField restricts values to a list of options from a closed
// set.
type MultipleSelectField struct {
	selectField
}

func newMultipleSelectField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	options, err := parseSelectOptions(name, data)
	if err != nil {
		return nil, err
	}
	return &MultipleSelectField{selectField{baseField: base, options: options}}, nil
}

// asSelectList tolerates a single item where a list is expected.
func (f *MultipleSelectField) asSelectList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	if list, ok := v.([]string); ok {
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	}
	if list, ok := v.([]int); ok {
		out := make([]any, len(list))
		for i, n := range list {
			out[i] = n
		}
		return out
	}
	return []any{v}
}

func (f *MultipleSelectField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	for _, item := range f.asSelectList(v) {
		if _, err := f.resolveOption(item); err != nil {
			return err
		}
	}
	return nil
}

// FormatForAPI resolves every entry to its option id.
func (f *MultipleSelectField) FormatForAPI(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	items := f.asSelectList(v)
	ids := make([]int, 0, len(items))
	for _, item := range items {
		opt, err := f.resolveOption(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, opt.ID)
	}
	return ids, nil
}

func (f *MultipleSelectField) CompatibleFilters() []string { return multipleSelectFilters }
