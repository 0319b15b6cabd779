package baserow

import (
	"fmt"
	"regexp"
)

// textFilters is shared by every plain-text type.
var textFilters = []string{
	"equal", "not_equal",
	"contains", "contains_not",
	"contains_word", "doesnt_contain_word",
	"length_is_lower_than",
	"empty", "not_empty",
}

// textField is the shared implementation for text, long_text, url, and
// email. The server treats all four as free-form strings; only the tag and
// display behavior differ.
type textField struct {
	baseField
}

func (f *textField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	if _, ok := v.(string); !ok {
		return newValidationError(f.name, "expected a string for %s field, got %T", f.Type(), v)
	}
	return nil
}

func (f *textField) FormatForAPI(v any) (any, error) { return validateAndPass(f, v) }

func (f *textField) CompatibleFilters() []string { return textFilters }

// TextField is a single-line text column with an optional default value.
type TextField struct {
	textField
	textDefault string
}

func newTextField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	def := ""
	if raw, ok := data["text_default"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: text_default must be a string, got %T", name, raw)
		}
		def = s
	}
	return &TextField{textField: textField{baseField: base}, textDefault: def}, nil
}

// TextDefault returns the default value the server applies to new rows.
func (f *TextField) TextDefault() string { return f.textDefault }

// LongTextField is a multi-line text column.
type LongTextField struct {
	textField
}

func newLongTextField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &LongTextField{textField{baseField: base}}, nil
}

// URLField holds a URL as plain text.
type URLField struct {
	textField
}

func newURLField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &URLField{textField{baseField: base}}, nil
}

// EmailField holds an email address as plain text.
type EmailField struct {
	textField
}

func newEmailField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &EmailField{textField{baseField: base}}, nil
}

// phoneNumberPattern is the character set the server enforces: up to 100
// digits, spaces, and Nx,._+*()#=;/- characters.
var phoneNumberPattern = regexp.MustCompile(`^[0-9 Nx,._+*()#=;/-]{1,100}$`)

var phoneFilters = []string{
	"equal", "not_equal",
	"contains", "contains_not",
	"length_is_lower_than",
	"empty", "not_empty",
}

// PhoneNumberField holds a phone number restricted to dialable characters.
type PhoneNumberField struct {
	baseField
}

func newPhoneNumberField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &PhoneNumberField{baseField: base}, nil
}

func (f *PhoneNumberField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return newValidationError(f.name, "expected a string for phone_number field, got %T", v)
	}
	if s == "" {
		return nil
	}
	if !phoneNumberPattern.MatchString(s) {
		return newValidationError(f.name, "phone number %q does not match the expected format", s)
	}
	return nil
}

func (f *PhoneNumberField) FormatForAPI(v any) (any, error) { return validateAndPass(f, v) }

func (f *PhoneNumberField) CompatibleFilters() []string { return phoneFilters }
