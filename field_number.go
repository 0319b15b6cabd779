package baserow

import (
	"strings"
)

var numberFilters = []string{
	"equal", "not_equal",
	"contains", "contains_not",
	"higher_than", "higher_than_or_equal",
	"lower_than", "lower_than_or_equal",
	"is_even_and_whole",
	"empty", "not_empty",
}

// NumberField is a numeric column with a declared decimal precision and an
// optional ban on negative values.
type NumberField struct {
	baseField
	decimalPlaces int
	allowNegative bool
}

func newNumberField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	places, _ := data.intVal("number_decimal_places")
	return &NumberField{
		baseField:     base,
		decimalPlaces: places,
		allowNegative: data.boolOr("number_negative", true),
	}, nil
}

// DecimalPlaces returns the declared precision.
func (f *NumberField) DecimalPlaces() int { return f.decimalPlaces }

// AllowNegative reports whether values below zero are accepted.
func (f *NumberField) AllowNegative() bool { return f.allowNegative }

func (f *NumberField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	n, text, ok := asNumber(v)
	if !ok {
		return newValidationError(f.name, "expected a number for number field, got %T", v)
	}
	if frac := fractionDigits(text); frac > f.decimalPlaces {
		return newValidationError(f.name, "value %s exceeds the allowed %d decimal places", text, f.decimalPlaces)
	}
	if !f.allowNegative && n < 0 {
		return newValidationError(f.name, "negative values are not allowed")
	}
	return nil
}

func (f *NumberField) FormatForAPI(v any) (any, error) { return validateAndPass(f, v) }

func (f *NumberField) CompatibleFilters() []string { return numberFilters }

// fractionDigits counts significant digits after the decimal point in a
// numeric string. Trailing zeros are trimmed first so server echoes padded
// to the declared precision ("42.00" on a two-decimal field) re-validate.
func fractionDigits(text string) int {
	i := strings.IndexByte(text, '.')
	if i < 0 {
		return 0
	}
	frac := strings.TrimRight(text[i+1:], "0")
	return len(frac)
}

var ratingFilters = []string{"equal", "not_equal", "higher_than", "lower_than"}

// RatingField is an integer score between zero and a declared maximum.
type RatingField struct {
	baseField
	maxValue int
	color    string
	style    string
}

func newRatingField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	max, ok := data.intVal("max_value")
	if !ok {
		return nil, newValidationError(name, "rating field requires an integer max_value")
	}
	return &RatingField{
		baseField: base,
		maxValue:  max,
		color:     data.strOr("color", "dark-orange"),
		style:     data.strOr("style", "star"),
	}, nil
}

// MaxValue returns the upper bound of the rating scale.
func (f *RatingField) MaxValue() int { return f.maxValue }

// Color returns the display color.
func (f *RatingField) Color() string { return f.color }

// Style returns the display style (star, heart, ...).
func (f *RatingField) Style() string { return f.style }

func (f *RatingField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	n, ok := asInt(v)
	if !ok {
		return newValidationError(f.name, "expected an integer for rating field, got %T", v)
	}
	if n < 0 || n > f.maxValue {
		return newValidationError(f.name, "rating must be between 0 and %d, got %d", f.maxValue, n)
	}
	return nil
}

func (f *RatingField) FormatForAPI(v any) (any, error) { return validateAndPass(f, v) }

func (f *RatingField) CompatibleFilters() []string { return ratingFilters }

// CountField reflects the number of relations through a link field. Always
// read-only; the count is server-computed.
type CountField struct {
	baseField
}

func newCountField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &CountField{baseField: base}, nil
}

func (f *CountField) IsReadOnly() bool { return true }

// ThroughFieldID returns the id of the link field the count follows.
func (f *CountField) ThroughFieldID() (int, bool) { return f.data.intVal("through_field_id") }

func (f *CountField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	n, ok := asInt(v)
	if !ok {
		return newValidationError(f.name, "expected an integer for count field, got %T", v)
	}
	if n < 0 {
		return newValidationError(f.name, "count cannot be negative")
	}
	return nil
}

func (f *CountField) FormatForAPI(v any) (any, error) {
	return nil, &ReadOnlyError{FieldName: f.name}
}

func (f *CountField) CompatibleFilters() []string { return numberFilters }

// AutonumberField is a server-assigned sequence number. Always read-only.
type AutonumberField struct {
	baseField
}

func newAutonumberField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &AutonumberField{baseField: base}, nil
}

func (f *AutonumberField) IsReadOnly() bool { return true }

func (f *AutonumberField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	if _, ok := asInt(v); !ok {
		return newValidationError(f.name, "expected an integer for autonumber field, got %T", v)
	}
	return nil
}

func (f *AutonumberField) FormatForAPI(v any) (any, error) {
	return nil, &ReadOnlyError{FieldName: f.name}
}

func (f *AutonumberField) CompatibleFilters() []string { return numberFilters }
