package baserow

import (
	"fmt"

	"github.com/tidyrows/baserow-go/internal/dateutil"
)

var dateFilters = []string{
	"date_equal", "date_not_equal",
	"date_equals_today", "date_before_today", "date_after_today",
	"date_within_days", "date_within_weeks", "date_within_months",
	"date_equals_days_ago", "date_equals_months_ago", "date_equals_years_ago",
	"date_equals_week", "date_equals_month", "date_equals_year",
	"date_equals_day_of_month",
	"date_before", "date_before_or_equal",
	"date_after", "date_after_or_equal",
	"date_after_days_ago",
	"contains", "contains_not",
	"empty", "not_empty",
}

// dateField carries the settings shared by date, last_modified, and
// created_on: display format, time inclusion, and timezone handling.
type dateField struct {
	baseField
	dateFormat    string
	includeTime   bool
	timeFormat    string
	showTZ        bool
	forceTimezone string
}

func newDateSettings(name string, base baseField, data fieldData) (dateField, error) {
	f := dateField{
		baseField:     base,
		dateFormat:    data.strOr("date_format", "EU"),
		includeTime:   data.boolOr("date_include_time", true),
		timeFormat:    data.strOr("date_time_format", "24"),
		showTZ:        data.boolOr("date_show_tzinfo", false),
		forceTimezone: data.strOr("date_force_timezone", ""),
	}
	switch f.dateFormat {
	case "US", "EU", "ISO":
	default:
		return dateField{}, fmt.Errorf("field %q: invalid date_format %q, expected US, EU, or ISO", name, f.dateFormat)
	}
	switch f.timeFormat {
	case "12", "24":
	default:
		return dateField{}, fmt.Errorf("field %q: invalid date_time_format %q, expected 12 or 24", name, f.timeFormat)
	}
	return f, nil
}

// DateFormat returns the display pattern: US, EU, or ISO.
func (f *dateField) DateFormat() string { return f.dateFormat }

// IncludeTime reports whether values carry a time portion.
func (f *dateField) IncludeTime() bool { return f.includeTime }

// TimeFormat returns "12" or "24".
func (f *dateField) TimeFormat() string { return f.timeFormat }

// ShowTZInfo reports whether display formatting appends the zone name.
func (f *dateField) ShowTZInfo() bool { return f.showTZ }

// ForceTimezone returns the IANA zone display values are rendered in, or
// empty for the local zone.
func (f *dateField) ForceTimezone() string { return f.forceTimezone }

func (f *dateField) formatConfig() dateutil.FormatConfig {
	return dateutil.FormatConfig{
		DateFormat:    f.dateFormat,
		TimeFormat:    f.timeFormat,
		IncludeTime:   f.includeTime,
		ShowTZ:        f.showTZ,
		ForceTimezone: f.forceTimezone,
	}
}

func (f *dateField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return newValidationError(f.name, "expected a date string for %s field, got %T", f.Type(), v)
	}
	if _, err := dateutil.Normalize(s, f.includeTime); err != nil {
		return newValidationError(f.name, "%v", err)
	}
	return nil
}

// FormatForAPI normalizes any accepted input shape to the wire form; the
// result is stable under repeated formatting.
func (f *dateField) FormatForAPI(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, newValidationError(f.name, "expected a date string for %s field, got %T", f.Type(), v)
	}
	normalized, err := dateutil.Normalize(s, f.includeTime)
	if err != nil {
		return nil, newValidationError(f.name, "%v", err)
	}
	return normalized, nil
}

func (f *dateField) CompatibleFilters() []string { return dateFilters }

// DateField is a user-writable date or datetime column.
type DateField struct {
	dateField
}

func newDateField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	settings, err := newDateSettings(name, base, data)
	if err != nil {
		return nil, err
	}
	return &DateField{settings}, nil
}

// LastModifiedField tracks the latest edit timestamp. Always read-only.
type LastModifiedField struct {
	dateField
}

func newLastModifiedField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	settings, err := newDateSettings(name, base, data)
	if err != nil {
		return nil, err
	}
	return &LastModifiedField{settings}, nil
}

func (f *LastModifiedField) IsReadOnly() bool { return true }

func (f *LastModifiedField) FormatForAPI(v any) (any, error) {
	return nil, &ReadOnlyError{FieldName: f.name}
}

// CreatedOnField tracks the creation timestamp. Always read-only.
type CreatedOnField struct {
	dateField
}

func newCreatedOnField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	settings, err := newDateSettings(name, base, data)
	if err != nil {
		return nil, err
	}
	return &CreatedOnField{settings}, nil
}

func (f *CreatedOnField) IsReadOnly() bool { return true }

func (f *CreatedOnField) FormatForAPI(v any) (any, error) {
	return nil, &ReadOnlyError{FieldName: f.name}
}
