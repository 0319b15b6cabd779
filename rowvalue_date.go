package baserow

import (
	"fmt"
	"time"

	"github.com/tidyrows/baserow-go/internal/dateutil"
)

// DateRowValue wraps date, last_modified, and created_on cells with typed
// accessors over the field's format settings.
type DateRowValue struct {
	baseRowValue
}

func (v *DateRowValue) settings() (*dateField, error) {
	switch f := v.field.(type) {
	case *DateField:
		return &f.dateField, nil
	case *LastModifiedField:
		return &f.dateField, nil
	case *CreatedOnField:
		return &f.dateField, nil
	default:
		return nil, fmt.Errorf("field %q does not carry date settings", v.field.Name())
	}
}

// AsTime parses the current value as a time.Time. An unset cell is an
// error; check Value for nil first when absence is expected.
func (v *DateRowValue) AsTime() (time.Time, error) {
	if v.raw == nil {
		return time.Time{}, fmt.Errorf("field %q: no date value set", v.field.Name())
	}
	s, ok := v.raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q: expected a date string, got %T", v.field.Name(), v.raw)
	}
	t, err := dateutil.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q: %w", v.field.Name(), err)
	}
	return t, nil
}

// FormattedDate renders the current value per the field's display settings
// (date_format, date_time_format, date_show_tzinfo, date_force_timezone).
func (v *DateRowValue) FormattedDate() (string, error) {
	if v.raw == nil {
		return "", nil
	}
	s, ok := v.raw.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected a date string, got %T", v.field.Name(), v.raw)
	}
	settings, err := v.settings()
	if err != nil {
		return "", err
	}
	out, err := dateutil.Format(s, settings.formatConfig())
	if err != nil {
		return "", fmt.Errorf("field %q: %w", v.field.Name(), err)
	}
	return out, nil
}
