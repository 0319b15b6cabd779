package baserow

// PasswordRowValue wraps a password cell. The server never returns the
// stored secret; reads carry true when a password is set and null when not.
type PasswordRowValue struct {
	baseRowValue
}

// IsSet reports whether the server has a password stored for this cell, or
// whether a new one is staged locally.
func (v *PasswordRowValue) IsSet() bool {
	switch val := v.raw.(type) {
	case bool:
		return val
	case string:
		return val != ""
	default:
		return false
	}
}

// Set stages a new password (string) or clears it (nil).
func (v *PasswordRowValue) Set(newValue any) error {
	if newValue != nil {
		if _, ok := newValue.(string); !ok {
			return newValidationError(v.field.Name(), "expected a string or nil for password field, got %T", newValue)
		}
	}
	return v.baseRowValue.Set(newValue)
}
