package baserow

// FormulaField is a server-computed expression column. Always read-only.
// Its result type depends on the expression, so no operator whitelist can
// be stated client-side; CompatibleFilters returns nil and filter
// validation defers to the server.
type FormulaField struct {
	baseField
}

func newFormulaField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &FormulaField{baseField: base}, nil
}

func (f *FormulaField) IsReadOnly() bool { return true }

// Formula returns the expression text.
func (f *FormulaField) Formula() string { return f.data.strOr("formula", "") }

// FormulaType returns the server-declared result type of the expression.
func (f *FormulaField) FormulaType() string { return f.data.strOr("formula_type", "") }

// FormulaError returns the server-reported expression error, if any.
func (f *FormulaField) FormulaError() string { return f.data.strOr("error", "") }

func (f *FormulaField) ValidateValue(v any) error { return nil }

func (f *FormulaField) FormatForAPI(v any) (any, error) {
	return nil, &ReadOnlyError{FieldName: f.name}
}

func (f *FormulaField) CompatibleFilters() []string { return nil }

// LookupField surfaces values from a linked table through a link field.
// Always read-only; like formula, its result type is not known client-side.
type LookupField struct {
	baseField
}

func newLookupField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &LookupField{baseField: base}, nil
}

func (f *LookupField) IsReadOnly() bool { return true }

// ThroughFieldName returns the name of the link field the lookup follows.
func (f *LookupField) ThroughFieldName() string { return f.data.strOr("through_field_name", "") }

// TargetFieldName returns the name of the field read in the linked table.
func (f *LookupField) TargetFieldName() string { return f.data.strOr("target_field_name", "") }

func (f *LookupField) ValidateValue(v any) error { return nil }

func (f *LookupField) FormatForAPI(v any) (any, error) {
	return nil, &ReadOnlyError{FieldName: f.name}
}

func (f *LookupField) CompatibleFilters() []string { return nil }
