package baserow

import (
	"context"
	"slices"
)

// reserved row keys a values map may carry alongside field names.
const (
	keyRowID    = "id"
	keyRowOrder = "order"
)

// validateFilters checks every predicate against the table schema: the
// field must exist and the operator must be in the field's whitelist. For
// fields that state no whitelist (formula, lookup, unknown types) the
// operator check is skipped and the server arbitrates.
func validateFilters(ctx context.Context, table *Table, filters []Filter) error {
	if len(filters) == 0 {
		return nil
	}
	fields, err := table.Fields(ctx)
	if err != nil {
		return err
	}
	for _, f := range filters {
		field, err := fields.Get(f.Field())
		if err != nil {
			return &FilterError{FieldName: f.Field(), Operator: f.Operator(), Err: ErrInvalidFieldName}
		}
		compatible := field.CompatibleFilters()
		if compatible == nil {
			continue
		}
		if !slices.Contains(compatible, f.Operator()) {
			return &FilterError{FieldName: f.Field(), Operator: f.Operator(), Err: ErrInvalidOperator}
		}
	}
	return nil
}

// validateRowValues checks a values map against the table schema and
// renders it into the write shape: every key must name a field or, on
// updates, a reserved row key; read-only fields are rejected, and each
// value passes through its field's FormatForAPI. The reserved id and
// order keys address an existing row, so adds reject them before any
// network call.
func validateRowValues(ctx context.Context, table *Table, values map[string]any, isUpdate bool) (map[string]any, error) {
	fields, err := table.Fields(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(values))
	for name, value := range values {
		switch name {
		case keyRowID:
			if !isUpdate {
				return nil, newValidationError(name, "row id is not allowed when adding rows")
			}
			id, ok := asInt(value)
			if !ok || id <= 0 {
				return nil, newValidationError(name, "row id must be a positive integer, got %v", value)
			}
			out[name] = id
			continue
		case keyRowOrder:
			if !isUpdate {
				return nil, newValidationError(name, "row order is not allowed when adding rows")
			}
			n, _, ok := asNumber(value)
			if !ok || n <= 0 {
				return nil, newValidationError(name, "row order must be a positive number, got %v", value)
			}
			out[name] = value
			continue
		}
		field, err := fields.Get(name)
		if err != nil {
			return nil, err
		}
		if field.IsReadOnly() {
			return nil, &ReadOnlyError{FieldName: name}
		}
		formatted, err := field.FormatForAPI(value)
		if err != nil {
			return nil, err
		}
		out[name] = formatted
	}
	return out, nil
}
