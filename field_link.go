package baserow

import (
	"strings"
)

var linkRowFilters = []string{
	"link_row_has", "link_row_has_not",
	"link_row_contains", "link_row_not_contains",
	"empty", "not_empty",
}

// TableLinkField references rows in another table. Values are lists of the
// linked rows' primary field text or row ids.
type TableLinkField struct {
	baseField
}

func newTableLinkField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &TableLinkField{baseField: base}, nil
}

// LinkRowTableID returns the id of the table this field links to.
func (f *TableLinkField) LinkRowTableID() (int, bool) {
	return f.data.intVal("link_row_table_id")
}

// LinkRowRelatedFieldID returns the id of the reverse link field in the
// linked table, when one exists.
func (f *TableLinkField) LinkRowRelatedFieldID() (int, bool) {
	return f.data.intVal("link_row_related_field_id")
}

// normalizeLinkValue flattens the accepted write shapes into a list: a bare
// string or id, a comma-separated string, a list of strings or ids, or the
// server's read shape (a list of {id, value} objects).
func (f *TableLinkField) normalizeLinkValue(v any) ([]any, error) {
	var items []any
	switch val := v.(type) {
	case string:
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, part)
			}
		}
		return items, nil
	case []any:
		items = val
	case []string:
		for _, s := range val {
			items = append(items, s)
		}
	case []int:
		for _, n := range val {
			items = append(items, n)
		}
	default:
		if _, ok := asInt(v); ok {
			return []any{v}, nil
		}
		return nil, newValidationError(f.name, "expected a string, id, or list for link_row field, got %T", v)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		switch entry := item.(type) {
		case string:
			out = append(out, entry)
		case map[string]any:
			id, ok := fieldData(entry).intVal("id")
			if !ok {
				return nil, newValidationError(f.name, "link object missing id")
			}
			out = append(out, id)
		default:
			n, ok := asInt(item)
			if !ok {
				return nil, newValidationError(f.name, "expected a string or id in link_row list, got %T", item)
			}
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *TableLinkField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	_, err := f.normalizeLinkValue(v)
	return err
}

// FormatForAPI normalizes any accepted shape into the list the server
// expects on write. Server read shapes collapse to row ids, so a round trip
// through a fetched row submits cleanly.
func (f *TableLinkField) FormatForAPI(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return f.normalizeLinkValue(v)
}

func (f *TableLinkField) CompatibleFilters() []string { return linkRowFilters }
