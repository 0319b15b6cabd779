package baserow

import (
	"encoding/json"
	"fmt"
)

// Filter is one row predicate: field, operator, and comparison value. A
// Filter is immutable once constructed.
type Filter struct {
	field    string
	operator string
	value    any
}

// NewFilter builds a predicate. The operator defaults to "equal" when
// empty. Operator compatibility with the field is checked later, against
// the table schema, when the filter is used in a query.
func NewFilter(field, operator string, value any) (Filter, error) {
	if field == "" {
		return Filter{}, fmt.Errorf("%w: filter field name must not be empty", ErrInvalidFieldName)
	}
	if operator == "" {
		operator = "equal"
	}
	return Filter{field: field, operator: operator, value: value}, nil
}

// MustFilter is NewFilter for statically known arguments; it panics on a
// construction error.
func MustFilter(field, operator string, value any) Filter {
	f, err := NewFilter(field, operator, value)
	if err != nil {
		panic(err)
	}
	return f
}

// Field returns the field name the predicate applies to.
func (f Filter) Field() string { return f.field }

// Operator returns the comparison operator.
func (f Filter) Operator() string { return f.operator }

// Value returns the comparison value.
func (f Filter) Value() any { return f.value }

// filterEntry is the wire shape of one predicate inside the filter tree.
type filterEntry struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// filterTree is the wire shape of the filters query parameter.
type filterTree struct {
	FilterType string        `json:"filter_type"`
	Filters    []filterEntry `json:"filters"`
	Groups     []any         `json:"groups"`
}

// encodeFilterTree renders the predicates as the JSON document that goes
// into the single filters= query parameter. filterType defaults to AND.
func encodeFilterTree(filters []Filter, filterType string) (string, error) {
	if filterType == "" {
		filterType = "AND"
	}
	tree := filterTree{
		FilterType: filterType,
		Filters:    make([]filterEntry, 0, len(filters)),
		Groups:     []any{},
	}
	for _, f := range filters {
		tree.Filters = append(tree.Filters, filterEntry{
			Field: f.field,
			Type:  f.operator,
			Value: f.value,
		})
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("encode filters: %w", err)
	}
	return string(data), nil
}
