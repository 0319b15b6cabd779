package baserow

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParams selects and orders the rows a table query returns. The zero
// value (or nil) selects everything.
type QueryParams struct {
	// Include restricts the returned cells to these field names.
	Include []string
	// Exclude drops these field names from the returned cells.
	Exclude []string
	// Search keeps only rows matching the server's full-text search.
	Search string
	// OrderBy sorts by field names, each optionally prefixed with + or -
	// for direction.
	OrderBy []string
	// Filters keeps only rows matching the predicates, combined per
	// FilterType.
	Filters []Filter
	// FilterType combines Filters with "AND" or "OR". Defaults to AND.
	FilterType string
	// ViewID scopes the query to a view.
	ViewID int
	// Size sets the page size.
	Size int
}

// validate fails fast on parameter values the server would reject.
func (p *QueryParams) validate() error {
	if p == nil {
		return nil
	}
	switch p.FilterType {
	case "", "AND", "OR":
	default:
		return fmt.Errorf("invalid filter_type %q, expected AND or OR", p.FilterType)
	}
	if p.ViewID < 0 {
		return fmt.Errorf("view_id must be a positive integer, got %d", p.ViewID)
	}
	if p.Size < 0 {
		return fmt.Errorf("size must be a positive integer, got %d", p.Size)
	}
	for _, name := range p.OrderBy {
		if strings.TrimPrefix(strings.TrimPrefix(name, "+"), "-") == "" {
			return fmt.Errorf("order_by entry must name a field")
		}
	}
	return nil
}

// encode renders the query string, always carrying user_field_names=true.
// List parameters are comma-joined; filters become one JSON-encoded
// parameter.
func (p *QueryParams) encode() (string, error) {
	values := url.Values{}
	values.Set("user_field_names", "true")
	if p != nil {
		if err := p.validate(); err != nil {
			return "", err
		}
		if len(p.Include) > 0 {
			values.Set("include", strings.Join(p.Include, ","))
		}
		if len(p.Exclude) > 0 {
			values.Set("exclude", strings.Join(p.Exclude, ","))
		}
		if p.Search != "" {
			values.Set("search", p.Search)
		}
		if len(p.OrderBy) > 0 {
			values.Set("order_by", strings.Join(p.OrderBy, ","))
		}
		if p.ViewID > 0 {
			values.Set("view_id", strconv.Itoa(p.ViewID))
		}
		if p.Size > 0 {
			values.Set("size", strconv.Itoa(p.Size))
		}
		if len(p.Filters) > 0 {
			tree, err := encodeFilterTree(p.Filters, p.FilterType)
			if err != nil {
				return "", err
			}
			values.Set("filters", tree)
		}
	}
	return values.Encode(), nil
}

// rowsPath is the base path for row queries on one table.
func rowsPath(tableID int) string {
	return fmt.Sprintf("/api/database/rows/table/%d/", tableID)
}

// buildRowsURL composes the full relative URL for a row query.
func buildRowsURL(tableID int, params *QueryParams) (string, error) {
	query, err := params.encode()
	if err != nil {
		return "", err
	}
	return rowsPath(tableID) + "?" + query, nil
}
