package baserow

import (
	"context"
	"fmt"
	"net/http"
)

// emptyPageLimit stops iteration after this many consecutive pages with no
// rows, guarding against a misbehaving server that keeps emitting next
// links.
const emptyPageLimit = 5

// RowIterator streams the rows of a table query page by page. Usage
// follows the bufio.Scanner pattern:
//
//	iter := table.GetRows(ctx, params)
//	for iter.Next() {
//		row := iter.Row()
//	}
//	if err := iter.Err(); err != nil { ... }
//
// Pages are fetched lazily; the server's returned order is preserved.
type RowIterator struct {
	ctx    context.Context
	table  *Table
	params *QueryParams

	nextURL    string
	started    bool
	done       bool
	emptyPages int
	buffer     []*Row
	current    *Row
	err        error
}

func newRowIterator(ctx context.Context, table *Table, params *QueryParams) *RowIterator {
	return &RowIterator{ctx: ctx, table: table, params: params}
}

// Next advances to the next row, fetching pages as needed. It returns
// false at the end of the selection or on the first error; Err tells the
// two apart.
func (it *RowIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.buffer) == 0 {
		if it.done {
			return false
		}
		if !it.fetchPage() {
			return false
		}
	}
	it.current = it.buffer[0]
	it.buffer = it.buffer[1:]
	return true
}

// Row returns the row Next advanced to.
func (it *RowIterator) Row() *Row { return it.current }

// Err returns the first error the iteration hit, if any.
func (it *RowIterator) Err() error { return it.err }

func (it *RowIterator) fail(err error) bool {
	it.err = err
	it.done = true
	return false
}

// fetchPage loads the next page into the buffer. The first call validates
// parameters and filters before any request goes out.
func (it *RowIterator) fetchPage() bool {
	if !it.started {
		it.started = true
		if err := validateFilters(it.ctx, it.table, it.paramsFilters()); err != nil {
			return it.fail(err)
		}
		url, err := buildRowsURL(it.table.id, it.params)
		if err != nil {
			return it.fail(err)
		}
		it.nextURL = url
	}
	if it.nextURL == "" {
		it.done = true
		return false
	}

	result, err := it.table.client.executor.Do(it.ctx, &Request{
		Method: http.MethodGet,
		URL:    it.nextURL,
	})
	if err != nil {
		return it.fail(rowErr(ErrRowFetch, it.table.id, 0, err))
	}
	page, ok := result.(map[string]any)
	if !ok {
		return it.fail(rowErr(ErrRowFetch, it.table.id, 0, fmt.Errorf("unexpected page shape %T", result)))
	}

	results, _ := page["results"].([]any)
	for _, item := range results {
		data, ok := item.(map[string]any)
		if !ok {
			return it.fail(rowErr(ErrRowFetch, it.table.id, 0, fmt.Errorf("unexpected row shape %T", item)))
		}
		row, err := it.table.rowFromData(it.ctx, data)
		if err != nil {
			return it.fail(err)
		}
		it.buffer = append(it.buffer, row)
	}

	if len(results) == 0 {
		it.emptyPages++
		if it.emptyPages >= emptyPageLimit {
			it.done = true
			return false
		}
	} else {
		it.emptyPages = 0
	}

	next, _ := page["next"].(string)
	it.nextURL = next
	if next == "" {
		it.done = true
	}
	return true
}

func (it *RowIterator) paramsFilters() []Filter {
	if it.params == nil {
		return nil
	}
	return it.params.Filters
}
