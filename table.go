package baserow

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Table is a handle to one Baserow table. The schema is fetched on first
// field access and cached for the Table's lifetime; mint a new Table to
// observe server-side schema changes.
//
// A Table is safe for concurrent use.
type Table struct {
	client *Client
	id     int

	mu     sync.Mutex
	fields *FieldList
}

func newTable(client *Client, id int) *Table {
	return &Table{client: client, id: id}
}

// ID returns the table id.
func (t *Table) ID() int { return t.id }

// Client returns the owning client.
func (t *Table) Client() *Client { return t.client }

// Fields returns the table's field schema, fetching it on first call.
func (t *Table) Fields(ctx context.Context) (*FieldList, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fields != nil {
		return t.fields, nil
	}

	endpoint := fmt.Sprintf("/api/database/fields/table/%d/", t.id)
	result, err := t.client.executor.Do(ctx, &Request{Method: http.MethodGet, URL: endpoint})
	if err != nil {
		return nil, fmt.Errorf("%w: table %d: %w", ErrSchemaFetch, t.id, err)
	}
	records, ok := result.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: table %d: unexpected schema shape %T", ErrSchemaFetch, t.id, result)
	}

	fields := make([]Field, 0, len(records))
	for _, record := range records {
		data, ok := record.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: table %d: unexpected field record shape %T", ErrSchemaFetch, t.id, record)
		}
		name, ok := fieldData(data).str("name")
		if !ok {
			return nil, fmt.Errorf("%w: table %d: field record missing name", ErrSchemaFetch, t.id)
		}
		field, err := newField(name, fieldData(data))
		if err != nil {
			return nil, fmt.Errorf("%w: table %d: %w", ErrSchemaFetch, t.id, err)
		}
		fields = append(fields, field)
	}
	t.fields = newFieldList(fields)
	return t.fields, nil
}

// Field returns one field of the schema by name.
func (t *Table) Field(ctx context.Context, name string) (Field, error) {
	fields, err := t.Fields(ctx)
	if err != nil {
		return nil, err
	}
	return fields.Get(name)
}

// FieldNames returns the field names in schema order.
func (t *Table) FieldNames(ctx context.Context) ([]string, error) {
	fields, err := t.Fields(ctx)
	if err != nil {
		return nil, err
	}
	return fields.Names(), nil
}

// PrimaryField returns the schema's primary field.
func (t *Table) PrimaryField(ctx context.Context) (Field, error) {
	fields, err := t.Fields(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range fields.All() {
		if f.IsPrimary() {
			return f, nil
		}
	}
	return nil, fmt.Errorf("table %d has no primary field", t.id)
}

// rowFromData builds a Row from one server row record.
func (t *Table) rowFromData(ctx context.Context, data map[string]any) (*Row, error) {
	fields, err := t.Fields(ctx)
	if err != nil {
		return nil, err
	}
	return newRow(t, fields, data)
}

// GetRow fetches one row by id.
func (t *Table) GetRow(ctx context.Context, rowID int) (*Row, error) {
	endpoint := fmt.Sprintf("%s%d/?user_field_names=true", rowsPath(t.id), rowID)
	result, err := t.client.executor.Do(ctx, &Request{Method: http.MethodGet, URL: endpoint})
	if err != nil {
		return nil, rowErr(ErrRowFetch, t.id, rowID, err)
	}
	data, ok := result.(map[string]any)
	if !ok {
		return nil, rowErr(ErrRowFetch, t.id, rowID, fmt.Errorf("unexpected row shape %T", result))
	}
	return t.rowFromData(ctx, data)
}

// GetRows returns an iterator over the rows selected by params. Parameter
// and filter validation happens on the first Next call; a validation
// failure surfaces through Err before any request is sent.
func (t *Table) GetRows(ctx context.Context, params *QueryParams) *RowIterator {
	return newRowIterator(ctx, t, params)
}

// GetSingleRow returns the first row selected by params, or (nil, nil)
// when the selection is empty.
func (t *Table) GetSingleRow(ctx context.Context, params *QueryParams) (*Row, error) {
	iter := t.GetRows(ctx, params)
	if iter.Next() {
		return iter.Row(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

// batchPath is the endpoint for chunked adds and updates.
func (t *Table) batchPath() string {
	return rowsPath(t.id) + "batch/?user_field_names=true"
}

// submitBatch sends one chunked mutation and collects the echoed rows in
// input order.
func (t *Table) submitBatch(ctx context.Context, method string, items []map[string]any, op error) ([]*Row, error) {
	var rows []*Row
	for start := 0; start < len(items); start += t.client.batchSize {
		end := min(start+t.client.batchSize, len(items))
		result, err := t.client.executor.Do(ctx, &Request{
			Method: method,
			URL:    t.batchPath(),
			Body:   map[string]any{"items": items[start:end]},
		})
		if err != nil {
			return nil, rowErr(op, t.id, 0, err)
		}
		page, ok := result.(map[string]any)
		if !ok {
			return nil, rowErr(op, t.id, 0, fmt.Errorf("unexpected batch response shape %T", result))
		}
		echoed, ok := page["items"].([]any)
		if !ok {
			return nil, rowErr(op, t.id, 0, fmt.Errorf("batch response missing items"))
		}
		for _, item := range echoed {
			data, ok := item.(map[string]any)
			if !ok {
				return nil, rowErr(op, t.id, 0, fmt.Errorf("unexpected row shape %T in batch response", item))
			}
			row, err := t.rowFromData(ctx, data)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// AddRow creates one row from a values map and returns the stored row. A
// single add posts to the row endpoint directly; only AddRows uses the
// batch endpoint.
func (t *Table) AddRow(ctx context.Context, values map[string]any) (*Row, error) {
	formatted, err := validateRowValues(ctx, t, values, false)
	if err != nil {
		return nil, rowErr(ErrRowAdd, t.id, 0, err)
	}
	result, err := t.client.executor.Do(ctx, &Request{
		Method: http.MethodPost,
		URL:    rowsPath(t.id) + "?user_field_names=true",
		Body:   formatted,
	})
	if err != nil {
		return nil, rowErr(ErrRowAdd, t.id, 0, err)
	}
	data, ok := result.(map[string]any)
	if !ok {
		return nil, rowErr(ErrRowAdd, t.id, 0, fmt.Errorf("unexpected row shape %T", result))
	}
	return t.rowFromData(ctx, data)
}

// AddRows creates rows in chunks of the client's batch size. Returned rows
// preserve input order.
func (t *Table) AddRows(ctx context.Context, values []map[string]any) ([]*Row, error) {
	items := make([]map[string]any, 0, len(values))
	for _, entry := range values {
		formatted, err := validateRowValues(ctx, t, entry, false)
		if err != nil {
			return nil, rowErr(ErrRowAdd, t.id, 0, err)
		}
		items = append(items, formatted)
	}
	return t.submitBatch(ctx, http.MethodPost, items, ErrRowAdd)
}

// UpdateRows applies value maps in chunks. Every map must carry the target
// row's "id".
func (t *Table) UpdateRows(ctx context.Context, values []map[string]any) ([]*Row, error) {
	items := make([]map[string]any, 0, len(values))
	for _, entry := range values {
		if _, ok := entry[keyRowID]; !ok {
			return nil, rowErr(ErrRowUpdate, t.id, 0, fmt.Errorf("update entry missing id"))
		}
		formatted, err := validateRowValues(ctx, t, entry, true)
		if err != nil {
			return nil, rowErr(ErrRowUpdate, t.id, 0, err)
		}
		items = append(items, formatted)
	}
	return t.submitBatch(ctx, http.MethodPatch, items, ErrRowUpdate)
}

// UpdateRowList persists the current in-memory values of the given rows.
func (t *Table) UpdateRowList(ctx context.Context, rows []*Row) ([]*Row, error) {
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		payload, err := row.writePayload()
		if err != nil {
			return nil, rowErr(ErrRowUpdate, t.id, row.ID(), err)
		}
		payload[keyRowID] = row.ID()
		items = append(items, payload)
	}
	return t.submitBatch(ctx, http.MethodPatch, items, ErrRowUpdate)
}

// DeleteRows deletes rows by id in chunks of the client's batch size.
func (t *Table) DeleteRows(ctx context.Context, rowIDs []int) error {
	endpoint := rowsPath(t.id) + "batch-delete/"
	for start := 0; start < len(rowIDs); start += t.client.batchSize {
		end := min(start+t.client.batchSize, len(rowIDs))
		_, err := t.client.executor.Do(ctx, &Request{
			Method: http.MethodPost,
			URL:    endpoint,
			Body:   map[string]any{"items": rowIDs[start:end]},
		})
		if err != nil {
			return rowErr(ErrRowDelete, t.id, 0, err)
		}
	}
	return nil
}

// DeleteRowList deletes the given rows.
func (t *Table) DeleteRowList(ctx context.Context, rows []*Row) error {
	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		if row.ID() == 0 {
			return rowErr(ErrRowDelete, t.id, 0, fmt.Errorf("row has no id"))
		}
		ids = append(ids, row.ID())
	}
	return t.DeleteRows(ctx, ids)
}
