package baserow

import (
	"context"
	"fmt"
	"net/http"
)

// Row is one table row: an id, a sort order, and a typed cell per present
// field. Rows fetched with include/exclude carry a subset of the schema's
// cells; absent fields are unknown, not null.
//
// A Row is not safe for concurrent mutation.
type Row struct {
	table  *Table
	fields *FieldList
	id     int
	order  any
	values *RowValueList
}

// newRow builds a Row from one server record. Keys must name schema fields
// apart from the reserved id and order entries.
func newRow(table *Table, fields *FieldList, data map[string]any) (*Row, error) {
	row := &Row{table: table, fields: fields}
	cells := make([]RowValue, 0, len(data))
	for _, name := range orderedKeys(fields, data) {
		raw := data[name]
		switch name {
		case keyRowID:
			id, ok := asInt(raw)
			if !ok {
				return nil, &InvalidRowValueError{FieldName: name, Reason: fmt.Sprintf("row id must be an integer, got %T", raw)}
			}
			row.id = id
			continue
		case keyRowOrder:
			row.order = raw
			continue
		}
		field, err := fields.Get(name)
		if err != nil {
			return nil, &InvalidRowValueError{FieldName: name, Reason: "not in the table schema"}
		}
		cell, err := newRowValue(field, raw, table.client)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	row.values = newRowValueList(cells)
	return row, nil
}

// orderedKeys yields the record's field keys in schema order, reserved
// keys first, so cell order is deterministic.
func orderedKeys(fields *FieldList, data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for _, name := range []string{keyRowID, keyRowOrder} {
		if _, ok := data[name]; ok {
			keys = append(keys, name)
		}
	}
	for _, name := range fields.Names() {
		if _, ok := data[name]; ok {
			keys = append(keys, name)
		}
	}
	return keys
}

// ID returns the row id, or zero for an unsaved draft.
func (r *Row) ID() int { return r.id }

// Order returns the row's sort position as reported by the server.
func (r *Row) Order() any { return r.order }

// Table returns the owning table.
func (r *Row) Table() *Table { return r.table }

// Contains reports whether the row carries a cell for the field.
func (r *Row) Contains(name string) bool { return r.values.Contains(name) }

// Get returns the raw value of one cell.
func (r *Row) Get(name string) (any, error) {
	cell, err := r.values.Get(name)
	if err != nil {
		return nil, err
	}
	return cell.Value(), nil
}

// Value returns the typed cell for one field.
func (r *Row) Value(name string) (RowValue, error) {
	return r.values.Get(name)
}

// Values returns every cell in field order.
func (r *Row) Values() []RowValue { return r.values.All() }

// Set validates and stores a new in-memory value for one cell. Nothing is
// sent to the server until Update.
func (r *Row) Set(name string, value any) error {
	cell, err := r.values.Get(name)
	if err != nil {
		return err
	}
	return cell.Set(value)
}

// ToMap returns the raw value of every cell keyed by field name.
func (r *Row) ToMap() map[string]any {
	out := make(map[string]any, r.values.Len())
	for _, cell := range r.values.All() {
		out[cell.Name()] = cell.Value()
	}
	return out
}

// Equal reports row identity: same table, same id. Cell contents do not
// participate, so two fetches of one row with different include subsets
// still compare equal. Use SameValues to compare contents.
func (r *Row) Equal(other *Row) bool {
	return other != nil && r.table.id == other.table.id && r.id == other.id
}

// SameValues reports whether two rows carry the same cells with
// structurally equal raw values.
func (r *Row) SameValues(other *Row) bool {
	if other == nil || r.values.Len() != other.values.Len() {
		return false
	}
	for _, cell := range r.values.All() {
		otherCell, err := other.values.Get(cell.Name())
		if err != nil {
			return false
		}
		if !equalValues(cell.Value(), otherCell.Value()) {
			return false
		}
	}
	return true
}

// writePayload renders every writable cell into the write shape.
func (r *Row) writePayload() (map[string]any, error) {
	payload := make(map[string]any, r.values.Len())
	for _, cell := range r.values.All() {
		if cell.IsReadOnly() {
			continue
		}
		formatted, err := cell.FormatForAPI()
		if err != nil {
			return nil, err
		}
		payload[cell.Name()] = formatted
	}
	return payload, nil
}

// rowEndpoint is the single-row path with user field names enabled.
func (r *Row) rowEndpoint() string {
	return fmt.Sprintf("%s%d/?user_field_names=true", rowsPath(r.table.id), r.id)
}

// ApplyLocal validates values against the schema and updates the
// in-memory cells without touching the server. The update is atomic: when
// any entry fails, no cell changes.
func (r *Row) ApplyLocal(values map[string]any) error {
	for name := range values {
		if !r.values.Contains(name) {
			return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
		}
	}
	previous := make(map[string]any, len(values))
	for name, value := range values {
		cell, err := r.values.Get(name)
		if err != nil {
			return err
		}
		previous[name] = cell.Value()
		if err := cell.Set(value); err != nil {
			for restoreName, raw := range previous {
				restored, _ := r.values.Get(restoreName)
				restored.setRaw(raw)
			}
			return err
		}
	}
	return nil
}

// Update persists values to the server. With a nil map, the current
// in-memory value of every writable cell is submitted. On success the
// server's echo replaces the row's cells, so server-computed fields stay
// current. The in-memory state is untouched on failure.
func (r *Row) Update(ctx context.Context, values map[string]any) error {
	if r.id == 0 {
		return rowErr(ErrRowUpdate, r.table.id, 0, fmt.Errorf("row has no id"))
	}

	var payload map[string]any
	var err error
	if values == nil {
		payload, err = r.writePayload()
		if err != nil {
			return rowErr(ErrRowUpdate, r.table.id, r.id, err)
		}
	} else {
		payload, err = validateRowValues(ctx, r.table, values, true)
		if err != nil {
			return rowErr(ErrRowUpdate, r.table.id, r.id, err)
		}
		delete(payload, keyRowID)
	}

	result, err := r.table.client.executor.Do(ctx, &Request{
		Method: http.MethodPatch,
		URL:    r.rowEndpoint(),
		Body:   payload,
	})
	if err != nil {
		return rowErr(ErrRowUpdate, r.table.id, r.id, err)
	}
	data, ok := result.(map[string]any)
	if !ok {
		return rowErr(ErrRowUpdate, r.table.id, r.id, fmt.Errorf("unexpected row shape %T", result))
	}
	updated, err := newRow(r.table, r.fields, data)
	if err != nil {
		return rowErr(ErrRowUpdate, r.table.id, r.id, err)
	}
	r.id = updated.id
	r.order = updated.order
	r.values = updated.values
	return nil
}

// Delete removes the row from the server.
func (r *Row) Delete(ctx context.Context) error {
	if r.id == 0 {
		return rowErr(ErrRowDelete, r.table.id, 0, fmt.Errorf("row has no id"))
	}
	endpoint := fmt.Sprintf("%s%d/", rowsPath(r.table.id), r.id)
	result, err := r.table.client.executor.Do(ctx, &Request{
		Method: http.MethodDelete,
		URL:    endpoint,
	})
	if err != nil {
		return rowErr(ErrRowDelete, r.table.id, r.id, err)
	}
	if status, ok := result.(int); !ok || status != http.StatusNoContent {
		return rowErr(ErrRowDelete, r.table.id, r.id, fmt.Errorf("unexpected response %v", result))
	}
	return nil
}

// Move repositions the row before the row with beforeID, or to the end
// when beforeID is zero. The server's echo is returned as a new Row.
func (r *Row) Move(ctx context.Context, beforeID int) (*Row, error) {
	if r.id == 0 {
		return nil, rowErr(ErrRowMove, r.table.id, 0, fmt.Errorf("row has no id"))
	}
	endpoint := fmt.Sprintf("%s%d/move/?user_field_names=true", rowsPath(r.table.id), r.id)
	if beforeID > 0 {
		endpoint += fmt.Sprintf("&before_id=%d", beforeID)
	}
	result, err := r.table.client.executor.Do(ctx, &Request{
		Method: http.MethodPatch,
		URL:    endpoint,
	})
	if err != nil {
		return nil, rowErr(ErrRowMove, r.table.id, r.id, err)
	}
	data, ok := result.(map[string]any)
	if !ok {
		return nil, rowErr(ErrRowMove, r.table.id, r.id, fmt.Errorf("unexpected row shape %T", result))
	}
	moved, err := newRow(r.table, r.fields, data)
	if err != nil {
		return nil, rowErr(ErrRowMove, r.table.id, r.id, err)
	}
	return moved, nil
}
