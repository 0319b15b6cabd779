package baserow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchContact(t *testing.T, fake *fakeBaserow, id int) (*Table, *Row) {
	t.Helper()
	table := fake.client(t).Table(99)
	row, err := table.GetRow(context.Background(), id)
	require.NoError(t, err)
	return table, row
}

func TestRow_GetSetContains(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace", "Last name": "Hopper", "Age": 37, "Active": true})
	_, row := fetchContact(t, fake, id)

	assert.True(t, row.Contains("Name"))
	assert.False(t, row.Contains("Ghost"))

	name, err := row.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Grace", name)

	_, err = row.Get("Ghost")
	assert.ErrorIs(t, err, ErrFieldNotFound)

	require.NoError(t, row.Set("Name", "Grace M."))
	name, err = row.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Grace M.", name)

	err = row.Set("Name", 42)
	var vErr *FieldValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestRow_SetReadOnlyCell_Fails(t *testing.T) {
	fields := append(contactFields(), map[string]any{
		"id": 5, "name": "Created", "type": "created_on", "order": 4,
	})
	fake := newFakeBaserow(t, 99, fields)
	id := fake.addRow(map[string]any{"Name": "Grace", "Created": "2024-08-15T10:00:00Z"})
	_, row := fetchContact(t, fake, id)

	err := row.Set("Created", "2025-01-01T00:00:00Z")
	var roErr *ReadOnlyError
	require.ErrorAs(t, err, &roErr)
	assert.Equal(t, "Created", roErr.FieldName)

	// The stored value is untouched.
	v, err := row.Get("Created")
	require.NoError(t, err)
	assert.Equal(t, "2024-08-15T10:00:00Z", v)
}

func TestRow_ToMap(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace", "Age": 37})
	_, row := fetchContact(t, fake, id)

	m := row.ToMap()
	assert.Equal(t, "Grace", m["Name"])
	assert.NotContains(t, m, "id")
}

func TestRow_Equal_IdentityIsTableAndID(t *testing.T) {
	fields := newFieldList([]Field{
		mustField(t, "Name", fieldData{"type": "text", "order": 0}),
	})
	rowIn := func(tableID int, data map[string]any) *Row {
		row, err := newRow(newTable(nil, tableID), fields, data)
		require.NoError(t, err)
		return row
	}

	a := rowIn(1, map[string]any{"id": 7, "Name": "x"})
	b := rowIn(2, map[string]any{"id": 7, "Name": "x"})
	assert.False(t, a.Equal(b), "same id in different tables is a different row")

	// Same row fetched with different cell subsets is still the same row.
	full := rowIn(1, map[string]any{"id": 7, "Name": "y"})
	sparse := rowIn(1, map[string]any{"id": 7})
	assert.True(t, full.Equal(sparse))

	assert.False(t, a.Equal(rowIn(1, map[string]any{"id": 8, "Name": "x"})))
	assert.False(t, a.Equal(nil))
}

func TestRow_SameValues(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace", "Age": 37})
	_, a := fetchContact(t, fake, id)
	_, b := fetchContact(t, fake, id)

	assert.True(t, a.SameValues(b))
	require.NoError(t, b.Set("Name", "Ada"))
	assert.False(t, a.SameValues(b))
	assert.False(t, a.SameValues(nil))
}

func TestRow_Update_WithValuesMap(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace", "Age": 37})
	table, row := fetchContact(t, fake, id)

	require.NoError(t, row.Update(context.Background(), map[string]any{"Age": 38}))

	// The server echo replaced the cells.
	age, err := row.Get("Age")
	require.NoError(t, err)
	assert.Equal(t, 38.0, age)

	fetched, err := table.GetRow(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, row.Equal(fetched))
	assert.True(t, row.SameValues(fetched))
}

func TestRow_Update_NilSubmitsInMemoryState(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace", "Age": 37})
	table, row := fetchContact(t, fake, id)

	require.NoError(t, row.Set("Age", 40))
	require.NoError(t, row.Update(context.Background(), nil))

	fetched, err := table.GetRow(context.Background(), id)
	require.NoError(t, err)
	age, err := fetched.Get("Age")
	require.NoError(t, err)
	assert.Equal(t, 40.0, age)
}

func TestRow_Update_ValidationFailureLeavesStateUntouched(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace", "Age": 37})
	_, row := fetchContact(t, fake, id)

	before := len(fake.requestLog())
	err := row.Update(context.Background(), map[string]any{"Age": -1})
	assert.ErrorIs(t, err, ErrRowUpdate)

	age, getErr := row.Get("Age")
	require.NoError(t, getErr)
	assert.Equal(t, 37.0, age)
	assert.Len(t, fake.requestLog(), before, "no request may go out on validation failure")
}

func TestRow_ApplyLocal(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace", "Age": 37})
	_, row := fetchContact(t, fake, id)

	before := len(fake.requestLog())
	require.NoError(t, row.ApplyLocal(map[string]any{"Name": "Ada", "Age": 28}))
	assert.Len(t, fake.requestLog(), before)

	name, err := row.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)

	assert.ErrorIs(t, row.ApplyLocal(map[string]any{"Ghost": 1}), ErrFieldNotFound)
}

func TestRow_ApplyLocal_FailureChangesNothing(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Hopper", "Age": 37})
	_, row := fetchContact(t, fake, id)

	// One valid and one invalid entry; whatever order the map iterates
	// in, no cell may keep the staged value.
	err := row.ApplyLocal(map[string]any{"Name": "Grace", "Age": "not-a-number"})
	require.Error(t, err)

	name, getErr := row.Get("Name")
	require.NoError(t, getErr)
	assert.Equal(t, "Hopper", name)
	age, getErr := row.Get("Age")
	require.NoError(t, getErr)
	assert.Equal(t, 37.0, age)
}

func TestRow_Delete(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace"})
	table, row := fetchContact(t, fake, id)

	require.NoError(t, row.Delete(context.Background()))
	_, err := table.GetRow(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRow_Delete_NotFound(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	id := fake.addRow(map[string]any{"Name": "Grace"})
	_, row := fetchContact(t, fake, id)

	require.NoError(t, row.Delete(context.Background()))
	err := row.Delete(context.Background())
	assert.ErrorIs(t, err, ErrRowDelete)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRow_Move(t *testing.T) {
	fake := newFakeBaserow(t, 99, contactFields())
	a := fake.addRow(map[string]any{"Name": "Grace"})
	fake.addRow(map[string]any{"Name": "Ada"})
	_, row := fetchContact(t, fake, a)

	moved, err := row.Move(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, a, moved.ID())
}
