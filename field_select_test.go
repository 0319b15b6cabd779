package baserow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusFieldData(tag string) fieldData {
	return fieldData{
		"type": tag,
		"select_options": []any{
			map[string]any{"id": 10.0, "value": "todo", "color": "red"},
			map[string]any{"id": 11.0, "value": "doing", "color": "blue"},
			map[string]any{"id": 12.0, "value": "done", "color": "green"},
		},
	}
}

func TestSingleSelect_AcceptsValueIDOrObject(t *testing.T) {
	f := mustField(t, "Status", statusFieldData("single_select"))

	assert.NoError(t, f.ValidateValue("todo"))
	assert.NoError(t, f.ValidateValue(11))
	assert.NoError(t, f.ValidateValue(map[string]any{"id": 12.0, "value": "done"}))
	assert.NoError(t, f.ValidateValue(nil))
}

func TestSingleSelect_UnknownOption_Rejected(t *testing.T) {
	f := mustField(t, "Status", statusFieldData("single_select"))

	err := f.ValidateValue("archived")
	var vErr *FieldValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Status", vErr.FieldName)

	assert.Error(t, f.ValidateValue(999))
}

func TestSingleSelect_FormatForAPI_ResolvesToID(t *testing.T) {
	f := mustField(t, "Status", statusFieldData("single_select"))

	out, err := f.FormatForAPI("doing")
	require.NoError(t, err)
	assert.Equal(t, 11, out)

	// A server echo submits cleanly as the same id.
	out, err = f.FormatForAPI(map[string]any{"id": 11.0, "value": "doing", "color": "blue"})
	require.NoError(t, err)
	assert.Equal(t, 11, out)
}

func TestSingleSelect_OptionsIntrospection(t *testing.T) {
	f := mustField(t, "Status", statusFieldData("single_select")).(*SingleSelectField)

	assert.Equal(t, []string{"todo", "doing", "done"}, f.Options())
	details := f.OptionsDetails()
	require.Len(t, details, 3)
	assert.Equal(t, SelectOption{ID: 10, Value: "todo", Color: "red"}, details[0])
}

func TestMultipleSelect_FormatForAPI_ResolvesEveryEntry(t *testing.T) {
	f := mustField(t, "Tags", statusFieldData("multiple_select"))

	out, err := f.FormatForAPI([]any{"todo", 12})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 12}, out)

	out, err = f.FormatForAPI([]string{"doing"})
	require.NoError(t, err)
	assert.Equal(t, []int{11}, out)

	// Server read shape: list of option objects.
	out, err = f.FormatForAPI([]any{
		map[string]any{"id": 10.0, "value": "todo"},
		map[string]any{"id": 11.0, "value": "doing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, out)
}

func TestMultipleSelect_SingleItemTreatedAsList(t *testing.T) {
	f := mustField(t, "Tags", statusFieldData("multiple_select"))
	out, err := f.FormatForAPI("done")
	require.NoError(t, err)
	assert.Equal(t, []int{12}, out)
}

func TestMultipleSelect_UnknownEntry_Rejected(t *testing.T) {
	f := mustField(t, "Tags", statusFieldData("multiple_select"))
	assert.Error(t, f.ValidateValue([]any{"todo", "archived"}))
}

func TestSelect_MalformedOptionSchema_Rejected(t *testing.T) {
	_, err := newField("Status", fieldData{"type": "single_select", "select_options": "nope"})
	assert.Error(t, err)

	_, err = newField("Status", fieldData{"type": "single_select", "select_options": []any{"nope"}})
	assert.Error(t, err)
}
