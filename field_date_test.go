package baserow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateFieldData(includeTime bool) fieldData {
	return fieldData{
		"type":              "date",
		"date_format":       "ISO",
		"date_include_time": includeTime,
		"date_time_format":  "24",
	}
}

func TestDateField_NormalizesOnFormat(t *testing.T) {
	f := mustField(t, "Due", dateFieldData(true))

	out, err := f.FormatForAPI("2024/8/15")
	require.NoError(t, err)
	assert.Equal(t, "2024-08-15T00:00:00Z", out)
}

func TestDateField_FormatIsStable(t *testing.T) {
	f := mustField(t, "Due", dateFieldData(true))

	once, err := f.FormatForAPI("2024/8/15")
	require.NoError(t, err)
	twice, err := f.FormatForAPI(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestDateField_DateOnlyRejectsTime(t *testing.T) {
	f := mustField(t, "Birthday", dateFieldData(false))

	out, err := f.FormatForAPI("2024-08-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-08-15", out)

	assert.Error(t, f.ValidateValue("2024-08-15T10:00:00Z"))
}

func TestDateField_NilPassesThrough(t *testing.T) {
	f := mustField(t, "Due", dateFieldData(true))
	assert.NoError(t, f.ValidateValue(nil))
	out, err := f.FormatForAPI(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDateField_InvalidSettingsRejected(t *testing.T) {
	_, err := newField("Due", fieldData{"type": "date", "date_format": "JP"})
	assert.Error(t, err)

	_, err = newField("Due", fieldData{"type": "date", "date_time_format": "36"})
	assert.Error(t, err)
}

func TestDateField_OperatorWhitelist(t *testing.T) {
	f := mustField(t, "Due", dateFieldData(true))
	ops := f.CompatibleFilters()
	assert.Contains(t, ops, "date_equal")
	assert.Contains(t, ops, "date_before")
	assert.Contains(t, ops, "date_within_days")
	assert.NotContains(t, ops, "higher_than")
}

func TestLastModifiedAndCreatedOn_ReadOnly(t *testing.T) {
	for _, tag := range []string{"last_modified", "created_on"} {
		f := mustField(t, "Stamp", fieldData{"type": tag})
		assert.True(t, f.IsReadOnly(), tag)
		assert.NoError(t, f.ValidateValue("2024-08-15T10:00:00Z"), tag)
		_, err := f.FormatForAPI("2024-08-15T10:00:00Z")
		var roErr *ReadOnlyError
		assert.ErrorAs(t, err, &roErr, tag)
	}
}
