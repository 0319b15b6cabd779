package baserow

var fileFilters = []string{
	"filename_contains", "has_file_type",
	"empty", "not_empty",
}

// FileField holds a list of file attachments. Each entry is the metadata
// object the upload endpoints return; the server matches attachments by
// their generated name.
type FileField struct {
	baseField
}

func newFileField(name string, data fieldData) (Field, error) {
	base, err := newBaseField(name, data)
	if err != nil {
		return nil, err
	}
	return &FileField{baseField: base}, nil
}

func (f *FileField) ValidateValue(v any) error {
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return newValidationError(f.name, "expected a list of file objects for file field, got %T", v)
	}
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return newValidationError(f.name, "expected a file object in file list, got %T", item)
		}
		if _, ok := fieldData(entry).str("name"); !ok {
			return newValidationError(f.name, "file object missing name")
		}
	}
	return nil
}

func (f *FileField) FormatForAPI(v any) (any, error) { return validateAndPass(f, v) }

func (f *FileField) CompatibleFilters() []string { return fileFilters }
