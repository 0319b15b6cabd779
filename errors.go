package baserow

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API failures. APIError unwraps to one of these so
// callers can branch with errors.Is without inspecting status codes.
var (
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("not found")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrServerUnavailable    = errors.New("server unavailable")

	// ErrTransport covers network I/O failures, timeouts, and any non-2xx
	// status that has no more specific kind.
	ErrTransport = errors.New("transport failure")
)

// Row operation sentinels. RowError unwraps to the sentinel for its
// operation.
var (
	ErrSchemaFetch = errors.New("schema fetch failed")
	ErrRowFetch    = errors.New("row fetch failed")
	ErrRowAdd      = errors.New("row add failed")
	ErrRowUpdate   = errors.New("row update failed")
	ErrRowDelete   = errors.New("row delete failed")
	ErrRowMove     = errors.New("row move failed")
)

// Filter validation sentinels.
var (
	ErrInvalidFieldName = errors.New("invalid field name in filter")
	ErrInvalidOperator  = errors.New("operator not compatible with field")
)

// ErrFieldNotFound is returned when a row or schema lookup names a field
// the table does not have.
var ErrFieldNotFound = errors.New("field not found")

// APIError describes a non-2xx response from the Baserow API.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("baserow: HTTP %d at %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("baserow: HTTP %d at %s: %s", e.StatusCode, e.URL, e.Message)
}

// Unwrap maps the status code to its sentinel kind.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	case 413:
		return ErrPayloadTooLarge
	case 415:
		return ErrUnsupportedMediaType
	case 500, 502, 503:
		return ErrServerUnavailable
	default:
		return ErrTransport
	}
}

// FieldValidationError reports a value rejected by a field's validator.
type FieldValidationError struct {
	FieldName string
	Reason    string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.FieldName, e.Reason)
}

func newValidationError(field, format string, args ...any) *FieldValidationError {
	return &FieldValidationError{FieldName: field, Reason: fmt.Sprintf(format, args...)}
}

// ReadOnlyError reports an attempt to write to a read-only cell or field.
type ReadOnlyError struct {
	FieldName string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("field %q is read-only", e.FieldName)
}

// InvalidRowValueError reports constructing a row value with a field of the
// wrong type, or a raw wire value the cell cannot carry.
type InvalidRowValueError struct {
	FieldName string
	Reason    string
}

func (e *InvalidRowValueError) Error() string {
	return fmt.Sprintf("row value for field %q: %s", e.FieldName, e.Reason)
}

// FilterError reports a filter that cannot be applied to the table schema.
// It unwraps to ErrInvalidFieldName or ErrInvalidOperator.
type FilterError struct {
	FieldName string
	Operator  string
	Err       error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter on %q with operator %q: %v", e.FieldName, e.Operator, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }

// RowError wraps a failed row operation with its table and row identity.
// RowID is zero for table-level operations like batch adds.
type RowError struct {
	Op      error // one of the row operation sentinels
	TableID int
	RowID   int
	Err     error
}

func (e *RowError) Error() string {
	if e.RowID != 0 {
		return fmt.Sprintf("%v: table %d row %d: %v", e.Op, e.TableID, e.RowID, e.Err)
	}
	return fmt.Sprintf("%v: table %d: %v", e.Op, e.TableID, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Is reports whether target matches this error's operation sentinel.
func (e *RowError) Is(target error) bool { return target == e.Op }

func rowErr(op error, tableID, rowID int, err error) *RowError {
	return &RowError{Op: op, TableID: tableID, RowID: rowID, Err: err}
}
