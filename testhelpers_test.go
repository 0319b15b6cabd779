package baserow

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// fakeBaserow is an in-memory Baserow server for client tests. It serves
// one table's schema and rows and records every request it handles.
type fakeBaserow struct {
	t       *testing.T
	server  *httptest.Server
	tableID int

	mu       sync.Mutex
	fields   []map[string]any
	rows     []map[string]any
	nextID   int
	requests []string
}

func newFakeBaserow(t *testing.T, tableID int, fields []map[string]any) *fakeBaserow {
	f := &fakeBaserow{t: t, tableID: tableID, fields: fields, nextID: 1}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/api/database/fields/table/{tableID}/", f.handleFields)
	r.Get("/api/database/rows/table/{tableID}/", f.handleList)
	r.Post("/api/database/rows/table/{tableID}/", f.handleCreateRow)
	r.Post("/api/database/rows/table/{tableID}/batch/", f.handleBatchCreate)
	r.Patch("/api/database/rows/table/{tableID}/batch/", f.handleBatchUpdate)
	r.Post("/api/database/rows/table/{tableID}/batch-delete/", f.handleBatchDelete)
	r.Get("/api/database/rows/table/{tableID}/{rowID}/", f.handleGetRow)
	r.Patch("/api/database/rows/table/{tableID}/{rowID}/", f.handleUpdateRow)
	r.Delete("/api/database/rows/table/{tableID}/{rowID}/", f.handleDeleteRow)
	r.Patch("/api/database/rows/table/{tableID}/{rowID}/move/", f.handleMoveRow)

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

// client builds a Client pointed at the fake server.
func (f *fakeBaserow) client(t *testing.T, opts ...ClientOption) *Client {
	c, err := NewClient(f.server.URL, "test-token", opts...)
	require.NoError(t, err)
	return c
}

// addRow seeds one row directly, bypassing the API.
func (f *fakeBaserow) addRow(values map[string]any) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := map[string]any{"id": f.nextID, "order": fmt.Sprintf("%d.00", f.nextID)}
	for k, v := range values {
		row[k] = v
	}
	f.rows = append(f.rows, row)
	f.nextID++
	return row["id"].(int)
}

// requestLog returns "METHOD path" entries in arrival order.
func (f *fakeBaserow) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeBaserow) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		if r.Header.Get("Authorization") != "Token test-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeBaserow) handleFields(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.fields)
}

// matchFilters evaluates the decoded filters tree over one row. Only the
// operators the tests use are implemented.
func matchFilters(row map[string]any, tree map[string]any) bool {
	entries, _ := tree["filters"].([]any)
	if len(entries) == 0 {
		return true
	}
	filterType, _ := tree["filter_type"].(string)
	for _, raw := range entries {
		entry, _ := raw.(map[string]any)
		field, _ := entry["field"].(string)
		op, _ := entry["type"].(string)
		want := fmt.Sprintf("%v", entry["value"])
		got := fmt.Sprintf("%v", row[field])
		var hit bool
		switch op {
		case "equal":
			hit = got == want
		case "contains":
			hit = strings.Contains(got, want)
		case "not_equal":
			hit = got != want
		}
		if filterType == "OR" {
			if hit {
				return true
			}
		} else if !hit {
			return false
		}
	}
	return filterType != "OR"
}

func (f *fakeBaserow) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	query := r.URL.Query()
	var tree map[string]any
	if raw := query.Get("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid filters"})
			return
		}
	}

	var selected []map[string]any
	for _, row := range f.rows {
		if tree != nil && !matchFilters(row, tree) {
			continue
		}
		selected = append(selected, f.projectRow(row, query.Get("include"), query.Get("exclude")))
	}

	size := len(selected)
	if raw := query.Get("size"); raw != "" {
		size, _ = strconv.Atoi(raw)
	}
	page := 1
	if raw := query.Get("page"); raw != "" {
		page, _ = strconv.Atoi(raw)
	}
	start := (page - 1) * size
	end := min(start+size, len(selected))
	if start > len(selected) {
		start, end = len(selected), len(selected)
	}
	pageRows := selected[start:end]

	var next any
	if end < len(selected) {
		nextQuery := r.URL.Query()
		nextQuery.Set("page", strconv.Itoa(page+1))
		next = f.server.URL + r.URL.Path + "?" + nextQuery.Encode()
	}
	results := pageRows
	if results == nil {
		results = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(selected),
		"next":     next,
		"previous": nil,
		"results":  results,
	})
}

func (f *fakeBaserow) projectRow(row map[string]any, include, exclude string) map[string]any {
	out := make(map[string]any, len(row))
	included := map[string]bool{}
	for _, name := range strings.Split(include, ",") {
		if name != "" {
			included[name] = true
		}
	}
	excluded := map[string]bool{}
	for _, name := range strings.Split(exclude, ",") {
		if name != "" {
			excluded[name] = true
		}
	}
	for k, v := range row {
		if k != "id" && k != "order" {
			if len(included) > 0 && !included[k] {
				continue
			}
			if excluded[k] {
				continue
			}
		}
		out[k] = v
	}
	return out
}

func (f *fakeBaserow) findRow(id int) (map[string]any, int) {
	for i, row := range f.rows {
		if row["id"].(int) == id {
			return row, i
		}
	}
	return nil, -1
}

func rowIDParam(r *http.Request) int {
	id, _ := strconv.Atoi(chi.URLParam(r, "rowID"))
	return id
}

func (f *fakeBaserow) handleGetRow(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, _ := f.findRow(rowIDParam(r))
	if row == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "row not found"})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (f *fakeBaserow) handleCreateRow(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid body"})
		return
	}
	row := map[string]any{"id": f.nextID, "order": fmt.Sprintf("%d.00", f.nextID)}
	for k, v := range values {
		row[k] = v
	}
	f.rows = append(f.rows, row)
	f.nextID++
	writeJSON(w, http.StatusOK, row)
}

func (f *fakeBaserow) handleBatchCreate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid body"})
		return
	}
	created := make([]map[string]any, 0, len(payload.Items))
	for _, values := range payload.Items {
		row := map[string]any{"id": f.nextID, "order": fmt.Sprintf("%d.00", f.nextID)}
		for k, v := range values {
			row[k] = v
		}
		f.rows = append(f.rows, row)
		f.nextID++
		created = append(created, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": created})
}

func (f *fakeBaserow) handleBatchUpdate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid body"})
		return
	}
	updated := make([]map[string]any, 0, len(payload.Items))
	for _, values := range payload.Items {
		id := int(values["id"].(float64))
		row, _ := f.findRow(id)
		if row == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "row not found"})
			return
		}
		for k, v := range values {
			if k != "id" {
				row[k] = v
			}
		}
		updated = append(updated, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": updated})
}

func (f *fakeBaserow) handleBatchDelete(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var payload struct {
		Items []int `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid body"})
		return
	}
	for _, id := range payload.Items {
		if row, i := f.findRow(id); row != nil {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeBaserow) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, _ := f.findRow(rowIDParam(r))
	if row == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "row not found"})
		return
	}
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid body"})
		return
	}
	for k, v := range values {
		row[k] = v
	}
	writeJSON(w, http.StatusOK, row)
}

func (f *fakeBaserow) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, i := f.findRow(rowIDParam(r))
	if row == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "row not found"})
		return
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeBaserow) handleMoveRow(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, _ := f.findRow(rowIDParam(r))
	if row == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "row not found"})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// contactFields is the schema fixture most tests share.
func contactFields() []map[string]any {
	return []map[string]any{
		{"id": 1, "table_id": 99, "name": "Name", "type": "text", "order": 0, "primary": true},
		{"id": 2, "table_id": 99, "name": "Last name", "type": "text", "order": 1},
		{"id": 3, "table_id": 99, "name": "Age", "type": "number", "order": 2, "number_decimal_places": 0, "number_negative": false},
		{"id": 4, "table_id": 99, "name": "Active", "type": "boolean", "order": 3},
	}
}
