package baserow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileRowValue wraps a file cell: a list of attachment metadata objects.
// Uploads change only the in-memory value; the row must be updated
// afterwards to persist the new attachment list.
type FileRowValue struct {
	baseRowValue
	client *Client
}

// Files returns the raw attachment metadata entries.
func (v *FileRowValue) Files() []map[string]any {
	list, ok := v.raw.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if entry, ok := item.(map[string]any); ok {
			out = append(out, entry)
		}
	}
	return out
}

// FileNames returns the server-generated name of each attachment.
func (v *FileRowValue) FileNames() []string {
	entries := v.Files()
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := fieldData(entry).str("name"); ok {
			names = append(names, name)
		}
	}
	return names
}

func (v *FileRowValue) appendEntry(entry map[string]any, replace bool) {
	if replace || v.raw == nil {
		v.raw = []any{any(entry)}
		return
	}
	list, ok := v.raw.([]any)
	if !ok {
		list = nil
	}
	v.raw = append(list, any(entry))
}

// UploadFile uploads a local file to user storage and appends its metadata
// to the cell. With replace, the previous attachment list is discarded.
func (v *FileRowValue) UploadFile(ctx context.Context, path string, replace bool) (map[string]any, error) {
	if v.client == nil {
		return nil, fmt.Errorf("field %q: file operations require a client-bound row", v.field.Name())
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	entry, err := v.client.UploadFile(ctx, filepath.Base(path), file)
	if err != nil {
		return nil, err
	}
	v.appendEntry(entry, replace)
	return entry, nil
}

// UploadFileViaURL asks the server to fetch a file from a URL and appends
// the resulting metadata to the cell.
func (v *FileRowValue) UploadFileViaURL(ctx context.Context, fileURL string, replace bool) (map[string]any, error) {
	if v.client == nil {
		return nil, fmt.Errorf("field %q: file operations require a client-bound row", v.field.Name())
	}
	entry, err := v.client.UploadFileViaURL(ctx, fileURL)
	if err != nil {
		return nil, err
	}
	v.appendEntry(entry, replace)
	return entry, nil
}

// DownloadFiles fetches every attachment into dir, keeping the server
// names. Files already present are skipped. It returns the names written.
func (v *FileRowValue) DownloadFiles(ctx context.Context, dir string) ([]string, error) {
	if v.client == nil {
		return nil, fmt.Errorf("field %q: file operations require a client-bound row", v.field.Name())
	}
	var written []string
	for _, entry := range v.Files() {
		name, ok := fieldData(entry).str("name")
		if !ok {
			continue
		}
		url, ok := fieldData(entry).str("url")
		if !ok {
			continue
		}
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := v.client.downloadFile(ctx, url, target); err != nil {
			return written, fmt.Errorf("download %s: %w", name, err)
		}
		written = append(written, name)
	}
	return written, nil
}
