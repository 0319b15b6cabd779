package baserow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

const (
	uploadFilePath   = "/api/user-files/upload-file/"
	uploadViaURLPath = "/api/user-files/upload-via-url/"
)

// UploadFile pushes a file into user storage and returns its metadata
// record. The record references nothing until written into a file cell and
// saved with a row update.
func (c *Client) UploadFile(ctx context.Context, fileName string, r io.Reader) (map[string]any, error) {
	result, err := c.executor.Do(ctx, &Request{
		Method: http.MethodPost,
		URL:    uploadFilePath,
		File:   &FilePayload{FieldName: "file", FileName: fileName, Reader: r},
	})
	if err != nil {
		return nil, fmt.Errorf("upload file %s: %w", fileName, err)
	}
	entry, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("upload file %s: unexpected response shape %T", fileName, result)
	}
	return entry, nil
}

// UploadFileViaURL asks the server to fetch a file from a URL into user
// storage and returns its metadata record.
func (c *Client) UploadFileViaURL(ctx context.Context, fileURL string) (map[string]any, error) {
	result, err := c.executor.Do(ctx, &Request{
		Method: http.MethodPost,
		URL:    uploadViaURLPath,
		Body:   map[string]any{"url": fileURL},
	})
	if err != nil {
		return nil, fmt.Errorf("upload via url: %w", err)
	}
	entry, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("upload via url: unexpected response shape %T", result)
	}
	return entry, nil
}

// downloadFile streams one attachment to a local path. Requires an
// executor with streaming support (the production HTTPExecutor has it).
func (c *Client) downloadFile(ctx context.Context, fileURL, target string) error {
	s, ok := c.executor.(streamer)
	if !ok {
		return fmt.Errorf("executor does not support file downloads")
	}
	body, err := s.stream(ctx, fileURL)
	if err != nil {
		return err
	}
	defer body.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
