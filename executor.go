package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single API request when the caller sets none.
const DefaultTimeout = 10 * time.Second

// Request is one API call for an Executor: a method, a path or absolute
// URL, and optionally a JSON body or a multipart file payload.
type Request struct {
	Method  string
	URL     string
	Body    any
	Headers map[string]string
	Timeout time.Duration

	// File switches the request to a multipart upload; Body is ignored.
	File *FilePayload
}

// FilePayload is a multipart file upload: the form part name, the file
// name, and the content reader.
type FilePayload struct {
	FieldName string
	FileName  string
	Reader    io.Reader
}

// Executor performs API requests. The production implementation is
// HTTPExecutor; tests substitute scripted executors through WithExecutor.
type Executor interface {
	Do(ctx context.Context, req *Request) (any, error)
}

// HTTPExecutor talks to a Baserow server over HTTP. It owns URL
// resolution, auth headers, request correlation, and response decoding.
type HTTPExecutor struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// NewHTTPExecutor builds the production executor. baseURL must carry a
// scheme and host.
func NewHTTPExecutor(baseURL, token string, logger *slog.Logger, timeout time.Duration) (*HTTPExecutor, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPExecutor{
		baseURL:    parsed,
		token:      token,
		httpClient: &http.Client{},
		logger:     logger,
		timeout:    timeout,
	}, nil
}

// resolveURL prepends the base URL to relative paths. Absolute URLs keep
// their host and path but take the base URL's scheme, so server-emitted
// next-page links with an alternate scheme still work.
func (e *HTTPExecutor) resolveURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if parsed.IsAbs() {
		parsed.Scheme = e.baseURL.Scheme
		return parsed.String(), nil
	}
	return e.baseURL.ResolveReference(parsed).String(), nil
}

// Do performs the request and decodes the response per the status code:
// 204 yields the integer 204, an empty body yields nil, JSON bodies decode
// to their natural Go shape, and non-JSON bodies come back as raw text.
func (e *HTTPExecutor) Do(ctx context.Context, req *Request) (any, error) {
	fullURL, err := e.resolveURL(req.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	contentType := "application/json"
	if req.File != nil {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		part, err := writer.CreateFormFile(req.File.FieldName, req.File.FileName)
		if err != nil {
			return nil, fmt.Errorf("%w: build multipart: %v", ErrTransport, err)
		}
		if _, err := io.Copy(part, req.File.Reader); err != nil {
			return nil, fmt.Errorf("%w: read upload: %v", ErrTransport, err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("%w: build multipart: %v", ErrTransport, err)
		}
		body = buf
		contentType = writer.FormDataContentType()
	} else if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrTransport, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Authorization", "Token "+e.token)
	httpReq.Header.Set("Content-Type", contentType)
	requestID := uuid.NewString()
	for key, value := range req.Headers {
		if strings.EqualFold(key, "X-Request-ID") {
			requestID = value
			continue
		}
		httpReq.Header.Set(key, value)
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		e.logger.Debug("api request failed",
			"method", req.Method, "url", fullURL,
			"request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	e.logger.Debug("api request",
		"method", req.Method, "url", fullURL,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        fullURL,
			Message:    strings.TrimSpace(string(data)),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return http.StatusNoContent, nil
	}
	if len(data) == 0 {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return string(data), nil
	}
	return decoded, nil
}

// stream fetches a URL and hands the body to the caller. Used for file
// downloads, which must bypass JSON decoding.
func (e *HTTPExecutor) stream(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	fullURL, err := e.resolveURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, URL: fullURL}
	}
	return resp.Body, nil
}
