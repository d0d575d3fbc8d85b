package donor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 4 << 20

// HTTPClient sends donor requests and hands back the raw body. The upstream
// status code is reported but never treated as an error: donors answer with
// JSON envelopes whatever the status.
type HTTPClient struct {
	httpClient *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// Envelope decodes a donor envelope into v. A body that is valid JSON but
// not an object leaves v zero, so the caller sees an envelope without the
// fields it needs. Only a body that is not JSON at all is an error.
func (r *Response) Envelope(v interface{}) error {
	err := r.JSON(v)
	if err != nil && json.Valid(r.Body) {
		return nil
	}
	return err
}

func (r *Response) Text() string {
	return string(r.Body)
}

// Do executes a request. headers are applied verbatim; body may be nil.
func (c *HTTPClient) Do(ctx context.Context, method, rawURL string, headers map[string]string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Host, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// Get is a shorthand for a body-less GET.
func (c *HTTPClient) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, rawURL, headers, nil)
}

// PostForm sends form as an application/x-www-form-urlencoded body. The
// caller's Content-Type header wins if set.
func (c *HTTPClient) PostForm(ctx context.Context, rawURL string, headers map[string]string, form url.Values) (*Response, error) {
	h := make(map[string]string, len(headers)+1)
	h["Content-Type"] = "application/x-www-form-urlencoded"
	for k, v := range headers {
		h[k] = v
	}
	return c.Do(ctx, http.MethodPost, rawURL, h, strings.NewReader(form.Encode()))
}
