package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// HeaderOption is an extra request header sent with a POST.
type HeaderOption struct {
	Key   string
	Value string
}

// PostResult carries the raw outcome of a single HTTP round-trip.
type PostResult struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *PostResult) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// DoPost performs one synchronous HTTP POST with a JSON body and returns the
// status code and the fully read response body. It does not interpret the
// status code: a non-2xx response is returned as a result, not as an error.
// Only failures to build, send, or read the request are returned as errors.
//
// The response body is always closed; close errors are logged but never
// override the returned result.
func DoPost(ctx context.Context, client *http.Client, url string, body []byte, headers ...HeaderOption) (*PostResult, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	return &PostResult{StatusCode: res.StatusCode, Body: respBody}, nil
}

// CloseWithLog closes c and logs a warning if closing fails.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
