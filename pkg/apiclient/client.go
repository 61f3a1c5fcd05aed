package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/samvad-hq/mpc-dashboard/pkg/httpclient"
)

// Logger defines the logging surface the client relies on.
type Logger interface {
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) ErrorObj(string, string, interface{}) {}

// Client issues requests against a fixed base URL. All fields are set at
// construction and never change, so a Client is safe for concurrent use.
type Client struct {
	baseURL   string
	transport httpclient.Client
	log       Logger
}

// New builds a Client. A nil transport falls back to resty without a timeout;
// a nil logger discards failure reports.
func New(baseURL string, transport httpclient.Client, log Logger) *Client {
	if transport == nil {
		transport = httpclient.NewRestyClient(0)
	}
	if log == nil {
		log = noopLogger{}
	}
	return &Client{
		baseURL:   baseURL,
		transport: transport,
		log:       log,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues GET <baseURL><path>. path may already carry a query string.
func (c *Client) Get(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil, false)
}

// Post issues POST <baseURL><path> with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, path, body, true)
}

func (c *Client) do(ctx context.Context, method, path string, body any, hasBody bool) (any, error) {
	req := httpclient.Request{
		Method:  method,
		URL:     c.baseURL + path,
		Headers: map[string]string{"Accept": "application/json"},
	}

	if hasBody && body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, c.fail(method, path, 0, fmt.Errorf("encode request body: %w", err))
		}
		req.Body = payload
		req.Headers["Content-Type"] = "application/json"
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, c.fail(method, path, 0, err)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, c.fail(method, path, status, &StatusError{
			StatusCode: status,
			Body:       bodySnippet(resp.Body()),
		})
	}

	out, err := decodeBody(resp.Header(), resp.Body())
	if err != nil {
		return nil, c.fail(method, path, status, err)
	}
	return out, nil
}

// fail reports the failure once and returns it to the caller unchanged.
func (c *Client) fail(method, path string, status int, cause error) error {
	c.log.ErrorObj(fmt.Sprintf("API Error (%s %s): %v", method, path, cause), "api_error", map[string]any{
		"method":      method,
		"path":        path,
		"status_code": status,
		"error":       cause.Error(),
	})
	return &RequestError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Cause:      cause,
	}
}
