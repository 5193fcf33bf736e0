// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	// Headers are sent with every request; per-call headers override them.
	Headers map[string]string
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second, // Set a timeout for requests
		},
	}
}

// WithHeader returns a copy of the client that also sends key: value.
func (c *HTTPClient) WithHeader(key, value string) *HTTPClient {
	headers := make(map[string]string, len(c.Headers)+1)
	for k, v := range c.Headers {
		headers[k] = v
	}
	headers[key] = value
	return &HTTPClient{BaseURL: c.BaseURL, HTTPClient: c.HTTPClient, Headers: headers}
}

// Endpoint builds a URL for path against the client's base URL scheme and host.
func (c *HTTPClient) Endpoint(path string, query map[string]string) (*url.URL, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, newError(InvalidURL, err)
	}
	return BuildURL(base.Scheme, base.Host, base.Path+path, query)
}

// Request makes an HTTP request to the API and decodes the JSON response.
// Failures are reported as *NetworkError and logged once under caller.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}, response interface{}, caller string) error {
	var requestBody []byte
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return logged(caller, newError(DataParsing, err))
		}
		requestBody = jsonBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return logged(caller, newError(InvalidURL, err))
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resBody, err := c.do(req, caller)
	if err != nil {
		return err
	}
	if response != nil {
		return decodeInto(resBody, response, caller)
	}
	return nil
}

// get performs exactly one GET against u and returns the raw body.
func (c *HTTPClient) get(ctx context.Context, u *url.URL, caller string) ([]byte, error) {
	if u == nil {
		return nil, logged(caller, newError(InvalidURL, errors.New("nil url")))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, logged(caller, newError(InvalidURL, err))
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range c.Headers {
		req.Header.Set(key, value)
	}
	return c.do(req, caller)
}

func (c *HTTPClient) do(req *http.Request, caller string) ([]byte, error) {
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, logged(caller, newError(Transport, err))
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, logged(caller, newError(Transport, err))
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, logged(caller, newError(InvalidResponse, fmt.Errorf("unexpected status code: %s", res.Status)))
	}
	if len(resBody) == 0 {
		return nil, logged(caller, newError(InvalidResponse, errors.New("empty response body")))
	}
	return resBody, nil
}

func logged(caller string, err *NetworkError) *NetworkError {
	log.Printf("[%s] Generic Error: %v", caller, err)
	return err
}
