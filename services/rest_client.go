package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rental-admin/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HeaderSource supplies per-request headers, normally the session's.
type HeaderSource interface {
	AuthHeaders() http.Header
}

// RestClient talks JSON to the backend under BaseURL (origin + "/api").
type RestClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Headers    HeaderSource
}

func NewRestClient(baseURL string, timeout time.Duration) *RestClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RestClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// WithHeaders returns a copy of the client that sends the given headers.
func (c *RestClient) WithHeaders(h HeaderSource) *RestClient {
	clone := *c
	clone.Headers = h
	return &clone
}

func (c *RestClient) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *RestClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *RestClient) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *RestClient) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *RestClient) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends one request. A 204 or empty body leaves out untouched. A non-2xx
// response becomes an *HTTPError, a transport failure a *NetworkError.
// Nothing is retried.
func (c *RestClient) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if c.Headers != nil {
		for key, values := range c.Headers.AuthHeaders() {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	m := metricsSingleton()
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	m.requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		m.requestsTotal.WithLabelValues(method, "network_error").Inc()
		utils.Logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Warn("backend request failed")
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Status: resp.StatusCode, Message: ErrorMessage(resp.StatusCode, raw)}
		utils.Logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn(httpErr.Message)
		return httpErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decode response of %s %s", method, path)
	}
	return nil
}

// ErrorMessage extracts the user-facing message of a failed response: the
// JSON "message" field, else the JSON "error" field, else the raw body
// text, else a generic message with the status code.
func ErrorMessage(status int, body []byte) string {
	var parsed struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := stringField(parsed.Message); msg != "" {
			return msg
		}
		if msg := stringField(parsed.Error); msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("Error %d: la solicitud no pudo completarse", status)
}

func stringField(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
