// Package apiclient talks to the remote study backend. It implements the
// Session Store, Subject Directory and Flashcard Store over REST.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

// Client is safe for concurrent use.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

func New(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// envelope is the success body: {"data": ...}.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// failure is the error body: {"message": "..."}.
type failure struct {
	Message string `json:"message"`
}

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	if e.message == "" {
		return fmt.Sprintf("%s %d", ErrStatus, e.status)
	}
	return fmt.Sprintf("%s %d: %s", ErrStatus, e.status, e.message)
}

func (e *statusError) Is(target error) bool {
	switch target {
	case ErrStatus:
		return true
	case ErrUnauthorized:
		return e.status == http.StatusUnauthorized || e.status == http.StatusForbidden
	}
	return false
}

// call performs one logical request. GETs are retried on transport errors
// and 5xx responses; other methods are sent exactly once.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()

	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return &domain.StoreError{Op: op, Err: fmt.Errorf("encoding request: %w", err)}
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += max(c.cfg.MaxRetries, 0)
	}

	var (
		lastErr error
		status  int
		tried   int
	)
	for tried < attempts {
		tried++
		status, lastErr = c.do(ctx, method, path, body, out)
		if lastErr == nil || !retryable(status, lastErr) || ctx.Err() != nil {
			break
		}
	}

	event := CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		Attempts:  tried,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   lastErr == nil,
		ErrorCode: errorCode(lastErr),
	}
	c.observer.OnCallComplete(event)

	if lastErr == nil {
		return nil
	}
	return toStoreError(op, lastErr)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ErrTimeout
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var f failure
		_ = json.Unmarshal(raw, &f)
		return resp.StatusCode, &statusError{status: resp.StatusCode, message: f.Message}
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return resp.StatusCode, nil
}

func retryable(status int, err error) bool {
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) {
		return true
	}
	return status >= 500
}

// toStoreError keeps the server's message so the UI can show it verbatim.
func toStoreError(op string, err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return &domain.StoreError{Op: op, Message: se.message, Err: err}
	}
	return &domain.StoreError{Op: op, Err: err}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrBadResponse):
		return "BAD_RESPONSE"
	case errors.Is(err, ErrStatus):
		return "STATUS"
	default:
		return "UNKNOWN"
	}
}
