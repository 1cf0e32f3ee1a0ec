// Package api is the client for the externally-owned ticketing REST API.
// All business authority (status transitions, role checks, persistence) lives
// server-side; this package only moves JSON and normalizes failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL points at the deployed backend; override with
// TICKETS_API_URL or the --api-url flag.
const DefaultBaseURL = "https://tickets-backend-api-gxbkf5enbafxcvb2.francecentral-01.azurewebsites.net/api"

// ErrUnauthorized matches any 401 response via errors.Is. The session layer
// uses it to mark the persisted token stale.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	b := strings.TrimSpace(e.Body)
	if b == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	if len(b) > 200 {
		b = b[:200]
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, b)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// Client talks to the remote API with bearer auth. Safe for use from
// multiple goroutines (the TUI commits and polls concurrently).
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger

	mu    sync.Mutex
	token string

	// onUnauthorized fires once per 401 so the session layer can mark the
	// token stale; the route guard acts on it at the next navigation.
	onUnauthorized func()
}

func New(baseURL string, log zerolog.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

func (c *Client) SetToken(tok string) {
	c.mu.Lock()
	c.token = strings.TrimSpace(tok)
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// resultEnvelope: some endpoints wrap their payload in {"result": ...},
// others return it bare. unwrap tolerates both.
type resultEnvelope struct {
	Result json.RawMessage `json:"result"`
}

func unwrap(b []byte) []byte {
	var env resultEnvelope
	if err := json.Unmarshal(b, &env); err == nil && len(env.Result) > 0 {
		return env.Result
	}
	return b
}

// doJSON performs one request. body (when non-nil) is marshalled to JSON;
// out (when non-nil) receives the decoded, unwrapped response body.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+"/"+strings.TrimLeft(path, "/"), rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("request failed")
		return err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if res.StatusCode == http.StatusUnauthorized {
			c.mu.Lock()
			fn := c.onUnauthorized
			c.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
		c.log.Debug().Int("status", res.StatusCode).Str("url", req.URL.String()).Msg("api error")
		return &StatusError{Code: res.StatusCode, Body: string(b)}
	}

	if out == nil || res.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrap(b), out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
